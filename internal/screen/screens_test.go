package screen

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinjal-s-patel/visitor-management-system/internal/export"
	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

func TestDashboard(t *testing.T) {
	today := visitor.NewDate(2026, 10, 16)
	records := []*visitor.Record{
		{ID: 5, Name: "E", VisitDate: today, Status: "Pending"},
		{ID: 4, Name: "D", VisitDate: today, Status: "checked-in"},
		{ID: 3, Name: "C", VisitDate: today, Status: "CheckedIn"},
		{ID: 2, Name: "B", VisitDate: visitor.NewDate(2026, 10, 15), Status: "Pending"},
		{ID: 1, Name: "A", VisitDate: today, Status: "Rejected"},
	}
	store := &fakeStore{records: records}
	d := NewDashboard(store, testOptions(nil))
	defer d.Close()

	require.NoError(t, d.Refresh(context.Background()))

	q := store.lastQuery()
	assert.Equal(t, visitor.ExpandHost, q.Expand)
	assert.Equal(t, 100, q.Limit)
	assert.True(t, q.Where.Start.Equal(today))
	assert.True(t, q.Where.End.Equal(today))
	assert.Equal(t, visitor.Order{Field: visitor.FieldCreatedAt, Desc: true}, q.OrderBy)

	view := d.View()
	assert.Equal(t, "2026-10-16", view.Today.String())
	assert.Equal(t, 4, view.Total)
	assert.Equal(t, 1, view.Pending)
	assert.Equal(t, 2, view.CheckedIn)
	assert.Len(t, view.Recent, 4)
}

func TestDashboardRecentIsCapped(t *testing.T) {
	store := &fakeStore{records: visitors(14, visitor.NewDate(2026, 10, 16), visitor.StatusPending)}
	d := NewDashboard(store, testOptions(nil))
	defer d.Close()

	require.NoError(t, d.Refresh(context.Background()))
	view := d.View()
	assert.Equal(t, 14, view.Total)
	assert.Len(t, view.Recent, 10)
	assert.Equal(t, int64(14), view.Recent[0].ID)
}

func TestLogsPagingAndSearch(t *testing.T) {
	records := visitors(23, visitor.Date{}, visitor.StatusPending)
	records[0].Department = "Recruitment"
	records[5].Department = "Recruitment"
	store := &fakeStore{records: records}

	logs := NewLogs(store, testOptions(nil))
	defer logs.Close()
	require.NoError(t, logs.Refresh(context.Background()))

	q := store.lastQuery()
	assert.Equal(t, visitor.Order{Field: visitor.FieldID, Desc: true}, q.OrderBy)

	view := logs.View()
	assert.Equal(t, 1, view.Page.Page)
	assert.Equal(t, 3, view.Page.TotalPages)
	assert.Len(t, view.Page.Visible, 10)

	logs.SetPage(3)
	view = logs.View()
	assert.Len(t, view.Page.Visible, 3)
	assert.Equal(t, int64(1), view.Page.Visible[2].ID)

	logs.SetSearch("  recruit ")
	view = logs.View()
	assert.Equal(t, 1, view.Page.Page, "changing the search returns to page 1")
	assert.Equal(t, "recruit", view.Search)
	assert.Equal(t, 2, view.Page.Total)
	assert.Equal(t, 1, view.Page.TotalPages)
}

func TestSetPageDoesNotRefilter(t *testing.T) {
	store := &fakeStore{records: visitors(23, visitor.Date{}, visitor.StatusPending)}
	logs := NewLogs(store, testOptions(nil))
	defer logs.Close()
	require.NoError(t, logs.Refresh(context.Background()))

	before := logs.table.filtered
	logs.SetPage(2)
	after := logs.table.filtered
	assert.Same(t, &before[0], &after[0])
}

func TestSearchBeforeLoadAppliesAfterLoad(t *testing.T) {
	records := visitors(5, visitor.Date{}, visitor.StatusPending)
	store := &fakeStore{records: records}
	logs := NewLogs(store, testOptions(nil))
	defer logs.Close()

	logs.SetSearch("visitor 03")
	require.NoError(t, logs.Refresh(context.Background()))

	view := logs.View()
	require.Len(t, view.Page.Visible, 1)
	assert.Equal(t, int64(3), view.Page.Visible[0].ID)
}

func reportFixture() []*visitor.Record {
	var records []*visitor.Record
	records = append(records, visitors(23, visitor.NewDate(2026, 3, 10), visitor.StatusCheckedIn)...)
	records = append(records,
		&visitor.Record{ID: 100, Name: "P", VisitDate: visitor.NewDate(2026, 3, 11), Status: "Pending"},
		&visitor.Record{ID: 101, Name: "R", VisitDate: visitor.NewDate(2026, 4, 1), Status: "Rejected"},
		&visitor.Record{ID: 102, Name: "X", VisitDate: visitor.NewDate(2026, 3, 12), Status: "On Hold"},
	)
	return records
}

func TestReportsSummaryAndFilters(t *testing.T) {
	store := &fakeStore{records: reportFixture()}
	reports := NewReports(store, testOptions(nil))
	defer reports.Close()
	require.NoError(t, reports.Refresh(context.Background()))

	assert.Equal(t, 5000, store.lastQuery().Limit)

	reports.SetPage(2)
	reports.SetCriteria(visitor.Criteria{
		Status: "checked in",
		Start:  visitor.NewDate(2026, 3, 1),
		End:    visitor.NewDate(2026, 3, 31),
	})

	view := reports.View()
	assert.Equal(t, 1, view.Page.Page, "changing criteria returns to page 1")
	assert.Equal(t, 23, view.Matched)
	assert.Equal(t, 3, view.Page.TotalPages)
	assert.Len(t, view.Page.Visible, 10)

	assert.Equal(t, 26, view.Summary.Total, "summary covers the unfiltered set")
	assert.Equal(t, 23, view.Summary.Count(visitor.StatusCheckedIn))
	assert.Equal(t, 1, view.Summary.Count(visitor.StatusPending))
	assert.Equal(t, 1, view.Summary.Count(visitor.StatusRejected))
	assert.Equal(t, view.Matched, visitor.CountByStatus(reports.Filtered(), "Checked-in"))
}

func TestReportsExportIsNotPaginated(t *testing.T) {
	store := &fakeStore{records: reportFixture()}
	reports := NewReports(store, testOptions(nil))
	defer reports.Close()
	require.NoError(t, reports.Refresh(context.Background()))

	reports.SetCriteria(visitor.Criteria{Status: "Checked-in"})
	reports.SetPage(3)

	var buf bytes.Buffer
	require.NoError(t, reports.Export(&buf, export.FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 23+1, "one row per filtered record plus the header")
}

func TestReportsExportUnknownFormat(t *testing.T) {
	reports := NewReports(&fakeStore{}, testOptions(nil))
	defer reports.Close()
	assert.Error(t, reports.Export(&bytes.Buffer{}, export.Format("pdf")))
}
