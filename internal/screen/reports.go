package screen

import (
	"context"
	"io"

	"github.com/kinjal-s-patel/visitor-management-system/internal/export"
	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

const reportLimit = 5000

// Reports filters up to reportLimit visitors by status, visit date and
// text, and exports the filtered set.
type Reports struct {
	*loader
	table table
}

// ReportsView is what the reports page renders. Summary covers the whole
// snapshot; Page and Matched cover the filtered set.
type ReportsView struct {
	Loading  bool                            `json:"loading"`
	Notice   *Notice                         `json:"notice,omitempty"`
	Criteria visitor.Criteria                `json:"criteria"`
	Summary  visitor.Summary                 `json:"summary"`
	Matched  int                             `json:"matched"`
	Page     visitor.Window[*visitor.Record] `json:"page"`
}

// NewReports creates a reports controller.
func NewReports(store visitor.Store, opts Options) *Reports {
	r := &Reports{loader: newLoader("reports", store, opts), table: table{page: 1}}
	r.onLoad = func() { r.table.refilter(r.records) }
	return r
}

// Refresh loads up to reportLimit visitors, newest first.
func (r *Reports) Refresh(ctx context.Context) error {
	return r.refresh(ctx, visitor.Query{
		Expand:  visitor.ExpandHost,
		OrderBy: visitor.Order{Field: visitor.FieldCreatedAt, Desc: true},
		Limit:   reportLimit,
	})
}

// SetCriteria replaces the filters and returns to page 1.
func (r *Reports) SetCriteria(c visitor.Criteria) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table.setCriteria(c, r.records)
}

// SetPage moves to page n.
func (r *Reports) SetPage(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table.setPage(n)
}

// Filtered returns every record matching the current criteria.
func (r *Reports) Filtered() []*visitor.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*visitor.Record, len(r.table.filtered))
	copy(out, r.table.filtered)
	return out
}

// Export writes the filtered records, across all pages, in format f.
func (r *Reports) Export(w io.Writer, f export.Format) error {
	sink, err := export.New(f)
	if err != nil {
		return err
	}
	return sink.Export(w, r.Filtered())
}

// View returns the summary and the current page.
func (r *Reports) View() ReportsView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ReportsView{
		Loading:  r.loading,
		Notice:   r.notice,
		Criteria: r.table.criteria,
		Summary:  visitor.Summarize(r.records),
		Matched:  len(r.table.filtered),
		Page:     r.table.window(),
	}
}
