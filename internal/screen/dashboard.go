package screen

import (
	"context"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

const (
	dashboardLimit = 100
	recentCount    = 10
)

// Dashboard summarizes today's visitors.
type Dashboard struct {
	*loader
	today visitor.Date
}

// DashboardView is what the dashboard page renders.
type DashboardView struct {
	Loading   bool              `json:"loading"`
	Notice    *Notice           `json:"notice,omitempty"`
	Today     visitor.Date      `json:"today"`
	Total     int               `json:"total"`
	Pending   int               `json:"pending"`
	CheckedIn int               `json:"checked_in"`
	Recent    []*visitor.Record `json:"recent"`
}

// NewDashboard creates a dashboard controller.
func NewDashboard(store visitor.Store, opts Options) *Dashboard {
	return &Dashboard{loader: newLoader("dashboard", store, opts)}
}

// Refresh loads the visitors whose visit date is today, newest first.
func (d *Dashboard) Refresh(ctx context.Context) error {
	today := d.opts.today()
	d.mu.Lock()
	d.today = today
	d.mu.Unlock()

	return d.refresh(ctx, visitor.Query{
		Expand:  visitor.ExpandHost,
		Where:   visitor.Criteria{Start: today, End: today},
		OrderBy: visitor.Order{Field: visitor.FieldCreatedAt, Desc: true},
		Limit:   dashboardLimit,
	})
}

// View returns the current dashboard figures.
func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()

	recent := d.records
	if len(recent) > recentCount {
		recent = recent[:recentCount:recentCount]
	}
	return DashboardView{
		Loading:   d.loading,
		Notice:    d.notice,
		Today:     d.today,
		Total:     len(d.records),
		Pending:   visitor.CountByStatus(d.records, string(visitor.StatusPending)),
		CheckedIn: visitor.CountByStatus(d.records, string(visitor.StatusCheckedIn)),
		Recent:    recent,
	}
}
