package screen

import (
	"context"
	"strings"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// Logs lists every visitor, most recently registered first, with a
// free-text search.
type Logs struct {
	*loader
	table table
}

// LogsView is what the logs page renders.
type LogsView struct {
	Loading bool                            `json:"loading"`
	Notice  *Notice                         `json:"notice,omitempty"`
	Search  string                          `json:"search"`
	Page    visitor.Window[*visitor.Record] `json:"page"`
}

// NewLogs creates a logs controller.
func NewLogs(store visitor.Store, opts Options) *Logs {
	l := &Logs{loader: newLoader("logs", store, opts), table: table{page: 1}}
	l.onLoad = func() { l.table.refilter(l.records) }
	return l
}

// Refresh loads all visitors ordered by id, newest first.
func (l *Logs) Refresh(ctx context.Context) error {
	return l.refresh(ctx, visitor.Query{
		Expand:  visitor.ExpandHost,
		OrderBy: visitor.Order{Field: visitor.FieldID, Desc: true},
	})
}

// SetSearch changes the search text and returns to page 1.
func (l *Logs) SetSearch(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.table.setCriteria(visitor.Criteria{Search: strings.TrimSpace(s)}, l.records)
}

// SetPage moves to page n.
func (l *Logs) SetPage(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.table.setPage(n)
}

// View returns the current page.
func (l *Logs) View() LogsView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LogsView{
		Loading: l.loading,
		Notice:  l.notice,
		Search:  l.table.criteria.Search,
		Page:    l.table.window(),
	}
}
