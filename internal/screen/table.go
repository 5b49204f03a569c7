package screen

import "github.com/kinjal-s-patel/visitor-management-system/internal/visitor"

// table holds filter and page state over a loader's snapshot. The filtered
// slice is recomputed only when the snapshot or the criteria change; moving
// between pages re-windows it.
type table struct {
	criteria visitor.Criteria
	page     int
	filtered []*visitor.Record
}

func (t *table) refilter(records []*visitor.Record) {
	t.filtered = visitor.Filter(records, t.criteria)
}

func (t *table) setCriteria(c visitor.Criteria, records []*visitor.Record) {
	t.criteria = c
	t.page = 1
	t.refilter(records)
}

func (t *table) setPage(page int) {
	if page < 1 {
		page = 1
	}
	t.page = page
}

func (t *table) window() visitor.Window[*visitor.Record] {
	filtered := t.filtered
	if filtered == nil {
		filtered = []*visitor.Record{}
	}
	return visitor.Paginate(filtered, t.page, visitor.DefaultPageSize)
}
