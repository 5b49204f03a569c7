package visitor

import "strings"

// Criteria are the active filters of a screen. The zero value matches
// every record.
type Criteria struct {
	Status string `json:"status,omitempty"` // "" or "All" disables the clause
	Start  Date   `json:"start,omitempty"`  // inclusive lower bound on VisitDate
	End    Date   `json:"end,omitempty"`    // inclusive upper bound on VisitDate
	Search string `json:"search,omitempty"` // case-insensitive substring
}

// StatusActive reports whether the status clause is in effect.
func (c Criteria) StatusActive() bool {
	s := strings.TrimSpace(c.Status)
	return s != "" && !strings.EqualFold(s, StatusAll)
}

// textActive reports whether a status or search clause is in effect.
// Those clauses are evaluated in Go after rows are read.
func (c Criteria) textActive() bool {
	return c.StatusActive() || strings.TrimSpace(c.Search) != ""
}

// fields lists the record fields the active clauses read.
func (c Criteria) fields() []Field {
	var fs []Field
	if c.StatusActive() {
		fs = append(fs, FieldStatus)
	}
	if !c.Start.IsZero() || !c.End.IsZero() {
		fs = append(fs, FieldVisitDate)
	}
	if strings.TrimSpace(c.Search) != "" {
		fs = append(fs, FieldName, FieldEmail, FieldHost, FieldDepartment)
	}
	return fs
}

// Matches reports whether r satisfies every active clause of c.
// A record without a visit date never satisfies a date bound.
func Matches(r *Record, c Criteria) bool {
	if c.StatusActive() && !r.Status.Is(c.Status) {
		return false
	}
	if !c.Start.IsZero() && (r.VisitDate.IsZero() || r.VisitDate.Before(c.Start)) {
		return false
	}
	if !c.End.IsZero() && (r.VisitDate.IsZero() || r.VisitDate.After(c.End)) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(c.Search)); q != "" {
		var host string
		if r.Host != nil {
			host = r.Host.Title
		}
		return containsFold(q, r.Name, r.Email, host, r.Department)
	}
	return true
}

// Filter returns the records matching c, preserving their order.
func Filter(records []*Record, c Criteria) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if Matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

// Truncate returns at most n records. A non-positive n keeps them all.
func Truncate(records []*Record, n int) []*Record {
	if n <= 0 || len(records) <= n {
		return records
	}
	return records[:n:n]
}

func containsFold(lowerNeedle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerNeedle) {
			return true
		}
	}
	return false
}
