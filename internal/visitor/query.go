package visitor

import (
	"context"
	"fmt"
)

// Field names a record field in a query projection or ordering.
type Field string

const (
	FieldID            Field = "id"
	FieldName          Field = "name"
	FieldEmail         Field = "email"
	FieldContactNumber Field = "contact_number"
	FieldPurpose       Field = "purpose"
	FieldDepartment    Field = "department"
	FieldHost          Field = "host"
	FieldVisitDate     Field = "visit_date"
	FieldInTime        Field = "in_time"
	FieldOutTime       Field = "out_time"
	FieldStatus        Field = "status"
	FieldCreatedAt     Field = "created_at"
)

// AllFields is the full projection.
var AllFields = []Field{
	FieldID, FieldName, FieldEmail, FieldContactNumber, FieldPurpose, FieldDepartment,
	FieldHost, FieldVisitDate, FieldInTime, FieldOutTime, FieldStatus, FieldCreatedAt,
}

// ExpandHost resolves the host reference to the host's display attributes.
const ExpandHost = "host"

// IsValid reports whether f is a known field.
func (f Field) IsValid() bool {
	for _, k := range AllFields {
		if f == k {
			return true
		}
	}
	return false
}

// Order is a sort key.
type Order struct {
	Field Field `json:"field"`
	Desc  bool   `json:"desc"`
}

// Query is a structured request for visitor records. Values travel as
// bound parameters; nothing here is spliced into store expressions.
type Query struct {
	Fields  []Field  // empty = AllFields
	Expand  string   // "" or ExpandHost
	Where   Criteria // evaluated with Matches
	OrderBy Order    // zero = newest first
	Limit   int      // 0 = no limit
}

// Projection returns the requested fields plus the id and every field the
// Where criteria read, so filtering never sees a field that was not loaded.
func (q Query) Projection() []Field {
	if len(q.Fields) == 0 {
		return AllFields
	}
	seen := map[Field]bool{FieldID: true}
	out := []Field{FieldID}
	add := func(fs ...Field) {
		for _, f := range fs {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	add(q.Fields...)
	add(q.Where.fields()...)
	return out
}

// Sort returns the effective ordering.
func (q Query) Sort() Order {
	if q.OrderBy.Field == "" {
		return Order{Field: FieldCreatedAt, Desc: true}
	}
	return q.OrderBy
}

// Validate rejects unknown fields, relations and negative limits.
func (q Query) Validate() error {
	for _, f := range q.Fields {
		if !f.IsValid() {
			return fmt.Errorf("unknown field %q", f)
		}
	}
	if q.Expand != "" && q.Expand != ExpandHost {
		return fmt.Errorf("unknown relation %q", q.Expand)
	}
	if q.OrderBy.Field != "" && (!q.OrderBy.Field.IsValid() || q.OrderBy.Field == FieldHost) {
		return fmt.Errorf("cannot order by %q", q.OrderBy.Field)
	}
	if q.Limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", q.Limit)
	}
	return nil
}

// Store is the record store gateway: a remote or local tabular service
// holding visitor rows. Implementations wrap every failure so that
// errors.Is(err, ErrStoreUnavailable) holds, and never retry.
type Store interface {
	Fetch(ctx context.Context, q Query) ([]*Record, error)
	Insert(ctx context.Context, rec *NewRecord) (int64, error)
}
