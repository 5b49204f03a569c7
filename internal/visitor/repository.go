package visitor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
)

// Repository is the SQLite-backed Store.
type Repository struct {
	db  *dbx.DB
	now func() time.Time
}

// NewRepository creates a visitor repository over an open database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: dbx.NewFromDB(db, "sqlite3"), now: time.Now}
}

// columns maps projected fields to select expressions.
var columns = map[Field][]string{
	FieldID:            {"[[visitors.id]]"},
	FieldName:          {"[[visitors.name]]"},
	FieldEmail:         {"[[visitors.email]]"},
	FieldContactNumber: {"[[visitors.contact_number]]"},
	FieldPurpose:       {"[[visitors.purpose]]"},
	FieldDepartment:    {"[[visitors.department]]"},
	FieldHost:          {"[[visitors.host_id]]"},
	FieldVisitDate:     {"[[visitors.visit_date]]"},
	FieldInTime:        {"[[visitors.in_time]]"},
	FieldOutTime:       {"[[visitors.out_time]]"},
	FieldStatus:        {"[[visitors.status]]"},
	FieldCreatedAt:     {"[[visitors.created_at]]"},
}

var hostColumns = []string{"[[hosts.title]] AS [[host_title]]", "[[hosts.email]] AS [[host_email]]"}

// recordRow is the scan target for a visitors row.
type recordRow struct {
	ID            int64          `db:"id"`
	Name          sql.NullString `db:"name"`
	Email         sql.NullString `db:"email"`
	ContactNumber sql.NullString `db:"contact_number"`
	Purpose       sql.NullString `db:"purpose"`
	Department    sql.NullString `db:"department"`
	HostID        sql.NullInt64  `db:"host_id"`
	HostTitle     sql.NullString `db:"host_title"`
	HostEmail     sql.NullString `db:"host_email"`
	VisitDate     Date           `db:"visit_date"`
	InTime        Clock          `db:"in_time"`
	OutTime       Clock          `db:"out_time"`
	Status        sql.NullString `db:"status"`
	CreatedAt     sql.NullTime   `db:"created_at"`
}

func (row *recordRow) record(expanded bool) *Record {
	r := &Record{
		ID:            row.ID,
		Name:          row.Name.String,
		Email:         row.Email.String,
		ContactNumber: row.ContactNumber.String,
		Purpose:       row.Purpose.String,
		Department:    row.Department.String,
		VisitDate:     row.VisitDate,
		InTime:        row.InTime,
		OutTime:       row.OutTime,
		Status:        Status(row.Status.String),
	}
	if row.CreatedAt.Valid {
		r.CreatedAt = row.CreatedAt.Time
	}
	if row.HostID.Valid {
		id := row.HostID.Int64
		r.HostID = &id
		// A dangling reference leaves Host nil and renders as N/A.
		if expanded && row.HostTitle.Valid {
			r.Host = &Host{ID: id, Title: row.HostTitle.String, Email: row.HostEmail.String}
		}
	}
	return r
}

// Fetch returns visitor records per q. The date window is pushed down to
// SQLite; the complete criteria are then applied with Filter, so status and
// text matching follow exactly one rule. The limit counts matching records,
// so it is only pushed down when no status or search clause is active.
func (r *Repository) Fetch(ctx context.Context, q Query) ([]*Record, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	var cols []string
	for _, f := range q.Projection() {
		cols = append(cols, columns[f]...)
	}

	sel := r.db.Select(cols...).From("visitors")
	if q.Expand == ExpandHost {
		sel.AndSelect(hostColumns...)
		sel.LeftJoin("hosts", dbx.NewExp("[[hosts.id]] = [[visitors.host_id]]"))
	}
	if !q.Where.Start.IsZero() {
		sel.AndWhere(dbx.NewExp("[[visitors.visit_date]] >= {:start}", dbx.Params{"start": q.Where.Start.String()}))
	}
	if !q.Where.End.IsZero() {
		sel.AndWhere(dbx.NewExp("[[visitors.visit_date]] <= {:end}", dbx.Params{"end": q.Where.End.String()}))
	}

	order := q.Sort()
	dir := " ASC"
	if order.Desc {
		dir = " DESC"
	}
	sel.OrderBy(columns[order.Field][0]+dir, "[[visitors.id]]"+dir)
	if q.Limit > 0 && !q.Where.textActive() {
		sel.Limit(int64(q.Limit))
	}

	var rows []recordRow
	if err := sel.WithContext(ctx).All(&rows); err != nil {
		return nil, &StoreError{Op: "fetch", Err: err}
	}

	records := make([]*Record, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].record(q.Expand == ExpandHost))
	}

	return Truncate(Filter(records, q.Where), q.Limit), nil
}

// Insert stores a new visitor and returns its ID. An empty status is
// stored as Pending.
func (r *Repository) Insert(ctx context.Context, rec *NewRecord) (int64, error) {
	status := rec.Status
	if status == "" {
		status = StatusPending
	}

	var hostID interface{}
	if rec.HostID > 0 {
		hostID = rec.HostID
	}

	result, err := r.db.Insert("visitors", dbx.Params{
		"name":           rec.Name,
		"email":          rec.Email,
		"contact_number": rec.ContactNumber,
		"purpose":        rec.Purpose,
		"department":     rec.Department,
		"host_id":        hostID,
		"visit_date":     rec.VisitDate,
		"in_time":        rec.InTime,
		"status":         string(status),
		"created_at":     r.now().UTC(),
	}).WithContext(ctx).Execute()
	if err != nil {
		return 0, &StoreError{Op: "insert", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &StoreError{Op: "insert", Err: fmt.Errorf("getting insert id: %w", err)}
	}

	return id, nil
}
