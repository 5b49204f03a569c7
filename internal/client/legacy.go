package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// aliases lists, per field, the keys a server may use for it: the canonical
// name first, then names carried over from older list exports.
var aliases = map[visitor.Field][]string{
	visitor.FieldID:            {"id", "Id", "ID"},
	visitor.FieldName:          {"name", "Title"},
	visitor.FieldEmail:         {"email", "Email"},
	visitor.FieldContactNumber: {"contact_number", "number", "contactNumber"},
	visitor.FieldPurpose:       {"purpose", "purposeofvisit", "purposeOfVisit"},
	visitor.FieldDepartment:    {"department", "Department"},
	visitor.FieldHost:          {"host", "Host", "hostname", "hostName"},
	visitor.FieldVisitDate:     {"visit_date", "visitdate", "visitDate"},
	visitor.FieldInTime:        {"in_time", "In_x002d_time", "inTime"},
	visitor.FieldOutTime:       {"out_time", "Out_x002d_time", "outTime"},
	visitor.FieldStatus:        {"status", "Status"},
	visitor.FieldCreatedAt:     {"created_at", "Created"},
}

var hostIDKeys = []string{"host_id", "hostId", "hostnameId", "hostNameId"}

type wireRecord map[string]json.RawMessage

// lookup returns the first present, non-null value for f.
func (w wireRecord) lookup(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := w[k]; ok && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

func (w wireRecord) decode(f visitor.Field, dst interface{}) error {
	v, ok := w.lookup(aliases[f]...)
	if !ok {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("%s: %w", f, err)
	}
	return nil
}

// wireHost is an expanded host. JSON keys match case-insensitively, so
// {"Id", "Title", "EMail"} decodes as well as the canonical form.
type wireHost struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Email string `json:"email"`
}

// decodeRecord maps one API item onto the canonical record. A host that is
// missing, null or not an object leaves the record without a host.
func decodeRecord(raw json.RawMessage) (*visitor.Record, error) {
	var w wireRecord
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}

	var (
		r       visitor.Record
		status  string
		created time.Time
	)
	targets := []struct {
		field visitor.Field
		dst   interface{}
	}{
		{visitor.FieldID, &r.ID},
		{visitor.FieldName, &r.Name},
		{visitor.FieldEmail, &r.Email},
		{visitor.FieldContactNumber, &r.ContactNumber},
		{visitor.FieldPurpose, &r.Purpose},
		{visitor.FieldDepartment, &r.Department},
		{visitor.FieldVisitDate, &r.VisitDate},
		{visitor.FieldInTime, &r.InTime},
		{visitor.FieldOutTime, &r.OutTime},
		{visitor.FieldStatus, &status},
		{visitor.FieldCreatedAt, &created},
	}
	for _, t := range targets {
		if err := w.decode(t.field, t.dst); err != nil {
			return nil, err
		}
	}
	r.Status = visitor.Status(status)
	r.CreatedAt = created

	if v, ok := w.lookup(hostIDKeys...); ok {
		var id int64
		if err := json.Unmarshal(v, &id); err != nil {
			return nil, fmt.Errorf("host_id: %w", err)
		}
		if id > 0 {
			r.HostID = &id
		}
	}

	if v, ok := w.lookup(aliases[visitor.FieldHost]...); ok && len(v) > 0 && v[0] == '{' {
		var h wireHost
		if err := json.Unmarshal(v, &h); err != nil {
			return nil, fmt.Errorf("host: %w", err)
		}
		if h.ID > 0 && r.HostID == nil {
			id := h.ID
			r.HostID = &id
		}
		if h.Title != "" {
			r.Host = &visitor.Host{ID: h.ID, Title: h.Title, Email: h.Email}
		}
	}

	return &r, nil
}
