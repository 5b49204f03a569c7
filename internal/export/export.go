// Package export writes visitor reports as downloadable files.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat parses a format name. An empty name selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q (use csv or xlsx)", s)
}

// Filename returns the download name for the format.
func (f Format) Filename() string {
	return "Visitor_Report." + string(f)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Columns is the header row of every export.
var Columns = []string{
	"ID", "Name", "Email", "Contact Number", "Purpose", "Department",
	"Host", "Visit Date", "In Time", "Out Time", "Status", "Created",
}

// Row flattens a record into export cells, in Columns order.
func Row(r *visitor.Record) []string {
	created := ""
	if !r.CreatedAt.IsZero() {
		created = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		fmt.Sprint(r.ID),
		r.Name,
		r.Email,
		r.ContactNumber,
		r.Purpose,
		r.Department,
		r.HostName(),
		r.VisitDate.String(),
		r.InTime.String(),
		r.OutTime.String(),
		string(r.Status),
		created,
	}
}

// Sink serializes records to w: a header row followed by one row per record.
type Sink interface {
	Export(w io.Writer, records []*visitor.Record) error
}

// New returns the sink for f.
func New(f Format) (Sink, error) {
	switch f {
	case FormatCSV:
		return CSV{}, nil
	case FormatXLSX:
		return XLSX{}, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

// SerializationError is returned when a report cannot be written.
type SerializationError struct {
	Format Format
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("writing %s report: %v", e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
