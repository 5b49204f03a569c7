package export

import (
	"encoding/csv"
	"io"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// CSV writes RFC 4180 comma-separated values.
type CSV struct{}

func (CSV) Export(w io.Writer, records []*visitor.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return &SerializationError{Format: FormatCSV, Err: err}
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return &SerializationError{Format: FormatCSV, Err: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &SerializationError{Format: FormatCSV, Err: err}
	}
	return nil
}
