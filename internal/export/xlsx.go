package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// SheetName is the worksheet holding the report rows.
const SheetName = "Visitors"

// XLSX writes an Excel workbook with a single sheet.
type XLSX struct{}

func (XLSX) Export(w io.Writer, records []*visitor.Record) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &SerializationError{Format: FormatXLSX, Err: closeErr}
		}
	}()

	if err := build(f, records); err != nil {
		return &SerializationError{Format: FormatXLSX, Err: err}
	}
	if err := f.Write(w); err != nil {
		return &SerializationError{Format: FormatXLSX, Err: err}
	}
	return nil
}

func build(f *excelize.File, records []*visitor.Record) error {
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := Columns
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := Row(r)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return err
	}
	return f.SetColWidth(SheetName, "A", last, 18)
}
