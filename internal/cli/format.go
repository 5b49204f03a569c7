package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printVisitorTable prints visitors as a formatted table.
func printVisitorTable(out io.Writer, records []*visitor.Record, empty string) error {
	if len(records) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tPURPOSE\tDEPARTMENT\tHOST\tDATE\tIN\tSTATUS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t-------\t----------\t----\t----\t--\t------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, truncate(r.Name, 30), truncate(r.Purpose, 20), r.Department, truncate(r.HostName(), 24),
			r.VisitDate.Display(), r.InTime.Display(), r.Status.Label()); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// printPager prints the page position of a window.
func printPager(out io.Writer, page visitor.Window[*visitor.Record]) {
	fmt.Fprintf(out, "\nPage %d of %d (%d visitors)\n", page.Page, page.TotalPages, page.Total)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
