package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kinjal-s-patel/visitor-management-system/internal/export"
	"github.com/kinjal-s-patel/visitor-management-system/internal/screen"
	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

type reportFlags struct {
	status string
	start  string
	end    string
	search string
	page   int
	export string
	out    string
}

func newReportCmd() *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize and export visitors",
		Long:  "Show visitor counts by status and the visitors matching the filters. With --export, write every matching visitor to a CSV or Excel file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.status, "status", visitor.StatusAll, "status to include (Pending|Approved|Checked-in|CheckedOut|Rejected|All)")
	cmd.Flags().StringVar(&f.start, "start", "", "earliest visit date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "latest visit date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "match name, email, host or department")
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page number")
	cmd.Flags().StringVar(&f.export, "export", "", "export format (csv|xlsx)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "export file path (default: Visitor_Report.<format>)")

	return cmd
}

func (f reportFlags) criteria() (visitor.Criteria, error) {
	start, err := visitor.ParseDate(f.start)
	if err != nil {
		return visitor.Criteria{}, fmt.Errorf("--start: %w", err)
	}
	end, err := visitor.ParseDate(f.end)
	if err != nil {
		return visitor.Criteria{}, fmt.Errorf("--end: %w", err)
	}
	return visitor.Criteria{Status: f.status, Start: start, End: end, Search: f.search}, nil
}

func runReport(cmd *cobra.Command, f reportFlags) error {
	criteria, err := f.criteria()
	if err != nil {
		return err
	}

	var format export.Format
	if f.export != "" {
		format, err = export.ParseFormat(f.export)
		if err != nil {
			return err
		}
	}

	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.close()

	reports := screen.NewReports(b.store, screenOptions(cmd))
	defer reports.Close()
	if err := reports.Refresh(cmd.Context()); err != nil {
		return err
	}
	reports.SetCriteria(criteria)
	reports.SetPage(f.page)

	view := reports.View()
	if err := noticeError(view.Notice); err != nil {
		return err
	}

	if f.export != "" {
		return writeExport(cmd, reports, format, f.out)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), view)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total: %d\n", view.Summary.Total)
	for _, st := range visitor.KnownStatuses {
		fmt.Fprintf(out, "  %-12s %d\n", st.Label()+":", view.Summary.Count(st))
	}
	fmt.Fprintf(out, "\n%d matching\n\n", view.Matched)
	if err := printVisitorTable(out, view.Page.Visible, "No visitors match these filters."); err != nil {
		return err
	}
	printPager(out, view.Page)
	return nil
}

func writeExport(cmd *cobra.Command, reports *screen.Reports, format export.Format, path string) error {
	if path == "" {
		path = format.Filename()
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := reports.Export(file, format); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	n := len(reports.Filtered())
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{"path": path, "format": format, "records": n})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d visitors to %s\n", n, path)
	return nil
}
