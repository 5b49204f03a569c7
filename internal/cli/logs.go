package cli

import (
	"github.com/spf13/cobra"

	"github.com/kinjal-s-patel/visitor-management-system/internal/screen"
)

func newLogsCmd() *cobra.Command {
	var (
		search string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List all visitors",
		Long:  "List every registered visitor, newest first, ten per page.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(cmd, search, page)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "match name, email, host or department")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")

	return cmd
}

func runLogs(cmd *cobra.Command, search string, page int) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.close()

	logs := screen.NewLogs(b.store, screenOptions(cmd))
	defer logs.Close()
	if err := logs.Refresh(cmd.Context()); err != nil {
		return err
	}
	logs.SetSearch(search)
	logs.SetPage(page)

	view := logs.View()
	if err := noticeError(view.Notice); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), view)
	}

	if err := printVisitorTable(cmd.OutOrStdout(), view.Page.Visible, "No visitors found."); err != nil {
		return err
	}
	printPager(cmd.OutOrStdout(), view.Page)
	return nil
}
