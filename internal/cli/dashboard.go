package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinjal-s-patel/visitor-management-system/internal/screen"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's visitors",
		Long:  "Show today's visitor counts and the most recently registered visitors.",
		Args:  cobra.NoArgs,
		RunE:  runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.close()

	d := screen.NewDashboard(b.store, screenOptions(cmd))
	defer d.Close()
	if err := d.Refresh(cmd.Context()); err != nil {
		return err
	}

	view := d.View()
	if err := noticeError(view.Notice); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), view)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Visitors for %s\n\n", view.Today.Display())
	fmt.Fprintf(out, "  Today's visitors:   %d\n", view.Total)
	fmt.Fprintf(out, "  Pending approvals:  %d\n", view.Pending)
	fmt.Fprintf(out, "  Checked in:         %d\n\n", view.CheckedIn)
	return printVisitorTable(out, view.Recent, "No visitors today.")
}

// noticeError turns an error notice into a command error.
func noticeError(n *screen.Notice) error {
	if n != nil && n.Kind == screen.NoticeError {
		return errors.New(n.Message)
	}
	return nil
}
