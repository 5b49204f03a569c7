package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinjal-s-patel/visitor-management-system/internal/screen"
	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

func newAddCmd() *cobra.Command {
	var form screen.IntakeForm

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a visitor",
		Long:  "Register a visitor as Pending. Visit date and in-time default to now.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Name = args[0]
			return runAdd(cmd, form)
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "visitor email")
	cmd.Flags().StringVar(&form.ContactNumber, "contact", "", "contact number")
	cmd.Flags().StringVar(&form.Purpose, "purpose", "", "purpose of visit")
	cmd.Flags().StringVar(&form.Department, "department", "", "department visited")
	cmd.Flags().Int64Var(&form.HostID, "host", 0, "host ID (see 'vms hosts')")
	cmd.Flags().StringVar(&form.VisitDate, "date", "", "visit date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.InTime, "time", "", "in time (HH:MM)")

	return cmd
}

func runAdd(cmd *cobra.Command, form screen.IntakeForm) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.close()

	sub, err := screen.NewIntake(b.store, b.hosts, screenOptions(cmd)).Submit(cmd.Context(), form)
	if err != nil {
		var ve *visitor.ValidationError
		if errors.As(err, &ve) && !isJSON() {
			for _, p := range ve.Problems {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", p.Field, p.Message)
			}
		}
		return fmt.Errorf("registering visitor: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), sub)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d)\n", sub.Notice.Message, sub.ID)
	return nil
}
