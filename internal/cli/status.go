package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	serverURL := getServerURL()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	err := newAPIClient().Health(ctx)

	if isJSON() {
		out := map[string]interface{}{"server_url": serverURL, "ok": err == nil}
		if err != nil {
			out["error"] = err.Error()
		}
		if perr := printJSON(cmd.OutOrStdout(), out); perr != nil {
			return perr
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Server:  %s\n", serverURL)
		if err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Status:  ✓ reachable")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Status:  ✗ cannot reach server (%v)\n", err)
		}
	}

	if err != nil {
		return fmt.Errorf("server %s unavailable", serverURL)
	}
	return nil
}
