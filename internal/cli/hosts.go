package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "List hosts visitors can be registered against",
		Args:  cobra.NoArgs,
		RunE:  runHostsList,
	}

	var email, department string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHostsAdd(cmd, args[0], email, department)
		},
	}
	add.Flags().StringVar(&email, "email", "", "host email")
	add.Flags().StringVar(&department, "department", "", "host department")

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a host",
		Long:  "Remove a host. Visitors registered against it keep their record and show no host.",
		Args:  cobra.ExactArgs(1),
		RunE:  runHostsRemove,
	}

	cmd.AddCommand(add, remove)
	return cmd
}

func runHostsList(cmd *cobra.Command, args []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.close()

	hosts, err := b.hosts.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing hosts: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), hosts)
	}

	out := cmd.OutOrStdout()
	if len(hosts) == 0 {
		fmt.Fprintln(out, "No hosts.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tDEPARTMENT")
	fmt.Fprintln(w, "--\t----\t-----\t----------")
	for _, h := range hosts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", h.ID, h.Title, h.Email, h.Department)
	}
	return w.Flush()
}

func runHostsAdd(cmd *cobra.Command, title, email, department string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.close()

	h, err := b.hosts.Add(cmd.Context(), title, email, department)
	if err != nil {
		return fmt.Errorf("adding host: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), h)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Host #%d added: %s\n", h.ID, h.Title)
	return nil
}

func runHostsRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid host ID %q", args[0])
	}

	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.close()

	if err := b.hosts.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("removing host: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]int64{"removed": id})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Host #%d removed.\n", id)
	return nil
}
