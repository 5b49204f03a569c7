// Package cli defines the cobra command tree for the visitor management
// system.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kinjal-s-patel/visitor-management-system/internal/client"
	"github.com/kinjal-s-patel/visitor-management-system/internal/db"
	"github.com/kinjal-s-patel/visitor-management-system/internal/host"
	"github.com/kinjal-s-patel/visitor-management-system/internal/logging"
	"github.com/kinjal-s-patel/visitor-management-system/internal/screen"
	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

var (
	flagFormat  string
	flagDB      string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vms",
		Short:         "Register and report on office visitors",
		Long:          "A visitor management tool. Register visitors, browse today's dashboard and the visitor log, and export filtered reports from the terminal or the web UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "use a local SQLite database instead of the server")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log store calls to stderr")

	root.AddCommand(
		newServeCmd(),
		newDashboardCmd(),
		newLogsCmd(),
		newReportCmd(),
		newAddCmd(),
		newHostsCmd(),
		newConfigCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// hostDirectory is the host data the commands need.
type hostDirectory interface {
	screen.HostLookup
	List(ctx context.Context) ([]*host.Host, error)
	Add(ctx context.Context, title, email, department string) (*host.Host, error)
	Delete(ctx context.Context, id int64) error
}

// backend is the visitor store and host directory a command runs against.
type backend struct {
	store visitor.Store
	hosts hostDirectory
	close func()
}

// openBackend uses the database named by --db, or the API server otherwise.
func openBackend() (*backend, error) {
	if flagDB == "" {
		c := newAPIClient()
		return &backend{store: c, hosts: remoteHosts{c}, close: func() {}}, nil
	}

	database, err := db.Open(flagDB)
	if err != nil {
		return nil, err
	}
	return &backend{
		store: visitor.NewRepository(database),
		hosts: host.NewRepository(database),
		close: func() { closeDB(database) },
	}, nil
}

// remoteHosts adapts the API client to hostDirectory.
type remoteHosts struct {
	*client.Client
}

func (r remoteHosts) List(ctx context.Context) ([]*host.Host, error) {
	return r.Hosts(ctx)
}

func (r remoteHosts) Add(ctx context.Context, title, email, department string) (*host.Host, error) {
	return r.AddHost(ctx, title, email, department)
}

func (r remoteHosts) Delete(ctx context.Context, id int64) error {
	return r.DeleteHost(ctx, id)
}

// newAPIClient creates an HTTP client for the visitor API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// screenOptions returns controller options for a command. Store failures
// are logged to stderr only with --verbose.
func screenOptions(cmd *cobra.Command) screen.Options {
	var logger *slog.Logger
	if flagVerbose {
		logger = logging.New(cmd.ErrOrStderr(), true)
	} else {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return screen.Options{Logger: logger}
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
