package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinjal-s-patel/visitor-management-system/internal/config"
	"github.com/kinjal-s-patel/visitor-management-system/internal/db"
	"github.com/kinjal-s-patel/visitor-management-system/internal/logging"
	"github.com/kinjal-s-patel/visitor-management-system/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port    int
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and API",
		Long:  "Start an HTTP server for the web UI and JSON API. Settings come from VMS_* environment variables, optionally loaded from a .env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, envFile)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (overrides VMS_ADDR)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load")

	return cmd
}

func runServe(port int, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if port > 0 {
		cfg.Addr = fmt.Sprintf(":%d", port)
	}

	logger := logging.Setup(cfg.DevMode)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv, err := web.NewServer(database, web.Config{
		BaseURL:     cfg.BaseURL,
		UserHeader:  cfg.UserHeader,
		DefaultUser: cfg.DefaultUser,
		Location:    cfg.Location,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("database ready", "path", cfg.DBPath)
	return srv.ListenAndServe(cfg.Addr)
}
