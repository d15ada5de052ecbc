package cmd

import (
	"log/slog"

	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/logging"
	"github.com/nfrund/authforms/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server until interrupted.

Configuration comes from a .env file and the environment (APP_ADDR, APP_ENV,
SESSION_SECRET, SUBMIT_DELAY, SUBMIT_FAIL, RATE_LIMIT, LOG_FORMAT, LOG_LEVEL).
The --addr flag overrides APP_ADDR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.New()
			cfg, err := config.New()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			s, err := server.New(cfg)
			if err != nil {
				return err
			}
			ctx, stop := server.ShutdownContext(cmd.Context())
			defer stop()
			if err := s.Run(ctx); err != nil {
				slog.Error("Server stopped with error", "error", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, e.g. :8080")
	return cmd
}
