package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/sustainamine/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		listen      string
		factorsFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve estimates over HTTP",
		Long: `Starts the HTTP API:

  POST /v1/estimates   compute an estimate
  GET  /v1/factors     active factor table
  GET  /healthz        liveness
  GET  /metrics        Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.ListenAddr = listen
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			est, err := a.estimator(factorsFile)
			if err != nil {
				return err
			}
			srv := server.New(est, server.CORSOptions{
				AllowedOrigins:   a.cfg.CORSAllowedOrigins,
				AllowCredentials: a.cfg.CORSAllowCredentials,
				MaxAge:           a.cfg.CORSMaxAge,
			}, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, a.cfg.ListenAddr, a.cfg.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides SUSTAINAMINE_LISTEN_ADDR, default :8080)")
	cmd.Flags().StringVar(&factorsFile, "factors", "", "YAML or JSON factor file (overrides SUSTAINAMINE_FACTORS_FILE)")
	return cmd
}
