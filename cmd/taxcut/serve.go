package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxcut/internal/server"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	cfg := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a JSON API",
		Long: `Serve the calculator over HTTP.

Routes:
  POST /api/v1/compare           {"income": 103350, "filingStatus": "single", "savings": 111.3, "reductionScope": "all"}
  POST /api/v1/compare/presets   same body plus "presets": ["cut_100", "top4_100"]
  GET  /api/v1/tables/:status
  GET  /api/v1/presets
  GET  /api/v1/assumptions
  GET  /health, /ready, /metrics
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.debug {
				gin.SetMode(gin.ReleaseMode)
			}
			prefs, err := a.preferences()
			if err != nil {
				return err
			}
			registry, err := presetRegistry(prefs)
			if err != nil {
				return err
			}
			engine, err := a.newEngine(nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(cfg, engine, registry, a.logger("server"))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	cmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	return cmd
}
