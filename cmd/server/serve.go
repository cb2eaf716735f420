package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/recipe-assistant/internal/api"
	"github.com/example/recipe-assistant/internal/models"
	"github.com/example/recipe-assistant/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP and websocket API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sessions := session.NewManager(session.NewHub())
		srv := api.NewServer(deps.cfg, sessions, deps.resolver)

		active := deps.selector.Active()
		log.Info().
			Str("provider", string(active.ID)).
			Bool("configured", active.HasCredential()).
			Str("transport", deps.cfg.GeminiTransport).
			Msg("recipe assistant starting")

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Run(ctx, ":"+deps.cfg.Port)
		})
		// Startup probe only informs the log; sessions probe on their own.
		g.Go(func() error {
			res := deps.resolver.Probe(ctx)
			ev := log.Info()
			if res.Status != models.ProbeConnected {
				ev = log.Warn()
			}
			ev.Str("provider", string(res.Provider)).Str("status", string(res.Status)).Msg("provider probe")
			return nil
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		log.Info().Msg("shutdown complete")
		return nil
	},
}

var portFlag string

func init() {
	serveCmd.Flags().StringVarP(&portFlag, "port", "p", "", "listen port (overrides PORT)")
	serveCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if portFlag != "" {
			deps.cfg.Port = portFlag
		}
	}
}
