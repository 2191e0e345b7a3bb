package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/httpserver"
	"github.com/robalobadob/wordgrid/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg, os.Stderr)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src, closeSrc, err := openSource(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeSrc()

		srv := httpserver.New(ctx, cfg, store.NewMemoryStore(), src)
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("starting wordgrid server")
		return srv.Start(":" + cfg.Port)
	},
}
