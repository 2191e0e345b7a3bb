package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/httpserver"
	"github.com/robalobadob/wordgrid/internal/session"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/tui"
	"github.com/robalobadob/wordgrid/internal/words"
)

var (
	playListen  string
	playLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play today's word in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The terminal belongs to the UI; logs go to a file or nowhere.
		var logOut io.Writer = io.Discard
		if playLogFile != "" {
			f, err := os.OpenFile(playLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			logOut = f
		}
		setupLogging(cfg, logOut)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src, closeSrc, err := openSource(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeSrc()

		solution := src.SolutionForToday()
		sess, err := session.New(uuid.NewString(), solution, src)
		if err != nil {
			return fmt.Errorf("start game: %w", err)
		}
		go func() { _ = sess.Run(ctx) }()
		defer sess.Close()

		footer := ""
		if playListen != "" {
			if footer, err = attachHTTP(ctx, cfg, src, sess); err != nil {
				return err
			}
		}

		err = tui.Run(ctx, sess, footer)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	playCmd.Flags().StringVar(&playListen, "listen", "", "Also accept on-screen keyboard presses over HTTP on this address (e.g. :5175)")
	playCmd.Flags().StringVar(&playLogFile, "log-file", "", "Write logs to this file instead of discarding them")
}

// attachHTTP serves the API with sess registered and returns a hint line
// carrying its token.
func attachHTTP(ctx context.Context, cfg config.Config, src words.Source, sess *session.Session) (string, error) {
	srv := httpserver.New(ctx, cfg, store.NewMemoryStore(), src)
	tok, err := srv.Attach(sess)
	if err != nil {
		return "", fmt.Errorf("attach session: %w", err)
	}
	go func() {
		if err := srv.Start(playListen); err != nil {
			log.Error().Err(err).Str("addr", playListen).Msg("http listener")
		}
	}()
	log.Info().Str("addr", playListen).Str("session", sess.ID()).Msg("on-screen keyboard enabled")
	return fmt.Sprintf("on-screen keyboard: POST %s/game/keys  Authorization: Bearer %s", playListen, tok), nil
}
