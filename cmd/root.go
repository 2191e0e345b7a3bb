package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/words"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "wordgrid",
	Short: "Guess the five-letter word of the day in six tries",
	Long: `wordgrid is a daily word-guessing game.

Play in the terminal
	wordgrid play

Also accept keys from the HTTP on-screen keyboard
	wordgrid play --listen :5175

Serve the game API for browser clients
	wordgrid serve
`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (environment variables override it)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, playCmd)
}

// loadConfig resolves config and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// setupLogging points the global zerolog logger at w with cfg's level.
func setupLogging(cfg config.Config, w io.Writer) {
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// openSource builds the word source. With a dictionary database configured
// the list seeds it and lookups go to SQLite.
func openSource(ctx context.Context, cfg config.Config) (words.Source, func(), error) {
	opts := []words.Option{words.WithSalt(cfg.DailySalt)}
	list, err := words.Load(words.Files{Answers: cfg.AnswersFile, Allowed: cfg.AllowedFile}, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("load word lists: %w", err)
	}
	a, g := list.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("word lists loaded")

	if cfg.DictionaryDB == "" {
		return list, func() {}, nil
	}
	db, err := words.OpenSQL(ctx, cfg.DictionaryDB, list, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("open dictionary %s: %w", cfg.DictionaryDB, err)
	}
	log.Info().Str("path", cfg.DictionaryDB).Msg("using sqlite dictionary")
	return db, func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close dictionary")
		}
	}, nil
}
