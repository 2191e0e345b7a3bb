// internal/config/config.go
//
// Runtime configuration for the server and the terminal player.
//
// Sources, later ones win:
//   1. Default() values.
//   2. An optional YAML file (--config).
//   3. Environment variables, after loading a .env file if one exists.
//
// Game rules (grid size, timings) are constants of the game packages and are
// deliberately absent here.

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config holds every tunable value.
type Config struct {
	Port         string        `yaml:"port"          env:"PORT"`
	LogLevel     string        `yaml:"log_level"     env:"LOG_LEVEL"`
	AnswersFile  string        `yaml:"answers_file"  env:"WORDS_ANSWERS_FILE"`
	AllowedFile  string        `yaml:"allowed_file"  env:"WORDS_ALLOWED_FILE"`
	DictionaryDB string        `yaml:"dictionary_db" env:"WORDS_DB"`
	DailySalt    string        `yaml:"daily_salt"    env:"DAILY_SALT"`
	TokenSecret  string        `yaml:"token_secret"  env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl"     env:"JWT_TTL"`
	CookieName   string        `yaml:"cookie_name"   env:"COOKIE_NAME"`
	ClientOrigin string        `yaml:"client_origin" env:"CLIENT_ORIGIN"`
	AppEnv       string        `yaml:"app_env"       env:"APP_ENV"`
	MaxSessions  int           `yaml:"max_sessions"  env:"MAX_SESSIONS"`
}

// Default returns development defaults.
func Default() Config {
	return Config{
		Port:         "5175",
		LogLevel:     "info",
		DailySalt:    "local_dev_salt",
		TokenSecret:  "dev_secret_change_me",
		TokenTTL:     24 * time.Hour,
		CookieName:   "wordgrid_token",
		ClientOrigin: "http://localhost:5173",
		AppEnv:       "development",
		MaxSessions:  10000,
	}
}

// Production reports whether cookies should be Secure/SameSite=None.
func (c Config) Production() bool { return c.AppEnv == "production" }

// Load resolves configuration from defaults, path (if non-empty) and the environment.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port is required")
	}
	if c.TokenSecret == "" {
		return errors.New("config: token secret is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: token ttl must be positive")
	}
	if c.MaxSessions <= 0 {
		return errors.New("config: max sessions must be positive")
	}
	if c.Production() && c.TokenSecret == Default().TokenSecret {
		return errors.New("config: set JWT_SECRET in production")
	}
	return nil
}
