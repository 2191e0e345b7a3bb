package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5175" || cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordgrid.yaml")
	body := "port: \"8080\"\nlog_level: debug\ntoken_ttl: 2h\ndaily_salt: from-file\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DAILY_SALT", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q, want debug", cfg.LogLevel)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("ttl = %v, want 2h", cfg.TokenTTL)
	}
	if cfg.DailySalt != "from-env" {
		t.Fatalf("salt = %q, want from-env", cfg.DailySalt)
	}
	if cfg.CookieName != "wordgrid_token" {
		t.Fatalf("cookie name = %q, want default", cfg.CookieName)
	}
}

func TestLoadRejectsUnknownFileKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("max_attempts: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted unknown key")
	}
}

func TestValidateProductionSecret(t *testing.T) {
	cfg := Default()
	cfg.AppEnv = "production"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate accepted default secret in production")
	}
	cfg.TokenSecret = "something-else"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateMaxSessions(t *testing.T) {
	cfg := Default()
	cfg.MaxSessions = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate accepted max sessions = 0")
	}
}

func TestLoadMaxSessionsFromEnv(t *testing.T) {
	t.Setenv("MAX_SESSIONS", "25")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxSessions != 25 {
		t.Fatalf("max sessions = %d, want 25", cfg.MaxSessions)
	}
}
