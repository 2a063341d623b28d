package config

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL",
		"DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"AI_PROVIDER", "OPENROUTER_API_KEY", "AI_BASE_URL", "AI_MODEL", "GEMINI_API_KEY", "GEMINI_MODEL",
		"AI_TIMEOUT", "MAX_INPUT_CHARS", "MAX_UPLOAD_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "job_projects.db" {
		t.Errorf("Path = %q, want job_projects.db", cfg.Database.Path)
	}
	if cfg.AI.Provider != ProviderOpenRouter {
		t.Errorf("Provider = %q, want openrouter", cfg.AI.Provider)
	}
	if cfg.AI.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("BaseURL = %q", cfg.AI.BaseURL)
	}
	if cfg.AI.Model != "deepseek/deepseek-r1:free" {
		t.Errorf("Model = %q", cfg.AI.Model)
	}
	if cfg.AI.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.AI.Timeout)
	}
	if cfg.Limits.MaxInputChars != 500 {
		t.Errorf("MaxInputChars = %d, want 500", cfg.Limits.MaxInputChars)
	}
	if cfg.Limits.MaxUploadSize != 10485760 {
		t.Errorf("MaxUploadSize = %d, want 10485760", cfg.Limits.MaxUploadSize)
	}
}

func TestLoadMissingOpenRouterKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "OPENROUTER_API_KEY") {
		t.Errorf("error should name the variable, got %q", err)
	}
}

func TestLoadGeminiRequiresItsOwnKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	_, err := Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	t.Setenv("GEMINI_API_KEY", "g-test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q, want gemini-2.5-flash", cfg.AI.Model)
	}
}

func TestLoadRejectsUnknownProviderAndDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("AI_PROVIDER", "anthropic")

	if _, err := Load(); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}

	t.Setenv("AI_PROVIDER", "")
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("MAX_INPUT_CHARS", "1000")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("AI_MODEL", "openai/gpt-4o-mini")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.AI.Timeout)
	}
	if cfg.Limits.MaxInputChars != 1000 {
		t.Errorf("MaxInputChars = %d, want 1000", cfg.Limits.MaxInputChars)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("Driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.AI.Model != "openai/gpt-4o-mini" {
		t.Errorf("Model = %q", cfg.AI.Model)
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: DriverSQLite, Path: "/tmp/x.db"}}
	if got := cfg.GetDatabaseDSN(); !strings.HasPrefix(got, "/tmp/x.db?") || !strings.Contains(got, "journal_mode(WAL)") {
		t.Errorf("sqlite DSN = %q", got)
	}

	cfg.Database = DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n"}
	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Errorf("postgres DSN = %q, want %q", got, want)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
	if parseLevel("bogus") != slog.LevelInfo {
		t.Error("unknown level should fall back to info")
	}
}
