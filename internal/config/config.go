package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrMissingAPIKey       = errors.New("missing AI service API key")
	ErrUnknownProvider     = errors.New("unknown AI provider")
	ErrUnknownDriver       = errors.New("unknown database driver")
	ErrInvalidInputLimit   = errors.New("MAX_INPUT_CHARS must be positive")
	ErrInvalidTimeoutLimit = errors.New("AI_TIMEOUT must be positive")
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	Limits   LimitsConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type AIConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

type LimitsConfig struct {
	MaxInputChars int
	MaxUploadSize int64
}

// Load reads configuration from the environment (and a .env file when present).
// The AI credential is required: a missing key is a startup error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment only")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "3000"),
			Env:      getEnv("ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			Path:     getEnv("DB_PATH", "job_projects.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "job_projects"),
		},
		AI: AIConfig{
			Provider: strings.ToLower(getEnv("AI_PROVIDER", ProviderOpenRouter)),
			Timeout:  getEnvAsDuration("AI_TIMEOUT", "60s"),
		},
		Limits: LimitsConfig{
			MaxInputChars: getEnvAsInt("MAX_INPUT_CHARS", 500),
			MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 10485760),
		},
	}

	switch cfg.AI.Provider {
	case ProviderOpenRouter:
		cfg.AI.APIKey = getEnv("OPENROUTER_API_KEY", "")
		cfg.AI.BaseURL = getEnv("AI_BASE_URL", "https://openrouter.ai/api/v1")
		cfg.AI.Model = getEnv("AI_MODEL", "deepseek/deepseek-r1:free")
		if cfg.AI.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENROUTER_API_KEY is not set", ErrMissingAPIKey)
		}
	case ProviderGemini:
		cfg.AI.APIKey = getEnv("GEMINI_API_KEY", "")
		cfg.AI.BaseURL = getEnv("AI_BASE_URL", "")
		cfg.AI.Model = getEnv("GEMINI_MODEL", "gemini-2.5-flash")
		if cfg.AI.APIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrMissingAPIKey)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.AI.Provider)
	}

	if cfg.Database.Driver != DriverSQLite && cfg.Database.Driver != DriverPostgres {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Database.Driver)
	}
	if cfg.Limits.MaxInputChars <= 0 {
		return nil, ErrInvalidInputLimit
	}
	if cfg.AI.Timeout <= 0 {
		return nil, ErrInvalidTimeoutLimit
	}

	return cfg, nil
}

func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == DriverSQLite {
		// WAL keeps readers off the writer's lock; busy_timeout queues concurrent inserts.
		return c.Database.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
