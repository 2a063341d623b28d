package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"alfredoptarigan/job-project-generator/internal/config"
	"alfredoptarigan/job-project-generator/internal/repositories"
	"alfredoptarigan/job-project-generator/internal/services"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "job-project-generator",
	Short: "Turn job posts into portfolio project plans",
	Long:  "Generates a structured portfolio project plan for a job post with an AI model and stores every result under a numeric ID.",
	// Running the binary with no subcommand starts the HTTP server.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default: LOG_LEVEL env var)")
}

// app holds the dependencies shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
	repo   repositories.ArtifactRepository
}

func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return nil, err
	}

	level := cfg.Server.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger := config.NewLogger(os.Stderr, level)
	slog.SetDefault(logger)

	db, err := config.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "driver", cfg.Database.Driver, "error", err)
		return nil, err
	}
	logger.Info("database ready", "driver", cfg.Database.Driver)

	return &app{
		cfg:    cfg,
		logger: logger,
		db:     db,
		repo:   repositories.NewArtifactRepository(db),
	}, nil
}

func (a *app) close() {
	if err := config.CloseDatabase(a.db); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
}

func buildGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Generator, error) {
	switch cfg.AI.Provider {
	case config.ProviderOpenRouter:
		logger.Info("using openrouter generator", "model", cfg.AI.Model)
		return services.NewOpenRouterService(services.OpenRouterConfig{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		}, logger)
	case config.ProviderGemini:
		logger.Info("using gemini generator", "model", cfg.AI.Model)
		return services.NewGeminiService(ctx, services.GeminiConfig{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		}, logger)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.AI.Provider)
	}
}
