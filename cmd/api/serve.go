package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/job-project-generator/internal/handlers"
	"alfredoptarigan/job-project-generator/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Start the HTTP API; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator, err := buildGenerator(ctx, a.cfg, a.logger)
	if err != nil {
		a.logger.Error("failed to initialize AI service", "provider", a.cfg.AI.Provider, "error", err)
		return err
	}

	pipeline := services.NewPipeline(a.repo, generator, a.cfg.Limits.MaxInputChars, a.logger)
	projects := handlers.NewProjectHandler(
		pipeline,
		services.NewRetriever(a.repo),
		services.NewPDFParserService(),
		a.cfg.Limits.MaxUploadSize,
		a.logger,
	)

	appCfg := handlers.AppConfig{
		BodyLimit:    int(a.cfg.Limits.MaxUploadSize) + 1<<20,
		WriteTimeout: a.cfg.AI.Timeout + 30*time.Second,
	}
	if a.cfg.IsDevelopment() {
		appCfg.AccessLog = os.Stdout
	}
	server := handlers.NewApp(appCfg, projects, handlers.NewHealthHandler(a.repo))

	addr := fmt.Sprintf(":%s", a.cfg.Server.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server starting", "addr", addr, "env", a.cfg.Server.Env, "provider", a.cfg.AI.Provider)
		if err := server.Listen(addr); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down server")
		if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("server stopped with error", "error", err)
		return err
	}

	a.logger.Info("goodbye")
	return nil
}
