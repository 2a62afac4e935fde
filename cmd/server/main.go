package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aha-designer/backend/config"
	httpDelivery "github.com/aha-designer/backend/internal/delivery/http"
	"github.com/aha-designer/backend/internal/infrastructure/ratelimit"
	"github.com/aha-designer/backend/internal/infrastructure/toolrunner"
	"github.com/aha-designer/backend/internal/infrastructure/trustedparts"
	"github.com/aha-designer/backend/internal/infrastructure/workspace"
	"github.com/aha-designer/backend/internal/logging"
	"github.com/aha-designer/backend/internal/usecase"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "aha-designer backend: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting AHA Designer backend",
		zap.String("version", "0.1.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("addr", cfg.Server.Addr()))

	// Initialize infrastructure dependencies
	partsClient := trustedparts.NewClient(cfg.TrustedParts, logger)
	if cfg.TrustedParts.CompanyID == "" || cfg.TrustedParts.APIKey == "" {
		logger.Warn("TrustedParts credentials not configured; searches must supply companyId and apiKey")
	}

	workspaceStore, err := workspace.NewStore(cfg.Workspace.Root, logger)
	if err != nil {
		return err
	}
	tools := toolrunner.NewRunner(cfg.Simulator, cfg.Git, workspaceStore.Root(), logger)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(partsClient, usecase.SearchServiceConfig{
		CompanyID:   cfg.TrustedParts.CompanyID,
		APIKey:      cfg.TrustedParts.APIKey,
		CountryCode: cfg.TrustedParts.CountryCode,
	}, logger)

	handler := httpDelivery.NewHandler(searchService, workspaceStore, tools, logger)

	var limiter httpDelivery.Limiter
	if cfg.RateLimit.PerIP > 0 {
		store := ratelimit.NewStore(cfg.RateLimit.PerIP, 10*time.Minute)
		defer store.Close()
		limiter = store
	}

	router := httpDelivery.SetupRouter(cfg, handler, limiter, logger.Named("http"))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}

	logger.Info("server stopped")
	return nil
}
