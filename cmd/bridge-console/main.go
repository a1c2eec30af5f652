package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/terra-clan/bridge-console/internal/api"
	"github.com/terra-clan/bridge-console/internal/cleanup"
	"github.com/terra-clan/bridge-console/internal/config"
	"github.com/terra-clan/bridge-console/internal/loader"
	"github.com/terra-clan/bridge-console/internal/services"
	"github.com/terra-clan/bridge-console/internal/snapshot"
	"github.com/terra-clan/bridge-console/internal/stations"
	"github.com/terra-clan/bridge-console/internal/storage"
)

func main() {
	// Setup structured logging
	var level slog.LevelVar
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: &level,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	lvl, _ := config.ParseLevel(cfg.Log.Level)
	level.Set(lvl)

	slog.Info("starting bridge-console",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"scenario_url", cfg.Scenario.URL,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Station layout
	layout := stations.DefaultLayout()
	if cfg.Stations.File != "" {
		loaded, err := stations.LoadLayout(cfg.Stations.File)
		if err != nil {
			slog.Warn("failed to load station layout, using default", "file", cfg.Stations.File, "error", err)
		} else {
			layout = loaded
		}
	}
	renderer := stations.NewRenderer(layout)

	registry := services.NewRegistry()
	loaderOpts := []loader.Option{loader.WithTimeout(cfg.Scenario.FetchTimeout)}

	// Optional load history
	var history storage.Repository
	var repo *storage.PostgresRepository
	if cfg.Database.Enabled() {
		repo, err = storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
			DSN:      cfg.Database.DSN,
			MaxConns: int32(cfg.Database.MaxConns),
		})
		if err != nil {
			slog.Error("failed to create database repository", "error", err)
			os.Exit(1)
		}
		slog.Info("database connected successfully")

		slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
		if err := storage.RunMigrations(initCtx, repo.Pool(), storage.MigrationSource(cfg.Database.MigrationsDir)); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		history = repo
		registry.Register("postgres", services.CheckerFunc(repo.Ping))
		loaderOpts = append(loaderOpts, loader.WithObserver(storage.NewHistory(repo)))
	} else {
		slog.Info("load history disabled, no database configured")
	}

	// Optional Redis snapshots
	var publisher *snapshot.Publisher
	if cfg.Redis.Enabled() {
		publisher, err = snapshot.NewRedisPublisher(initCtx, snapshot.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, renderer)
		if err != nil {
			slog.Error("failed to create redis publisher", "error", err)
			os.Exit(1)
		}
		slog.Info("redis connected successfully", "address", cfg.Redis.Address)

		registry.Register("redis", publisher)
		loaderOpts = append(loaderOpts, loader.WithObserver(publisher))
	}

	scenarioLoader := loader.NewLoader(cfg.Scenario.URL, loaderOpts...)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warm the scenario so the first request does not pay for the fetch
	go scenarioLoader.Load(ctx)

	var cleanerDone <-chan struct{}
	if repo != nil {
		cleaner := cleanup.NewCleaner(repo, cfg.Cleanup.Interval, cfg.History.Retention)
		cleanerDone = cleaner.Start(ctx)
	}

	// Setup HTTP server
	server := api.NewServer(cfg.Server, cfg.Auth, scenarioLoader, renderer, history, registry)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if cleanerDone != nil {
		<-cleanerDone
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	if repo != nil {
		if err := repo.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("bridge-console stopped")
}
