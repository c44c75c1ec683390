package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alvinquach/fgo-planner-go/internal/account"
	"github.com/alvinquach/fgo-planner-go/internal/bootstrap"
	"github.com/alvinquach/fgo-planner-go/internal/config"
	"github.com/alvinquach/fgo-planner-go/internal/database"
	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
	"github.com/alvinquach/fgo-planner-go/internal/handler"
	"github.com/alvinquach/fgo-planner-go/internal/plan"
	"github.com/alvinquach/fgo-planner-go/internal/repository"
	"github.com/alvinquach/fgo-planner-go/internal/scheduler"
	"github.com/alvinquach/fgo-planner-go/internal/server"
	"github.com/alvinquach/fgo-planner-go/internal/worker"
)

// ShutdownTimeout is how long the graceful shutdown sequence may take before
// the process exits anyway.
const ShutdownTimeout = 15 * time.Second

// planServiceRepo combines account and plan persistence into the single
// repository surface the plan service consumes.
type planServiceRepo struct {
	repository.Account
	repository.Plan
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	handler.InitValidator()

	dbPool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system initialization failed", "error", err)
		os.Exit(1)
	}

	if err := bootstrap.RegisterEventHandlers(eventBus); err != nil {
		slog.Error("Event handler registration failed", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	ctx := context.Background()
	if err := bootstrap.SyncGameData(ctx, repos.GameData); err != nil {
		slog.Error("Game data sync failed", "error", err)
		os.Exit(1)
	}

	servantCache := gamedata.NewServantCache(cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	warmCache := func(ctx context.Context) error {
		_, err := bootstrap.WarmServantCache(ctx, repos.GameData, servantCache)
		return err
	}
	if err := warmCache(ctx); err != nil {
		slog.Warn("Servant cache warm failed, entries will load lazily", "error", err)
	}

	var workerPool *worker.Pool
	var jobScheduler *scheduler.Scheduler
	if cfg.CatalogRefreshInterval > 0 {
		workerPool = worker.NewPool(1, 4)
		workerPool.Start()

		jobScheduler = scheduler.New(workerPool)
		refreshJob := worker.NewCatalogRefreshJob(func(ctx context.Context) error {
			return bootstrap.SyncGameData(ctx, repos.GameData)
		}, servantCache, warmCache)
		jobScheduler.Schedule(cfg.CatalogRefreshInterval, refreshJob)
		slog.Info("Catalog refresh scheduled", "interval", cfg.CatalogRefreshInterval.String())
	}

	accountService := account.NewService(repos.Account, resilientPublisher)
	planService := plan.NewService(
		planServiceRepo{Account: repos.Account, Plan: repos.Plan},
		repos.GameData,
		servantCache,
		resilientPublisher,
	)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, accountService, planService, repos.GameData)

	// Run server in a goroutine so shutdown signals can be handled
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          jobScheduler,
		WorkerPool:         workerPool,
		ResilientPublisher: resilientPublisher,
	})
}
