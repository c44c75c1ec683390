package bootstrap

import (
	"context"
	"log/slog"

	"github.com/alvinquach/fgo-planner-go/internal/event"
	"github.com/alvinquach/fgo-planner-go/internal/scheduler"
	"github.com/alvinquach/fgo-planner-go/internal/server"
	"github.com/alvinquach/fgo-planner-go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Scheduler and WorkerPool are optional and skipped when nil.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and worker pool (finish in-flight background jobs)
// 3. Event publisher (flush pending retries to ensure consistency)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
