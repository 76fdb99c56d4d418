package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"profast-parcel-service/internal/logx"
)

// Runner runs the HTTP server from a DI container.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, context.Canceled):
		logContainer(container, "shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logContainer(container, "startup aborted: startup timeout exceeded")
	default:
		log.Fatalf("run error: %v", err)
	}
}

func logContainer(container *dig.Container, msg string) {
	if err := container.Invoke(func(logger logx.Logger) { logger.Info(msg) }); err != nil {
		log.Println(msg)
	}
}

type runIn struct {
	dig.In
	Ctx    context.Context
	Pool   *pgxpool.Pool
	Logger logx.Logger
	Server *http.Server
	Pprof  *http.Server `name:"pprof_server" optional:"true"`
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		startServer(in.Server, in.Logger, "parcel-service")
		if in.Pprof != nil {
			startServer(in.Pprof, in.Logger, "pprof")
		}
		waitForShutdown(in.Ctx, in.Logger)
		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		closeResources(in.Pool, in.Server, in.Pprof, in.Logger)
		return in.Ctx.Err()
	})
}

func startServer(server *http.Server, logger logx.Logger, name string) {
	go func() {
		logger.Info(name+" listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down parcel-service")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, server, pprof *http.Server, logger logx.Logger) {
	if err := server.Close(); err != nil {
		logger.Warn("server close error", logx.Err(err))
	}
	if pprof != nil {
		if err := pprof.Close(); err != nil {
			logger.Warn("pprof close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
