package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httpAdapter "github.com/mehmetymw/notion-go/internal/adapter/http"
	"github.com/mehmetymw/notion-go/internal/adapter/memory"
	"github.com/mehmetymw/notion-go/internal/adapter/postgres"
	"github.com/mehmetymw/notion-go/pkg/config"
	"github.com/mehmetymw/notion-go/pkg/logger"
	"github.com/mehmetymw/notion-go/pkg/tracing"
)

const serviceName = "notion-fake"

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTLPEndpoint != "" {
		tp, err := tracing.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else {
			defer func() { _ = tp.Shutdown(ctx) }()
		}
	}

	workspace := memory.NewWorkspace("Fake Integration")

	var (
		db    httpAdapter.Pinger
		store httpAdapter.BreakerReporter
	)
	if cfg.DatabaseURL != "" {
		if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
		conn, err := postgres.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer func() { _ = conn.Close() }()

		repo := postgres.NewObjectRepo(conn)
		if err := workspace.Restore(ctx, repo); err != nil {
			log.Fatal("failed to restore workspace", zap.Error(err))
		}
		db, store = conn, repo
		log.Info("workspace persisted to postgres")
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Workspace:   workspace,
		Stats:       workspace,
		DB:          db,
		Store:       store,
		Token:       cfg.FakeAPIToken,
		RateLimit:   cfg.FakeAPIRateLimit,
		Burst:       cfg.FakeAPIBurst,
		ServiceName: serviceName,
		Logger:      log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.FakeAPIPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting fake notion api",
			zap.String("port", cfg.FakeAPIPort),
			zap.Float64("rate_limit", cfg.FakeAPIRateLimit),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
