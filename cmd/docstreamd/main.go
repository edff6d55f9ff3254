// docstreamd is the front service: uploads, the progress push stream, the
// collaboration socket, and health.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/docstreamhq/docstream/internal/bus"
	"github.com/docstreamhq/docstream/internal/collab"
	"github.com/docstreamhq/docstream/internal/common"
	"github.com/docstreamhq/docstream/internal/httpapi"
	"github.com/docstreamhq/docstream/internal/ingest"
	"github.com/docstreamhq/docstream/internal/repository"
	"github.com/docstreamhq/docstream/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entc, pool, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer repository.Close(entc, pool, logger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.HealthTimeout); err != nil {
		logger.Error("database health check failed", "err", err)
		os.Exit(1)
	}
	store := repository.NewEntStore(entc, logger)

	eventBus, err := bus.NewRedisBus(ctx, cfg.Redis.URL, cfg.Stream.SubscriberBuffer, logger)
	if err != nil {
		logger.Error("redis connection failed", "err", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	objects, err := storage.NewMinioStore(ctx, storage.MinioConfig{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Error("object storage connection failed", "err", err)
		os.Exit(1)
	}

	conn, err := ingest.DialWorker(cfg.Worker.DialAddr)
	if err != nil {
		logger.Error("worker dial failed", "addr", cfg.Worker.DialAddr, "err", err)
		os.Exit(1)
	}
	defer conn.Close()
	dispatcher := ingest.NewGRPCDispatcher(conn)

	ingestSvc := ingest.NewService(store, objects, dispatcher, logger, cfg.Upload.MaxBytes, cfg.Worker.DispatchTimeout)

	hub := collab.NewHub(eventBus, logger)
	defer hub.Close()

	router := httpapi.NewRouter(httpapi.Deps{
		Store:  store,
		Bus:    eventBus,
		Ingest: ingestSvc,
		Hub:    hub,
		Health: &repository.PoolHealth{Pool: pool},
		Logger: logger,
	}, cfg)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "err", err)
	}
	logger.Info("stopped")
}
