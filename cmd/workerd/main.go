// workerd hosts the ProcessingService gRPC surface and the background
// execution engine.
package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	docstreamv1 "github.com/docstreamhq/docstream/gen/proto/docstream/v1"
	"github.com/docstreamhq/docstream/internal/bus"
	"github.com/docstreamhq/docstream/internal/common"
	"github.com/docstreamhq/docstream/internal/repository"
	"github.com/docstreamhq/docstream/internal/server"
	"github.com/docstreamhq/docstream/internal/worker"
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

	engine := worker.NewEngine(store, eventBus, logger, cfg.Worker.PageDelay, cfg.Worker.PageCount)

	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	svc := server.NewProcessingService(store, eventBus, engine, logger)
	docstreamv1.RegisterProcessingServiceServer(grpcServer, svc)

	lis, err := net.Listen("tcp", cfg.Worker.GRPCAddr)
	if err != nil {
		logger.Error("listen failed", "addr", cfg.Worker.GRPCAddr, "err", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("grpc serving", "addr", cfg.Worker.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	grpcServer.GracefulStop()
	// In-flight page loops finish so their jobs land on a terminal status.
	engine.Wait()
	logger.Info("stopped")
}
