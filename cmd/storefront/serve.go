package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dwikikusuma/printshop/pkg/config"
	"github.com/dwikikusuma/printshop/pkg/kvstore"
	"github.com/dwikikusuma/printshop/pkg/logger"
	"github.com/dwikikusuma/printshop/pkg/shutdown"
	"github.com/dwikikusuma/printshop/pkg/sqldb"
)

const stopTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(parent)
	defer cancel()

	db, err := sqldb.Open(ctx, sqldb.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		return err
	}
	defer db.Close()
	if err := sqldb.Migrate(ctx, db); err != nil {
		return err
	}

	var store kvstore.Store = kvstore.NewMemory()
	if cfg.RedisURL != "" {
		rdb, err := kvstore.NewRedisClient(ctx, kvstore.RedisConfig{URL: cfg.RedisURL})
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = kvstore.NewRedis(rdb)
		log.Info("session state in redis")
	} else {
		log.Warn("REDIS_URL not set, session state is kept in memory")
	}

	router, err := buildRouter(ctx, deps{
		cfg:   cfg,
		log:   log,
		db:    db,
		store: store,
		fs:    afero.NewOsFs(),
	})
	if err != nil {
		return err
	}

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		return err
	}

	healthSrv := health.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()
	go func() {
		defer wg.Done()
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("grpc serve error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")
	healthSrv.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	if !shutdown.Graceful(stopTimeout, grpcServer.GracefulStop, grpcServer.Stop) {
		log.Warn("graceful stop timeout, forcing stop")
	}

	wg.Wait()
	log.Info("bye")
	return nil
}
