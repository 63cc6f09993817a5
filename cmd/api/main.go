package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/ennichirag3/blue-carbon-frontend/config"
	"github.com/ennichirag3/blue-carbon-frontend/internal/bootstrap"
	"github.com/ennichirag3/blue-carbon-frontend/internal/logging"
	cronjob "github.com/ennichirag3/blue-carbon-frontend/internal/projects/cron"
)

const serviceName = "bluecarbon-store"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Zap().Error("server error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Zap().Info("server shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	bootstrap.SetGinMode(cfg.App.Environment)

	repo, err := bootstrap.OpenRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	purge := cronjob.NewScheduler(repo, cfg.Purge.Schedule, cfg.Purge.Retention, logger.Named("purge"))
	if err := purge.Start(); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Backend:        cfg.Server.Backend,
		Repo:           repo,
		Logger:         logger,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		Registry:       registry,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Zap().Info("project store listening",
			zap.String("addr", srv.Addr),
			zap.String("backend", cfg.Server.Backend),
			zap.String("version", cfg.App.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Zap().Info("shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	purge.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
