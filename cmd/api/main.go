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

	"fintrack/internal/aggregator"
	"fintrack/internal/broker"
	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/logger"
	"fintrack/internal/server"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

const shutdownTimeout = 10 * time.Second

// @title           Fintrack API
// @version         1.0
// @description     Fintrack tracks expenses, budgets and income and reports where the money goes.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Snapshot cache
	snapshotCache := cache.NewLRUCache[*services.Snapshot](appConfig.SnapshotCacheSize, appConfig.SnapshotCacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(snapshotCache)
	cacheManager.StartCleanup(appConfig.SnapshotCacheSweep)
	defer cacheManager.Stop()

	var publisher services.InvalidationPublisher
	var brokerClient *broker.Client
	if appConfig.AMQPURL != "" {
		brokerClient, err = broker.NewClient(appConfig.AMQPURL, appConfig.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		defer brokerClient.Close()
		publisher = brokerClient
	} else {
		log.Info("AMQP_URL not set, snapshot invalidation stays local")
	}

	snapshots := services.NewSnapshotService(dbManager.DB(), snapshotCache, publisher)

	if brokerClient != nil {
		log.Infow("Broadcasting snapshot invalidations", "exchange", appConfig.AMQPExchange, "origin", brokerClient.Origin())
		go func() {
			if err := brokerClient.Consume(ctx, snapshots.Evict); err != nil && !errors.Is(err, context.Canceled) {
				// Remote invalidations are no longer received; entries now
				// expire by TTL only.
				snapshotCache.Purge()
				log.Errorw("Invalidation consumer stopped", "error", err)
			}
		}()
	}

	svc := server.NewServices(dbManager.DB(), server.Options{
		Snapshots: snapshots,
		Reports: services.ReportOptions{
			Evaluate:   aggregator.EvaluateOptions{Windowed: appConfig.BudgetStatusWindowed},
			WindowDays: appConfig.RollingWindowDays,
		},
	})

	if err := svc.Categories.SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}

	validator.Register()

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           server.NewRouter(svc, !appConfig.IsProduction()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Fintrack server on port %s", appConfig.Port)
		if !appConfig.IsProduction() {
			log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
