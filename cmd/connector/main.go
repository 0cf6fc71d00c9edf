package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ilp-connector/config"
	httpHandler "ilp-connector/internal/adapter/http/handler"
	ilpLink "ilp-connector/internal/adapter/link"
	"ilp-connector/internal/adapter/settlement"
	pgStorage "ilp-connector/internal/adapter/storage/postgres"
	redisStorage "ilp-connector/internal/adapter/storage/redis"
	"ilp-connector/internal/core/ports"
	"ilp-connector/internal/service"
	"ilp-connector/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting ILP connector")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories and stores
	accountRepo := pgStorage.NewAccountRepo(pool)
	settlementLogRepo := pgStorage.NewSettlementLogRepo(pool)
	balanceStore := redisStorage.NewBalanceStore(rdb, cfg.Settlement.IdempotencyTTL)

	// Outbound adapters
	engineClient := settlement.NewEngineClient(&http.Client{Timeout: cfg.Settlement.EngineTimeout}, log)
	link := ilpLink.NewHTTPLink(&http.Client{Timeout: cfg.Link.Timeout}, cfg.Link.PacketExpiry, log)

	var events ports.EventPublisher
	if cfg.Settlement.EventWebhookURL != "" {
		events = service.NewWebhookEventPublisher(cfg.Settlement.EventWebhookURL, &http.Client{Timeout: 10 * time.Second}, log)
	} else {
		events = service.NewLogEventPublisher(log)
	}

	// Core service
	settlementSvc := service.NewSettlementService(accountRepo, balanceStore, engineClient, link, events, settlementLogRepo, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SettlementSvc:  settlementSvc,
		AccountRepo:    accountRepo,
		BalanceStore:   balanceStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
