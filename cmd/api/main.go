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

	"go.uber.org/zap"

	"github.com/Villegascvrr/tricketv0-sub002/docs"
	"github.com/Villegascvrr/tricketv0-sub002/internal/config"
	"github.com/Villegascvrr/tricketv0-sub002/internal/handler"
	"github.com/Villegascvrr/tricketv0-sub002/internal/logger"
	"github.com/Villegascvrr/tricketv0-sub002/internal/queue/sqs"
	"github.com/Villegascvrr/tricketv0-sub002/internal/repository/clickhouse"
	"github.com/Villegascvrr/tricketv0-sub002/internal/service"
	"github.com/Villegascvrr/tricketv0-sub002/internal/stats"
)

// @title Festival Ticket Statistics API
// @version 1.0
// @description Ticket import and sales statistics for the festival command center
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	log.Info("Starting API service",
		zap.String("port", cfg.Service.APIPort))

	docs.SwaggerInfo.Host = cfg.Service.Host

	statsConfig, err := cfg.StatsConfig()
	if err != nil {
		log.Fatal("Invalid statistics configuration", zap.Error(err))
	}

	ctx := context.Background()

	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	clickhouseClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
	if err != nil {
		log.Fatal("Failed to create ClickHouse client", zap.Error(err))
	}
	defer func(clickhouseClient *clickhouse.Client) {
		if err := clickhouseClient.Close(); err != nil {
			log.Error("Failed to close ClickHouse client", zap.Error(err))
		}
	}(clickhouseClient)

	repo := clickhouse.NewRepository(clickhouseClient, log)
	if err := repo.InitSchema(ctx); err != nil {
		log.Fatal("Failed to initialize schema", zap.Error(err))
	}

	engine := stats.NewEngine(repo, statsConfig, log)

	h := handler.NewHandler(
		service.NewTicketService(sqsClient, log),
		service.NewStatsService(engine, log),
		service.NewCapacityService(repo, log),
		log,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Service.APIPort),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API server starting", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
