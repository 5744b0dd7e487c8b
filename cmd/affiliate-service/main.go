package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/LavaJover/shvark-affiliate-service/internal/app/background"
	"github.com/LavaJover/shvark-affiliate-service/internal/client"
	"github.com/LavaJover/shvark-affiliate-service/internal/config"
	deliveryamqp "github.com/LavaJover/shvark-affiliate-service/internal/delivery/amqp"
	"github.com/LavaJover/shvark-affiliate-service/internal/domain"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/clickhouse"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-affiliate-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-affiliate-service/internal/usecase"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.AffiliateDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.AffiliateDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Kafka sync event publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	syncPublisher := kafka.NewKafkaPublisher(brokers, cfg.KafkaService.Topic)
	defer syncPublisher.Close()

	// Optional analytics sink
	var analytics domain.AnalyticsSink
	if cfg.ClickHouse.Enabled {
		chClient, err := clickhouse.NewClient(cfg.ClickHouse)
		if err != nil {
			log.Fatalf("failed to init clickhouse: %v", err)
		}
		defer chClient.Close()
		analytics = chClient
	}

	// Init sync repo
	syncRepo := repository.NewDefaultSyncRepository(db)
	// Init audit logger
	auditLogger := logger.NewPGSyncEventLogger(db)
	// Init metrics
	syncMetrics := metrics.NewSyncMetrics()

	// Init sync usecase
	uc := usecase.NewDefaultSyncUsecase(
		syncRepo,
		syncPublisher,
		analytics,
		auditLogger,
		syncMetrics,
		usecase.SyncOptions{
			ReactivateCampaigns: cfg.Sync.ReactivateCampaigns,
			StrictNormalization: cfg.Sync.StrictNormalization,
		},
	)

	// Network API fetchers, one per configured account
	fetchers := make(map[string]client.Fetcher)
	for _, account := range cfg.Networks {
		fetcher, err := client.ForAccount(account)
		if err != nil {
			log.Fatalf("failed to init fetcher for %s: %v", account.Network, err)
		}
		fetchers[deliveryamqp.AccountKey(account.NetworkID, account.UserID)] = fetcher
	}

	// Sync job consumer
	consumer, err := deliveryamqp.NewConsumer(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("failed to init rabbitmq consumer: %v", err)
	}
	defer consumer.Close()

	worker := deliveryamqp.NewSyncJobWorker(consumer, uc, fetchers, cfg.RabbitMQ.SyncJobQueue)
	go func() {
		if err := worker.Start(); err != nil {
			log.Fatalf("sync job worker stopped: %v", err)
		}
	}()

	// Background tasks
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tasks := background.NewBackgroundTasks(uc, auditLogger, fetchers, cfg.Networks, cfg.Sync)
	tasks.StartAll(ctx)

	// Metrics endpoint
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
		log.Printf("metrics server started on %s\n", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Fatalf("metrics server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down affiliate sync service")
}
