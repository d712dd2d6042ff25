package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go-shiftswap/internal/config"
	"go-shiftswap/internal/messaging/kafka"
	"go-shiftswap/internal/messaging/kafka/producer"
	"go-shiftswap/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes pending outbox events until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, log)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries, log)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, log, cfg.OutboxPollInterval)

	log.Info("worker shutting down")
	return nil
}
