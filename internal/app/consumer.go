package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-presence/internal/audit"
	"go-presence/internal/config"
	"go-presence/internal/events"
	"go-presence/internal/messaging/kafka/consumer"
	"go-presence/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer writes attendance confirmations from Kafka to the audit log.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := gormDB.AutoMigrate(&audit.AuditLog{}); err != nil {
		return err
	}

	auditService := audit.NewService(audit.NewRepository(gormDB), cfg.Location)

	reader := connection.NewKafkaReader(cfg.KafkaBroker, events.AttendanceClockedTopic, cfg.AuditConsumerGroup)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeAttendanceClocked(ctx, reader, auditService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
