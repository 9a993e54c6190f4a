package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/blenbot/flight-booking/config"
	"github.com/blenbot/flight-booking/internal/email"
	"github.com/blenbot/flight-booking/internal/kafka"
)

// The worker consumes booking notifications and sends (mock) e-mails.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logger)
	defer consumer.Close()

	emailSender := email.NewSender()

	logger.Info("notifications worker started", "topic", cfg.Kafka.NotificationsTopic)
	if err := consumer.Consume(ctx, emailSender.Send); err != nil && ctx.Err() == nil {
		logger.Error("consumer stopped", "error", err)
	}
}
