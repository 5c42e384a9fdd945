// Worker consumes account events from Kafka and pushes them to Loki.
// Set KAFKA_BROKERS, ACCOUNT_EVENTS_TOPIC, KAFKA_GROUP_ID and LOKI_URL. Without LOKI_URL events are only logged.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"account-service/internal/config"
	"account-service/internal/events"
	"account-service/internal/logging"
	"account-service/internal/telemetry/loki"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	brokers := cfg.KafkaBrokersList()
	if len(brokers) == 0 {
		log.Error("worker: KAFKA_BROKERS is required")
		os.Exit(1)
	}

	handle := func(ctx context.Context, ev *events.Event) error {
		log.Info("account event", "type", ev.Type, "user_id", ev.UserID, "source", ev.Source)
		return nil
	}
	if cfg.LokiURL != "" {
		client := loki.NewClient(cfg.LokiURL)
		handle = client.PushEvent
	} else {
		log.Warn("worker: LOKI_URL not set; events are logged only")
	}

	consumer := events.NewKafkaConsumer(brokers, cfg.AccountEventsTopic, cfg.KafkaGroupID, log)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("worker: consuming", "topic", cfg.AccountEventsTopic, "group", cfg.KafkaGroupID, "loki", cfg.LokiURL)
	if err := consumer.Run(ctx, handle); err != nil {
		log.Error("worker", "error", err)
		os.Exit(1)
	}
	log.Info("worker: stopped")
}
