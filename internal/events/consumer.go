package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"account-service/internal/logging"
)

const handleTimeout = 10 * time.Second

// messageReader is the subset of *kafka.Reader used by Consumer.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// HandlerFunc processes one decoded event.
type HandlerFunc func(ctx context.Context, event *Event) error

// Consumer reads account events from Kafka as part of a consumer group.
type Consumer struct {
	reader messageReader
	log    *slog.Logger
}

// NewKafkaConsumer returns a consumer for topic in groupID. Offsets are committed every second.
func NewKafkaConsumer(brokers []string, topic, groupID string, log *slog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		CommitInterval: time.Second,
	})
	return &Consumer{reader: reader, log: logging.OrDefault(log)}
}

// Run reads until ctx is cancelled. Undecodable messages and handler failures are logged and skipped.
func (c *Consumer) Run(ctx context.Context, handle HandlerFunc) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Warn("events: kafka read failed", "error", err)
			continue
		}
		event, err := decodeMessage(msg)
		if err != nil {
			c.log.Warn("events: skipping message", "offset", msg.Offset, "error", err)
			continue
		}
		handleCtx, cancel := context.WithTimeout(ctx, handleTimeout)
		if err := handle(handleCtx, event); err != nil {
			c.log.Warn("events: handler failed", "type", event.Type, "user_id", event.UserID, "error", err)
		}
		cancel()
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

func decodeMessage(msg kafka.Message) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if ev.Type == "" {
		for _, h := range msg.Headers {
			if h.Key == "event-type" {
				ev.Type = string(h.Value)
			}
		}
	}
	if ev.Type == "" {
		return nil, fmt.Errorf("decode event: missing type")
	}
	return &ev, nil
}
