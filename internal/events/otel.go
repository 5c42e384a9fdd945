package events

import (
	"context"
	"encoding/json"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// recordEmitter is the subset of otellog.Logger used by OTelEmitter.
type recordEmitter interface {
	Emit(ctx context.Context, record otellog.Record)
}

// OTelEmitter sends account events as OTel log records.
type OTelEmitter struct {
	logger recordEmitter
}

// NewOTelEmitter returns an Emitter backed by provider. If provider is nil, returns nil.
func NewOTelEmitter(provider *sdklog.LoggerProvider) *OTelEmitter {
	if provider == nil {
		return nil
	}
	return &OTelEmitter{logger: provider.Logger("account.events")}
}

// Emit converts the event to an OTel log record. The JSON encoding of the event is the record body.
func (e *OTelEmitter) Emit(ctx context.Context, event *Event) error {
	if e == nil || e.logger == nil || event == nil {
		return nil
	}
	rec := otellog.Record{}
	ts := event.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	rec.SetTimestamp(ts)
	rec.SetEventName(event.Type)
	if body, err := json.Marshal(event); err == nil {
		rec.SetBody(otellog.BytesValue(body))
	}
	rec.AddAttributes(otellog.String("event_type", event.Type))
	if event.UserID != "" {
		rec.AddAttributes(otellog.String("user_id", event.UserID))
	}
	if event.Source != "" {
		rec.AddAttributes(otellog.String("source", event.Source))
	}
	e.logger.Emit(ctx, rec)
	return nil
}
