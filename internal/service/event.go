package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"go.uber.org/zap"
)

// EventWriter is the subset of the event producer the services need.
type EventWriter interface {
	Write(ctx context.Context, kind string, body io.Reader) error
}

// emitEvent delivers a notification payload best effort. Failures are logged,
// never surfaced; the state change already committed.
func emitEvent(ctx context.Context, w EventWriter, kind string, payload any) {
	if w == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		zap.S().Named("service").Errorw("failed to marshal event payload", "error", err, "event_kind", kind)
		return
	}
	if err := w.Write(ctx, kind, bytes.NewBuffer(data)); err != nil {
		zap.S().Named("service").Errorw("failed to write event", "error", err, "event_kind", kind)
	}
}

type nowFunc func() time.Time
