// Package telemetry records operational diagnostics events.
package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mergington/activities-web/internal/web/storage"
)

// Emitter records failure events. It is safe to use with a nil store.
type Emitter struct {
	store storage.DiagnosticsStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.DiagnosticsStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a failure event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, evt storage.FailureEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.ID == "" {
		evt.ID = uuid.New().String()
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	return e.store.AppendFailureEvent(ctx, evt)
}
