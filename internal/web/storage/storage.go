// Package storage defines persistence contracts for web-local diagnostics.
//
// The store never holds catalog data; the upstream server stays the sole
// source of truth for activity state.
package storage

import (
	"context"
	"time"
)

// FailureEvent records one failed upstream operation.
type FailureEvent struct {
	ID        string
	Op        string
	Target    string
	Detail    string
	Timestamp time.Time
}

// Operation names recorded in failure events.
const (
	OpFetch      = "fetch"
	OpSignup     = "signup"
	OpUnregister = "unregister"
)

// DiagnosticsStore appends failure events for later inspection.
type DiagnosticsStore interface {
	AppendFailureEvent(ctx context.Context, evt FailureEvent) error
}
