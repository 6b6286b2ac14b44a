// Package events provides the event envelope and sinks used to publish
// generation outcomes to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Envelope wraps a domain event with the metadata needed for routing,
// deduplication and correlation with the run that produced it.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type identifies the event for routing, e.g. "generation.level_accepted".
	Type string `json:"type"`

	// Source identifies the emitting component, e.g. "generation-pipeline".
	Source string `json:"source"`

	// Version of the payload schema.
	Version string `json:"version"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// IdempotencyKey lets sinks drop duplicates when an emission is retried.
	IdempotencyKey string `json:"idempotency_key"`

	// WorkflowID identifies the Temporal workflow, empty for local runs.
	WorkflowID string `json:"workflow_id,omitempty"`

	// RunID identifies the workflow run or local invocation.
	RunID string `json:"run_id"`

	// Payload contains the event data as JSON. Schema varies by Type and Version.
	Payload json.RawMessage `json:"payload"`
}

// EventSink receives emitted events.
type EventSink interface {
	// Append adds an event to the sink with best-effort delivery.
	// Callers must not fail their primary operation because of a sink error.
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink discards every event.
type NoOpEventSink struct{}

// Append implements EventSink.Append with no-op behavior.
func (n *NoOpEventSink) Append(_ context.Context, _ Envelope) error {
	return nil
}

// NewNoOpEventSink creates a new no-op event sink.
func NewNoOpEventSink() EventSink {
	return &NoOpEventSink{}
}
