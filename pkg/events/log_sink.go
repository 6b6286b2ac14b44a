package events

import (
	"context"
	"log/slog"
)

// LogEventSink writes each event as a structured log record.
// It is the default sink for local runs where no event consumer exists.
type LogEventSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogEventSink creates a sink logging at info level.
// A nil logger falls back to slog.Default.
func NewLogEventSink(logger *slog.Logger) *LogEventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventSink{
		logger: logger.With("component", "events"),
		level:  slog.LevelInfo,
	}
}

// Append implements EventSink.
func (s *LogEventSink) Append(ctx context.Context, e Envelope) error {
	s.logger.Log(ctx, s.level, "event",
		"event_id", e.ID,
		"event_type", e.Type,
		"source", e.Source,
		"version", e.Version,
		"idempotency_key", e.IdempotencyKey,
		"workflow_id", e.WorkflowID,
		"run_id", e.RunID,
		"payload", string(e.Payload))
	return nil
}
