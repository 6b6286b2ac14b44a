package generation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ahrav/levelforge/internal/domain"
	"github.com/ahrav/levelforge/pkg/activity"
	"github.com/ahrav/levelforge/pkg/events"
)

// Event types emitted by the pipeline.
const (
	EventLevelAccepted = "generation.level_accepted"
	EventLevelRejected = "generation.level_rejected"
)

const (
	eventSource  = "generation-pipeline"
	eventVersion = "1.0.0"

	idempotencyKeyLength = 16
)

// levelAcceptedEvent records an artifact that passed validation.
type levelAcceptedEvent struct {
	LevelNumber int    `json:"level_number"`
	LevelID     string `json:"level_id"`
	PromptHash  string `json:"prompt_hash"`
	SizeBytes   int64  `json:"size_bytes"`
}

// levelRejectedEvent records an attempt that produced no artifact.
type levelRejectedEvent struct {
	LevelNumber int                 `json:"level_number"`
	PromptHash  string              `json:"prompt_hash"`
	Stage       domain.FailureStage `json:"stage"`
	Rule        domain.Rule         `json:"rule,omitempty"`
	Reason      string              `json:"reason"`
}

// EventEmitter builds generation event envelopes and emits them best effort.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates an emitter on top of the shared activity helpers.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitLevelAccepted publishes a generation.level_accepted event.
func (e *EventEmitter) EmitLevelAccepted(ctx context.Context, a domain.Artifact, wfCtx activity.WorkflowContext) {
	e.emit(ctx, EventLevelAccepted, a.LevelNumber, wfCtx, levelAcceptedEvent{
		LevelNumber: a.LevelNumber,
		LevelID:     a.ID(),
		PromptHash:  a.PromptHash,
		SizeBytes:   a.Size(),
	})
}

// EmitLevelRejected publishes a generation.level_rejected event.
func (e *EventEmitter) EmitLevelRejected(ctx context.Context, pr domain.Prompt, gerr *Error, wfCtx activity.WorkflowContext) {
	f := gerr.Failure()
	e.emit(ctx, EventLevelRejected, pr.LevelNumber, wfCtx, levelRejectedEvent{
		LevelNumber: pr.LevelNumber,
		PromptHash:  pr.Hash,
		Stage:       f.Stage,
		Rule:        gerr.Rule,
		Reason:      f.Reason,
	})
}

func (e *EventEmitter) emit(ctx context.Context, eventType string, levelNumber int, wfCtx activity.WorkflowContext, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to marshal event", "event_type", eventType, "error", err)
		return
	}

	envelope := events.Envelope{
		ID:             uuid.New().String(),
		Type:           eventType,
		Source:         eventSource,
		Version:        eventVersion,
		Timestamp:      time.Now(),
		IdempotencyKey: EventIdempotencyKey(wfCtx.RunID, eventType, levelNumber),
		WorkflowID:     wfCtx.WorkflowID,
		RunID:          wfCtx.RunID,
		Payload:        data,
	}

	e.base.EmitEventSafe(ctx, envelope, fmt.Sprintf("%s[%s]", eventType, domain.LevelID(levelNumber)))
}

// EventIdempotencyKey derives a stable key from the run, event type and level,
// so a retried emission within the same run is recognisable as a duplicate.
func EventIdempotencyKey(runID, eventType string, levelNumber int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d", runID, eventType, levelNumber))
	return hex.EncodeToString(sum[:])[:idempotencyKeyLength]
}
