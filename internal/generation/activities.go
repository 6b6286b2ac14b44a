package generation

import (
	"context"
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/levelforge/internal/domain"
	"github.com/ahrav/levelforge/internal/prompt"
	"github.com/ahrav/levelforge/internal/storage"
	"github.com/ahrav/levelforge/pkg/activity"
)

// Activities exposes the pipeline and level persistence to Temporal workflows.
type Activities struct {
	activity.BaseActivities
	pipeline *Pipeline
	store    storage.LevelStore
}

// NewActivities creates generation activities.
func NewActivities(base activity.BaseActivities, pipeline *Pipeline, store storage.LevelStore) *Activities {
	return &Activities{
		BaseActivities: base,
		pipeline:       pipeline,
		store:          store,
	}
}

// GenerateLevel makes one generation attempt for the request.
//
// A failed attempt is an expected outcome and is returned in the output's
// Failure field with a nil error. Errors are returned only for invalid input
// and for cancellation, so the workflow's no-retry policy is never tested by
// ordinary model misbehaviour.
func (a *Activities) GenerateLevel(ctx context.Context, req domain.GenerationRequest) (*domain.GenerateLevelOutput, error) {
	if err := req.Validate(); err != nil {
		return nil, nonRetryable("GenerateLevel", err, "invalid generation request")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting GenerateLevel activity",
		"workflow_id", wfCtx.WorkflowID,
		"activity_id", wfCtx.ActivityID,
		"level_number", req.LevelNumber)

	artifact, err := a.pipeline.Run(ctx, prompt.FromRequest(req))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var gerr *Error
		if !errors.As(err, &gerr) {
			return nil, nonRetryable("GenerateLevel", err, "generation failed")
		}
		activity.SafeLog(ctx, "GenerateLevel produced no artifact",
			"stage", gerr.Stage,
			"reason", gerr.Message)
		return &domain.GenerateLevelOutput{Failure: gerr.Failure()}, nil
	}

	activity.SafeLog(ctx, "GenerateLevel accepted a level",
		"level_id", artifact.ID(),
		"size_bytes", artifact.Size())
	return &domain.GenerateLevelOutput{Artifact: artifact}, nil
}

// SaveLevel persists an accepted artifact, overwriting any earlier artifact
// for the same level.
func (a *Activities) SaveLevel(ctx context.Context, artifact domain.Artifact) (*domain.SaveLevelOutput, error) {
	if err := artifact.Validate(); err != nil {
		return nil, nonRetryable("SaveLevel", err, "invalid artifact")
	}

	location, err := a.store.Save(ctx, artifact)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to save level",
			"level_id", artifact.ID(),
			"error", err)
		return nil, nonRetryable("SaveLevel", err, "failed to save level")
	}

	activity.SafeLog(ctx, "Level saved",
		"level_id", artifact.ID(),
		"location", location,
		"size_bytes", artifact.Size())
	return &domain.SaveLevelOutput{Location: location}, nil
}

// nonRetryable wraps an error as a Temporal non-retryable application error.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
