package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ahrav/levelforge/internal/domain"
	"github.com/ahrav/levelforge/internal/generation"
)

// Activity timeouts. A local model can take several minutes per level.
const (
	generateTimeout = 30 * time.Minute
	saveTimeout     = time.Minute
)

// noRetry runs each activity exactly once.
var noRetry = &temporal.RetryPolicy{MaximumAttempts: 1}

// LevelGenerationWorkflow generates one level and persists it when accepted.
// A rejected attempt completes successfully with Accepted false and the
// failure recorded in the result.
func LevelGenerationWorkflow(ctx workflow.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "level-generation.v", workflow.DefaultVersion, currentVersion)

	if err := req.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid generation request",
			"Validation",
			err,
		)
	}

	logger := workflow.GetLogger(ctx)
	var a *generation.Activities

	genCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: generateTimeout,
		RetryPolicy:         noRetry,
	})
	var gen domain.GenerateLevelOutput
	if err := workflow.ExecuteActivity(genCtx, a.GenerateLevel, req).Get(ctx, &gen); err != nil {
		return nil, err
	}

	result := &domain.GenerationResult{LevelNumber: req.LevelNumber}
	if gen.Artifact == nil {
		result.Failure = gen.Failure
		logger.Info("Level not generated",
			"level_number", req.LevelNumber,
			"stage", failureStage(gen.Failure))
		return result, nil
	}

	saveCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: saveTimeout,
		RetryPolicy:         noRetry,
	})
	var saved domain.SaveLevelOutput
	if err := workflow.ExecuteActivity(saveCtx, a.SaveLevel, *gen.Artifact).Get(ctx, &saved); err != nil {
		return nil, err
	}

	result.Accepted = true
	result.Location = saved.Location
	logger.Info("Level generated",
		"level_number", req.LevelNumber,
		"location", saved.Location)
	return result, nil
}

func failureStage(f *domain.Failure) domain.FailureStage {
	if f == nil {
		return ""
	}
	return f.Stage
}
