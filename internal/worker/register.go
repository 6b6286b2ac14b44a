// Package worker registers the level generation workflow and activities with
// a Temporal worker and builds their dependencies from configuration.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/levelforge/internal/generation"
	"github.com/ahrav/levelforge/internal/storage"
	"github.com/ahrav/levelforge/internal/workflow"
	"github.com/ahrav/levelforge/pkg/activity"
	"github.com/ahrav/levelforge/pkg/events"
)

// RegisterAll registers the workflow and its activities. It must be called
// once, before the worker starts.
func RegisterAll(w sdkworker.Registry, pipeline *generation.Pipeline, store storage.LevelStore, sink events.EventSink) {
	base := activity.NewBaseActivities(sink)
	activities := generation.NewActivities(base, pipeline, store)

	w.RegisterWorkflow(workflow.LevelGenerationWorkflow)

	// Methods are registered one by one; the embedded helpers are not activities.
	w.RegisterActivity(activities.GenerateLevel)
	w.RegisterActivity(activities.SaveLevel)
}
