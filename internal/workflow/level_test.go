package workflow //nolint:testpackage

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/ahrav/levelforge/internal/domain"
	"github.com/ahrav/levelforge/internal/generation"
	"github.com/ahrav/levelforge/internal/llm"
	"github.com/ahrav/levelforge/internal/storage"
	"github.com/ahrav/levelforge/pkg/activity"
	"github.com/ahrav/levelforge/pkg/events"
)

const acceptedLevel = `import { GATE_TYPES } from './types';
export const level9 = {
  id: 'level9',
  title: 'Crossing Paths',
  description: 'Combine NAND and NOR stages.',
  difficulty: 6,
  availableGates: [GATE_TYPES.AND, GATE_TYPES.OR, GATE_TYPES.NAND, GATE_TYPES.NOR],
  initialNodes: [
    { id: 'a', type: GATE_TYPES.INPUT, position: { x: 100, y: 100 } },
    { id: 'b', type: GATE_TYPES.NAND, position: { x: 300, y: 100 } },
    { id: 'c', type: GATE_TYPES.NOR, position: { x: 500, y: 200 } },
    { id: 'd', type: GATE_TYPES.OUTPUT, position: { x: 700, y: 200 } }
  ],
  expectedTruthTable: [
    { a: 0, output: 1 }, { a: 1, output: 0 }, { a: 0, output: 1 }, { a: 1, output: 0 }
  ]
};`

var priorLevels = []string{"NOT", "AND", "OR", "NAND", "NOR", "XOR", "XNOR"}

type countingStore struct {
	*storage.InMemoryStore
	saves atomic.Int32
	err   error
}

func (s *countingStore) Save(ctx context.Context, a domain.Artifact) (string, error) {
	s.saves.Add(1)
	if s.err != nil {
		return "", s.err
	}
	return s.InMemoryStore.Save(ctx, a)
}

func newEnv(t *testing.T, client llm.Client, store storage.LevelStore) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()

	pipeline := generation.NewPipeline(client, generation.WithLogger(slog.New(slog.DiscardHandler)))
	activities := generation.NewActivities(activity.NewBaseActivities(events.NewNoOpEventSink()), pipeline, store)
	env.RegisterActivity(activities.GenerateLevel)
	env.RegisterActivity(activities.SaveLevel)
	env.RegisterWorkflow(LevelGenerationWorkflow)
	return env
}

func fixedOutput(out string) llm.Client {
	return llm.ClientFunc(func(context.Context, domain.Prompt) (domain.RawOutput, error) {
		return domain.RawOutput(out), nil
	})
}

func TestLevelGenerationWorkflow_AcceptedLevelIsSaved(t *testing.T) {
	store := &countingStore{InMemoryStore: storage.NewInMemoryStore()}
	env := newEnv(t, fixedOutput("Sure!\n"+acceptedLevel+"\nEnjoy."), store)

	env.ExecuteWorkflow(LevelGenerationWorkflow, domain.GenerationRequest{LevelNumber: 9, PriorLevels: priorLevels})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result domain.GenerationResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.True(t, result.Accepted)
	assert.Equal(t, 9, result.LevelNumber)
	assert.Equal(t, "memory://level9", result.Location)
	assert.Nil(t, result.Failure)

	saved, err := store.Load(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, acceptedLevel, saved.Content)
	assert.Equal(t, int32(1), store.saves.Load())
}

func TestLevelGenerationWorkflow_FailedAttemptSavesNothing(t *testing.T) {
	tests := []struct {
		name      string
		client    llm.Client
		wantStage domain.FailureStage
	}{
		{
			name: "model unavailable",
			client: llm.ClientFunc(func(context.Context, domain.Prompt) (domain.RawOutput, error) {
				return "", &llm.InvocationError{Type: llm.ErrorTypeUnavailable, Backend: llm.BackendCLI}
			}),
			wantStage: domain.StageInvocation,
		},
		{name: "no definition", client: fixedOutput("I am unable to comply."), wantStage: domain.StageExtraction},
		{name: "rejected", client: fixedOutput("import x from 'y';\n};"), wantStage: domain.StageValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{InMemoryStore: storage.NewInMemoryStore()}
			env := newEnv(t, tt.client, store)

			env.ExecuteWorkflow(LevelGenerationWorkflow, domain.GenerationRequest{LevelNumber: 9, PriorLevels: priorLevels})
			require.True(t, env.IsWorkflowCompleted())
			require.NoError(t, env.GetWorkflowError())

			var result domain.GenerationResult
			require.NoError(t, env.GetWorkflowResult(&result))
			assert.False(t, result.Accepted)
			require.NotNil(t, result.Failure)
			assert.Equal(t, tt.wantStage, result.Failure.Stage)
			assert.Equal(t, int32(0), store.saves.Load())
		})
	}
}

func TestLevelGenerationWorkflow_SaveFailureIsNotRetried(t *testing.T) {
	store := &countingStore{InMemoryStore: storage.NewInMemoryStore(), err: errors.New("read-only file system")}
	env := newEnv(t, fixedOutput(acceptedLevel), store)

	env.ExecuteWorkflow(LevelGenerationWorkflow, domain.GenerationRequest{LevelNumber: 9})
	require.True(t, env.IsWorkflowCompleted())

	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, int32(1), store.saves.Load())
}

func TestLevelGenerationWorkflow_InvalidRequest(t *testing.T) {
	var calls atomic.Int32
	client := llm.ClientFunc(func(context.Context, domain.Prompt) (domain.RawOutput, error) {
		calls.Add(1)
		return "", nil
	})
	env := newEnv(t, client, storage.NewInMemoryStore())

	env.ExecuteWorkflow(LevelGenerationWorkflow, domain.GenerationRequest{LevelNumber: 0})
	require.True(t, env.IsWorkflowCompleted())

	err := env.GetWorkflowError()
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Validation", appErr.Type())
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, int32(0), calls.Load())
}
