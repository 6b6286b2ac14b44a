package generation

import (
	"context"
	"log/slog"

	"github.com/ahrav/levelforge/internal/domain"
	"github.com/ahrav/levelforge/internal/extract"
	"github.com/ahrav/levelforge/internal/llm"
	"github.com/ahrav/levelforge/internal/prompt"
	"github.com/ahrav/levelforge/internal/validation"
	"github.com/ahrav/levelforge/pkg/activity"
	"github.com/ahrav/levelforge/pkg/events"
)

// Validator judges a candidate definition.
type Validator interface {
	Validate(c domain.Candidate) domain.Verdict
}

// Pipeline makes single generation attempts. It holds no state between runs
// and never retries; callers decide whether to try again.
type Pipeline struct {
	client    llm.Client
	validator Validator
	events    *EventEmitter
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*pipelineOptions)

type pipelineOptions struct {
	validator Validator
	sink      events.EventSink
	logger    *slog.Logger
}

// WithValidator replaces the default rule battery.
func WithValidator(v Validator) Option {
	return func(o *pipelineOptions) { o.validator = v }
}

// WithEventSink publishes level_accepted and level_rejected events to sink.
func WithEventSink(sink events.EventSink) Option {
	return func(o *pipelineOptions) { o.sink = sink }
}

// WithLogger sets the logger for the pipeline and its default validator.
func WithLogger(l *slog.Logger) Option {
	return func(o *pipelineOptions) { o.logger = l }
}

// NewPipeline creates a pipeline around the model client.
func NewPipeline(client llm.Client, opts ...Option) *Pipeline {
	o := pipelineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.validator == nil {
		o.validator = validation.New(o.logger)
	}

	return &Pipeline{
		client:    client,
		validator: o.validator,
		events:    NewEventEmitter(activity.NewBaseActivities(o.sink)),
		logger:    o.logger.With("component", "pipeline"),
	}
}

// RunOnce builds the prompt for levelNumber and runs a single attempt.
func (p *Pipeline) RunOnce(ctx context.Context, levelNumber int, priorLevels []string) (*domain.Artifact, error) {
	return p.Run(ctx, prompt.Build(levelNumber, priorLevels))
}

// Run invokes the model with pr, extracts the first definition span from its
// output and validates it. It returns the accepted artifact, or nil and an
// *Error naming the stage that stopped the attempt.
func (p *Pipeline) Run(ctx context.Context, pr domain.Prompt) (*domain.Artifact, error) {
	wfCtx := p.events.base.GetWorkflowContext(ctx)
	log := p.logger.With(
		"level_number", pr.LevelNumber,
		"prompt_hash", pr.Hash,
		"run_id", wfCtx.RunID)
	log.InfoContext(ctx, "generating level", "prompt_length", len(pr.Text))

	activity.RecordHeartbeat(ctx, "invoking model")
	raw, err := p.client.Invoke(ctx, pr)
	if err != nil {
		gerr := &Error{Stage: domain.StageInvocation, Message: "model invocation failed", Cause: err}
		log.ErrorContext(ctx, "model invocation failed", "error", err)
		p.events.EmitLevelRejected(ctx, pr, gerr, wfCtx)
		return nil, gerr
	}

	candidate, ok := extract.Extract(raw)
	if !ok {
		gerr := &Error{Stage: domain.StageExtraction, Message: "no code found"}
		log.WarnContext(ctx, "no code found", "output_length", len(raw))
		p.events.EmitLevelRejected(ctx, pr, gerr, wfCtx)
		return nil, gerr
	}

	verdict := p.validator.Validate(candidate)
	if !verdict.Accepted {
		gerr := &Error{Stage: domain.StageValidation, Rule: verdict.Rule, Message: verdict.Reason}
		log.WarnContext(ctx, "level rejected", "rule", verdict.Rule, "reason", verdict.Reason)
		p.events.EmitLevelRejected(ctx, pr, gerr, wfCtx)
		return nil, gerr
	}

	artifact := domain.NewArtifact(pr.LevelNumber, candidate, pr.Hash)
	log.InfoContext(ctx, "level accepted", "size_bytes", artifact.Size())
	p.events.EmitLevelAccepted(ctx, artifact, wfCtx)
	return &artifact, nil
}
