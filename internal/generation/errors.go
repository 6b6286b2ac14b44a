// Package generation runs the level generation pipeline: render the prompt,
// invoke the model, extract the candidate definition and validate it. It also
// exposes the pipeline and level persistence as Temporal activities.
package generation

import (
	"errors"
	"fmt"

	"github.com/ahrav/levelforge/internal/domain"
)

// Error reports the stage at which a generation attempt stopped without an
// artifact. None of these failures is retried.
type Error struct {
	// Stage is where the pipeline stopped.
	Stage domain.FailureStage
	// Rule is the failing validation rule; set only for the validation stage.
	Rule domain.Rule
	// Message is the operator-facing diagnostic.
	Message string
	// Cause wraps the underlying error, if any.
	Cause error
}

// Error formats the error as "<stage> failure: <message>[: <cause>]".
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failure: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s failure: %s", e.Stage, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Failure converts the error into the value reported by the GenerateLevel activity.
func (e *Error) Failure() *domain.Failure {
	reason := e.Message
	if e.Cause != nil {
		reason = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return &domain.Failure{Stage: e.Stage, Reason: reason}
}

// StageOf returns the failure stage carried by err.
func StageOf(err error) (domain.FailureStage, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Stage, true
	}
	return "", false
}
