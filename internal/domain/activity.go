// Package domain defines the data model for level generation: requests,
// prompts, model output, candidate definitions, verdicts and accepted artifacts,
// plus the operation contracts exchanged between workflows and activities.
//
// Candidates are text. Nothing in this package parses level source; structural
// checks live in the validation package and operate on the literal text.
package domain

// FailureStage identifies the pipeline stage at which a generation attempt stopped.
type FailureStage string

const (
	// StageInvocation means the model could not be run or exited with failure.
	StageInvocation FailureStage = "invocation"

	// StageExtraction means the model output contained no definition span.
	StageExtraction FailureStage = "extraction"

	// StageValidation means a candidate was found but violated a rule.
	StageValidation FailureStage = "validation"
)

// GenerateLevelOutput is returned by the GenerateLevel activity.
// Exactly one of Artifact or Failure is set. A failure is an expected outcome
// and is reported as data, not as an activity error.
type GenerateLevelOutput struct {
	Artifact *Artifact `json:"artifact,omitempty"`
	Failure  *Failure  `json:"failure,omitempty"`
}

// Failure describes why a generation attempt produced no artifact.
type Failure struct {
	Stage  FailureStage `json:"stage"`
	Reason string       `json:"reason"`
}

// SaveLevelOutput is returned by the SaveLevel activity.
type SaveLevelOutput struct {
	// Location is where the artifact was written (file path or storage key).
	Location string `json:"location"`
}

// GenerationResult summarises one workflow run.
type GenerationResult struct {
	LevelNumber int      `json:"level_number"`
	Accepted    bool     `json:"accepted"`
	Location    string   `json:"location,omitempty"`
	Failure     *Failure `json:"failure,omitempty"`
}
