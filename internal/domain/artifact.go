package domain

import "fmt"

// RawOutput is the text captured from a successful model invocation.
type RawOutput string

// Candidate is a text fragment extracted from model output that is believed to
// encode a level definition. It is never parsed; validation works on its shape.
type Candidate string

// Artifact is a candidate that passed every validation rule.
// It is the only entity that is ever persisted.
type Artifact struct {
	// LevelNumber is the level this artifact defines.
	LevelNumber int `json:"level_number"`

	// Content is the accepted candidate, written verbatim on save.
	Content string `json:"content" validate:"required"`

	// PromptHash links the artifact to the prompt that produced it.
	// Empty for artifacts that did not come from a generation run.
	PromptHash string `json:"prompt_hash,omitempty" validate:"omitempty,len=64,hexadecimal"`
}

// NewArtifact promotes an accepted candidate to an artifact.
func NewArtifact(levelNumber int, c Candidate, promptHash string) Artifact {
	return Artifact{
		LevelNumber: levelNumber,
		Content:     string(c),
		PromptHash:  promptHash,
	}
}

// ID returns the level identifier, e.g. "level9".
func (a Artifact) ID() string { return LevelID(a.LevelNumber) }

// Size returns the content length in bytes.
func (a Artifact) Size() int64 { return int64(len(a.Content)) }

// Validate checks that the artifact has content and a well-formed prompt hash.
func (a Artifact) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	return nil
}

// LevelID formats the identifier used for level exports and file names.
func LevelID(levelNumber int) string { return fmt.Sprintf("level%d", levelNumber) }
