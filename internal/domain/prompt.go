package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Prompt is a rendered generation request ready for the model.
// Downstream stages treat Text as opaque; Hash exists for audit trails so an
// accepted level can be traced back to the exact instructions that produced it.
type Prompt struct {
	// LevelNumber is the level the prompt asks for.
	LevelNumber int `json:"level_number"`

	// Text is the full instruction text sent to the model.
	Text string `json:"text" validate:"required"`

	// Hash is the hex SHA-256 of Text.
	Hash string `json:"hash" validate:"required,len=64,hexadecimal"`
}

// NewPrompt wraps rendered text with its content hash.
func NewPrompt(levelNumber int, text string) Prompt {
	return Prompt{
		LevelNumber: levelNumber,
		Text:        text,
		Hash:        hashText(text),
	}
}

// Validate checks that the prompt carries text and a well-formed hash.
// Returns nil if valid, or a validation error describing the first constraint violation.
func (p Prompt) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPrompt, err)
	}
	return nil
}

func hashText(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
