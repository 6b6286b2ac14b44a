package domain

import "errors"

// ErrInvalidRequest indicates that a generation request contains invalid data.
var ErrInvalidRequest = errors.New("invalid generation request")

// ErrInvalidArtifact indicates that an accepted artifact is malformed.
var ErrInvalidArtifact = errors.New("invalid level artifact")

// ErrInvalidPrompt indicates that a rendered prompt failed validation.
var ErrInvalidPrompt = errors.New("prompt validation failed")
