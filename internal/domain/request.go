package domain

import "fmt"

// GenerationRequest identifies the level to generate and the levels already
// issued, which the prompt cites as difficulty context.
type GenerationRequest struct {
	// LevelNumber is the number of the level to generate.
	LevelNumber int `json:"level_number" validate:"min=1"`

	// PriorLevels lists previously issued level identifiers in order.
	// May be empty.
	PriorLevels []string `json:"prior_levels" validate:"dive,required"`
}

// NewGenerationRequest builds a validated request.
// PriorLevels is cloned so later mutation by the caller has no effect.
func NewGenerationRequest(levelNumber int, priorLevels []string) (GenerationRequest, error) {
	req := GenerationRequest{
		LevelNumber: levelNumber,
		PriorLevels: cloneStrings(priorLevels),
	}
	if err := req.Validate(); err != nil {
		return GenerationRequest{}, err
	}
	return req, nil
}

// Validate checks that the level number is positive and no prior level id is blank.
func (r GenerationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}
