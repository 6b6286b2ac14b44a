package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahrav/levelforge/internal/domain"
	"github.com/ahrav/levelforge/internal/storage"
)

// RunAndSave makes one attempt for levelNumber and saves the artifact only if
// it was accepted. A generation failure is reported in the result, not as an
// error; the error is reserved for persistence failures and unexpected errors.
func RunAndSave(
	ctx context.Context,
	p *Pipeline,
	store storage.LevelStore,
	levelNumber int,
	priorLevels []string,
) (*domain.GenerationResult, error) {
	result := &domain.GenerationResult{LevelNumber: levelNumber}

	artifact, err := p.RunOnce(ctx, levelNumber, priorLevels)
	if err != nil {
		var gerr *Error
		if !errors.As(err, &gerr) {
			return nil, err
		}
		result.Failure = gerr.Failure()
		return result, nil
	}

	location, err := store.Save(ctx, *artifact)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", artifact.ID(), err)
	}

	result.Accepted = true
	result.Location = location
	return result, nil
}
