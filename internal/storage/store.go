// Package storage persists accepted level artifacts.
//
// Every backend keys artifacts by level number, so saving level N twice
// overwrites the first artifact. Content is stored verbatim.
package storage

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/ahrav/levelforge/internal/domain"
)

// ErrLevelNotFound is returned by Load when no artifact exists for a level.
var ErrLevelNotFound = errors.New("level not found")

// LevelStore persists and retrieves level artifacts.
type LevelStore interface {
	// Save writes the artifact and returns where it was written.
	Save(ctx context.Context, a domain.Artifact) (string, error)

	// Load returns the stored artifact for levelNumber or ErrLevelNotFound.
	Load(ctx context.Context, levelNumber int) (domain.Artifact, error)

	// Exists reports whether an artifact is stored for levelNumber.
	Exists(ctx context.Context, levelNumber int) (bool, error)

	// List returns stored level numbers in ascending order.
	List(ctx context.Context) ([]int, error)
}

// parseLevelID is the inverse of domain.LevelID.
func parseLevelID(id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, "level")
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || strconv.Itoa(n) != digits {
		return 0, false
	}
	return n, true
}
