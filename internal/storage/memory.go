package storage

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/ahrav/levelforge/internal/domain"
)

// InMemoryStore keeps artifacts in a map. Suitable for tests and dry runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	levels map[int]domain.Artifact
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{levels: make(map[int]domain.Artifact)}
}

// Save stores the artifact, replacing any previous one for the level.
func (s *InMemoryStore) Save(_ context.Context, a domain.Artifact) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[a.LevelNumber] = a
	return "memory://" + a.ID(), nil
}

// Load returns the stored artifact.
func (s *InMemoryStore) Load(_ context.Context, levelNumber int) (domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.levels[levelNumber]
	if !ok {
		return domain.Artifact{}, fmt.Errorf("%w: %s", ErrLevelNotFound, domain.LevelID(levelNumber))
	}
	return a, nil
}

// Exists reports whether the level is stored.
func (s *InMemoryStore) Exists(_ context.Context, levelNumber int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.levels[levelNumber]
	return ok, nil
}

// List returns stored level numbers in ascending order.
func (s *InMemoryStore) List(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.levels)), nil
}

// Len returns the number of stored artifacts.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.levels)
}
