package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ahrav/levelforge/internal/domain"
)

// levelFileExt is the extension of exported level modules.
const levelFileExt = ".js"

// FileStore writes each artifact to <dir>/level<N>.js, the layout the game
// loads its levels from.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the levels directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file path for levelNumber.
func (s *FileStore) Path(levelNumber int) string {
	return filepath.Join(s.dir, domain.LevelID(levelNumber)+levelFileExt)
}

// Save writes the artifact content verbatim, replacing any existing file.
// The content goes to a temporary file first so readers never see a partial level.
func (s *FileStore) Save(_ context.Context, a domain.Artifact) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create levels dir: %w", err)
	}

	path := s.Path(a.LevelNumber)
	tmp, err := os.CreateTemp(s.dir, "."+domain.LevelID(a.LevelNumber)+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(a.Content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename into %s: %w", path, err)
	}
	return path, nil
}

// Load reads a level file. The returned artifact has no prompt hash.
func (s *FileStore) Load(_ context.Context, levelNumber int) (domain.Artifact, error) {
	data, err := os.ReadFile(s.Path(levelNumber))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Artifact{}, fmt.Errorf("%w: %s", ErrLevelNotFound, domain.LevelID(levelNumber))
	}
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("read level: %w", err)
	}
	return domain.Artifact{LevelNumber: levelNumber, Content: string(data)}, nil
}

// Exists reports whether the level file is present.
func (s *FileStore) Exists(_ context.Context, levelNumber int) (bool, error) {
	_, err := os.Stat(s.Path(levelNumber))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat level: %w", err)
	}
}

// List scans the directory for level<N>.js files. A missing directory holds no levels.
func (s *FileStore) List(_ context.Context) ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read levels dir: %w", err)
	}

	var levels []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, ok := strings.CutSuffix(e.Name(), levelFileExt)
		if !ok {
			continue
		}
		if n, ok := parseLevelID(id); ok {
			levels = append(levels, n)
		}
	}
	slices.Sort(levels)
	return levels, nil
}
