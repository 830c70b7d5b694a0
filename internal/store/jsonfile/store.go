// Package jsonfile provides JSON file-based persistence.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hay-kot/scribe/internal/core/project"
)

// RecentFile is the root JSON structure stored on disk.
type RecentFile struct {
	Projects []project.Recent `json:"projects"`
}

// RecentStore implements project.RecentStore using a JSON file for persistence.
type RecentStore struct {
	path  string
	limit int
	now   func() time.Time
	mu    sync.RWMutex
}

// NewRecentStore creates a store at path keeping at most limit entries.
func NewRecentStore(path string, limit int) *RecentStore {
	return &RecentStore{path: path, limit: limit, now: time.Now}
}

// List returns recent projects, most recent first.
func (s *RecentStore) List(ctx context.Context) ([]project.Recent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return file.Projects, nil
}

// Touch moves root to the front of the list, adding it if needed.
func (s *RecentStore) Touch(ctx context.Context, root string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	projects := make([]project.Recent, 0, len(file.Projects)+1)
	projects = append(projects, project.Recent{Root: root, OpenedAt: s.now()})
	for _, p := range file.Projects {
		if p.Root != root {
			projects = append(projects, p)
		}
	}
	if s.limit > 0 && len(projects) > s.limit {
		projects = projects[:s.limit]
	}
	file.Projects = projects

	return s.save(file)
}

// Remove drops root from the list. Removing an unknown root is a no-op.
func (s *RecentStore) Remove(ctx context.Context, root string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	kept := file.Projects[:0]
	for _, p := range file.Projects {
		if p.Root != root {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(file.Projects) {
		return nil
	}
	file.Projects = kept

	return s.save(file)
}

// load reads the file from disk.
// Returns an empty RecentFile if the file doesn't exist.
func (s *RecentStore) load() (RecentFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return RecentFile{}, nil
		}
		return RecentFile{}, fmt.Errorf("read recent file: %w", err)
	}

	if len(data) == 0 {
		return RecentFile{}, nil
	}

	var file RecentFile
	if err := json.Unmarshal(data, &file); err != nil {
		return RecentFile{}, fmt.Errorf("parse recent file: %w", err)
	}

	return file, nil
}

// save writes the file to disk atomically.
// Uses write-to-temp-then-rename to prevent corruption from interrupted writes.
func (s *RecentStore) save(file RecentFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal recent projects: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
