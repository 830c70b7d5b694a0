// Package project loads the file tree of the project being edited.
package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"
)

// ErrNoProject is returned when an operation needs a loaded project.
var ErrNoProject = errors.New("no project loaded")

// Project is a loaded project tree.
type Project struct {
	Root      string
	Files     []string // slash-separated paths relative to Root, sorted
	Truncated bool     // true when the file limit was reached
	LoadedAt  time.Time
}

// Abs returns the absolute path of a project-relative file.
func (p *Project) Abs(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}

// Options configures project scanning.
type Options struct {
	Ignore   []string
	MaxFiles int
}

// Manager loads and holds the current project.
type Manager struct {
	opts    Options
	log     zerolog.Logger
	current *Project
}

// NewManager creates a project manager.
func NewManager(opts Options, log zerolog.Logger) *Manager {
	return &Manager{opts: opts, log: log}
}

// Current returns the loaded project, or nil.
func (m *Manager) Current() *Project {
	return m.current
}

// Load scans root and makes it the current project.
func (m *Manager) Load(ctx context.Context, root string) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open project: %s is not a directory", abs)
	}

	start := time.Now()
	p := &Project{Root: abs, LoadedAt: start}

	errStop := errors.New("file limit reached")
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			m.log.Debug().Err(walkErr).Str("path", path).Msg("skipping unreadable path")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == abs {
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if m.ignored(rel) || m.ignored(rel+"/") {
				return fs.SkipDir
			}
			return nil
		}
		if m.ignored(rel) {
			return nil
		}

		if m.opts.MaxFiles > 0 && len(p.Files) >= m.opts.MaxFiles {
			p.Truncated = true
			return errStop
		}
		p.Files = append(p.Files, rel)
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, fmt.Errorf("scan project: %w", err)
	}

	sort.Strings(p.Files)
	m.current = p

	m.log.Info().
		Str("root", abs).
		Int("files", len(p.Files)).
		Bool("truncated", p.Truncated).
		Dur("elapsed", time.Since(start)).
		Msg("project loaded")

	return p, nil
}

// ignored matches rel against the ignore globs. Directories are also tried
// with a trailing slash so "dir/**" prunes the directory itself.
func (m *Manager) ignored(rel string) bool {
	for _, pattern := range m.opts.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Find returns project files fuzzily matching query, best match first.
// An empty query returns every file.
func (m *Manager) Find(query string) ([]string, error) {
	if m.current == nil {
		return nil, ErrNoProject
	}
	if query == "" {
		return append([]string(nil), m.current.Files...), nil
	}

	matches := fuzzy.Find(query, m.current.Files)
	results := make([]string, len(matches))
	for i, match := range matches {
		results[i] = match.Str
	}
	return results, nil
}

// Recent is an entry in the recent projects list.
type Recent struct {
	Root     string    `json:"root"`
	OpenedAt time.Time `json:"opened_at"`
}

// RecentStore persists recently opened projects, most recent first.
type RecentStore interface {
	List(ctx context.Context) ([]Recent, error)
	Touch(ctx context.Context, root string) error
}
