// Package command implements the command dispatcher. Menus, key bindings and
// the TUI invoke editor behavior by command id rather than calling handlers
// directly.
package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Built-in command ids.
const (
	FileNew         = "file.new"
	FileOpen        = "file.open"
	FileSave        = "file.save"
	FileClose       = "file.close"
	FileReload      = "file.reload"
	FileCloseWindow = "file.close_window"
	ProjectOpen     = "project.open"
	AppQuit         = "app.quit"
)

// IDs returns every built-in command id.
func IDs() []string {
	return []string{FileNew, FileOpen, FileSave, FileClose, FileReload, FileCloseWindow, ProjectOpen, AppQuit}
}

// IsBuiltin reports whether id names a built-in command.
func IsBuiltin(id string) bool {
	for _, known := range IDs() {
		if known == id {
			return true
		}
	}
	return false
}

var (
	// ErrUnknownCommand is returned when executing an unregistered id.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDuplicateCommand is returned when an id is registered twice.
	ErrDuplicateCommand = errors.New("command already registered")
	// ErrDisabled is returned when executing a disabled command.
	ErrDisabled = errors.New("command disabled")
)

// Handler runs a command.
type Handler func(ctx context.Context, args ...string) error

// Command is a registered, named operation.
type Command struct {
	ID      string
	Name    string
	handler Handler
	enabled bool
}

// Enabled reports whether the command can currently run.
func (c *Command) Enabled() bool {
	return c.enabled
}

// Manager maps command ids to handlers.
type Manager struct {
	mu       sync.RWMutex
	commands map[string]*Command
	log      zerolog.Logger
}

// NewManager creates an empty dispatcher.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		commands: make(map[string]*Command),
		log:      log,
	}
}

// Register adds a command.
func (m *Manager) Register(id, name string, h Handler) (*Command, error) {
	if id == "" {
		return nil, fmt.Errorf("register command: id is required")
	}
	if h == nil {
		return nil, fmt.Errorf("register command %q: handler is required", id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.commands[id]; exists {
		return nil, fmt.Errorf("register command %q: %w", id, ErrDuplicateCommand)
	}

	cmd := &Command{ID: id, Name: name, handler: h, enabled: true}
	m.commands[id] = cmd
	return cmd, nil
}

// Get returns a registered command.
func (m *Manager) Get(id string) (*Command, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cmd, ok := m.commands[id]
	return cmd, ok
}

// Name returns the display name of a registered command.
func (m *Manager) Name(id string) (string, bool) {
	cmd, ok := m.Get(id)
	if !ok {
		return "", false
	}
	return cmd.Name, true
}

// SetEnabled enables or disables a command.
func (m *Manager) SetEnabled(id string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd, ok := m.commands[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, id)
	}
	cmd.enabled = enabled
	return nil
}

// Execute runs the command registered under id.
func (m *Manager) Execute(ctx context.Context, id string, args ...string) error {
	m.mu.RLock()
	cmd, ok := m.commands[id]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, id)
	}
	if !cmd.enabled {
		return fmt.Errorf("execute %q: %w", id, ErrDisabled)
	}

	m.log.Debug().Str("command", id).Strs("args", args).Msg("executing command")

	if err := cmd.handler(ctx, args...); err != nil {
		return fmt.Errorf("execute %q: %w", id, err)
	}
	return nil
}

// List returns the registered commands sorted by id.
func (m *Manager) List() []*Command {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmds := make([]*Command, 0, len(m.commands))
	for _, c := range m.commands {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].ID < cmds[j].ID })
	return cmds
}
