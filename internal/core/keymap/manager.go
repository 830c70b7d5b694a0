package keymap

import (
	"context"

	"github.com/rs/zerolog"
)

// Dispatcher executes commands by id.
type Dispatcher interface {
	Execute(ctx context.Context, id string, args ...string) error
}

// Manager routes key presses to commands through the installed keymap.
type Manager struct {
	keymap     KeyMap
	dispatcher Dispatcher
	log        zerolog.Logger
}

// NewManager creates a manager with an empty keymap.
func NewManager(dispatcher Dispatcher, log zerolog.Logger) *Manager {
	return &Manager{dispatcher: dispatcher, log: log}
}

// Install replaces the active keymap.
func (m *Manager) Install(km KeyMap) {
	m.keymap = km
	m.log.Debug().Str("platform", km.Platform()).Int("bindings", km.Len()).Msg("keymap installed")
}

// KeyMap returns the active keymap.
func (m *Manager) KeyMap() KeyMap {
	return m.keymap
}

// HandleKey executes the command bound to key. It reports whether the key was
// bound; a bound key is consumed even if its command fails.
func (m *Manager) HandleKey(ctx context.Context, key string) (bool, error) {
	cmd, ok := m.keymap.Lookup(key)
	if !ok {
		return false, nil
	}
	return true, m.dispatcher.Execute(ctx, cmd)
}
