package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/scribe/internal/core/command"
)

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, 4, cfg.Editor.TabWidth)
	assert.True(t, cfg.Editor.WatchFiles)
	assert.Equal(t, len(defaultKeybindings), len(cfg.Keybindings))
	assert.Equal(t, filepath.Join(dataDir, "recent.json"), cfg.RecentFile())
}

func TestLoad_UserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
platform: win
editor:
  tab_width: 2
project:
  ignore: ["dist/**"]
keybindings:
  - key: ctrl-shift-s
    command: file.save
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "win", cfg.Platform)
	assert.Equal(t, 2, cfg.Editor.TabWidth)
	assert.Equal(t, []string{"dist/**"}, cfg.Project.Ignore)
	assert.Equal(t, 10000, cfg.Project.MaxFiles, "unset values fall back to defaults")

	last := cfg.Keybindings[len(cfg.Keybindings)-1]
	assert.Equal(t, command.FileSave, last.Command)
	assert.Equal(t, "ctrl-shift-s", last.Key)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  tab_width: -1\n"), 0o644))

	_, err := Load(path, t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "editor.tab_width", fieldErrs[0].Field)
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor: [\n"), 0o644))

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_EmptyDataDir(t *testing.T) {
	_, err := Load("", "")
	require.Error(t, err)
}
