package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/scribe/internal/core/command"
	"github.com/hay-kot/scribe/internal/core/keymap"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Platform = keymap.PlatformLinux
	cfg.DataDir = t.TempDir()
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, nil)
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	err := cfg.ValidateDeep("")
	assert.NoError(t, err, "expected valid config")
}

func TestValidateDeep_InvalidIgnorePattern(t *testing.T) {
	cfg := validConfig(t)
	cfg.Project.Ignore = []string{"src/[", "ok/**"}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "project.ignore[0]", fieldErrs[0].Field)
}

func TestValidateDeep_UnknownCommand(t *testing.T) {
	cfg := validConfig(t)
	cfg.Keybindings = append(cfg.Keybindings, Keybinding{Key: "Ctrl-K", Command: "file.explode"})

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Field, ".command")
	assert.Contains(t, fieldErrs[0].Err.Error(), "unknown command")
}

func TestValidateDeep_BadKeyAndPlatform(t *testing.T) {
	cfg := validConfig(t)
	cfg.Keybindings = []Keybinding{
		{Key: "Hyper-K", Command: command.FileSave},
		{Key: "Ctrl-K", Command: command.FileSave, Platform: "beos"},
	}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = fe.Field
	}
	assert.Contains(t, fields, "keybindings[0].key")
	assert.Contains(t, fields, "keybindings[1].platform")
}

func TestValidateDeep_TemplatesFile(t *testing.T) {
	cfg := validConfig(t)
	path := filepath.Join(t.TempDir(), "dialogs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("templates:\n  - class: \"\"\n"), 0o644))
	cfg.Dialogs.TemplatesFile = path

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Field, "dialogs.templates_file")
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config", fieldErrs[0].Field)
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings())

	cfg.Keybindings = nil
	cfg.Editor.WatchFiles = false

	warnings := cfg.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, command.FileSave, warnings[0].Item)
	assert.Equal(t, "watch_files", warnings[2].Item)
}
