package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/scribe/internal/app"
	"github.com/hay-kot/scribe/internal/core/command"
	"github.com/hay-kot/scribe/internal/core/config"
	"github.com/hay-kot/scribe/internal/dialog"
)

func newTestModel(t *testing.T) (Model, *app.App, string) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	cfg.Platform = "linux"
	cfg.Editor.WatchFiles = false

	a, err := app.New(app.Options{Config: cfg, Log: zerolog.Nop()})
	require.NoError(t, err)
	require.NoError(t, a.Start(context.Background(), filepath.Join(root, "a.txt")))

	m := New(context.Background(), a)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), a, root
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyCtrlW = tea.KeyMsg{Type: tea.KeyCtrlW}
	keyCtrlO = tea.KeyMsg{Type: tea.KeyCtrlO}
	keyCtrlQ = tea.KeyMsg{Type: tea.KeyCtrlQ}
)

func TestModel_TypingEditsDocument(t *testing.T) {
	m, a, _ := newTestModel(t)

	m, _ = send(t, m, runes("x"))

	doc := a.Documents().Current()
	require.NotNil(t, doc)
	assert.True(t, doc.Dirty)
	assert.Contains(t, doc.Text, "x")
	assert.Equal(t, doc.Text, m.editor.Value())
}

func TestModel_SaveCloseWithEnter(t *testing.T) {
	m, a, root := newTestModel(t)
	m, _ = send(t, m, runes("x"), keyCtrlW)

	top, ok := a.Dialogs().Top()
	require.True(t, ok)
	assert.Equal(t, dialog.ClassSaveClose, top.Class)
	assert.Contains(t, m.View(), top.Title)

	text := a.Documents().Current().Text
	m, _ = send(t, m, runes("y"))
	assert.Equal(t, text, a.Documents().Current().Text, "keys go to the dialog, not the editor")

	m, _ = send(t, m, keyEnter)
	assert.Zero(t, a.Dialogs().Open(""), "enter confirms the primary button")
	require.Len(t, a.Documents().WorkingSet(), 1, "closing waits for the deferred completion")

	_, _ = send(t, m, tasksReadyMsg{})
	assert.Empty(t, a.Documents().WorkingSet())

	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, text, string(data))
}

func TestModel_EscKeepsDocument(t *testing.T) {
	m, a, _ := newTestModel(t)
	m, _ = send(t, m, runes("x"), keyCtrlW, keyEsc, tasksReadyMsg{})

	assert.Zero(t, a.Dialogs().Open(""))
	require.Len(t, a.Documents().WorkingSet(), 1)
	assert.True(t, a.Documents().Current().Dirty)
	assert.Empty(t, m.input.selected)
}

func TestModel_SelectAndActivate(t *testing.T) {
	m, a, root := newTestModel(t)
	m, _ = send(t, m, runes("x"), keyCtrlW)

	top, _ := a.Dialogs().Top()
	assert.Equal(t, 2, m.input.selection(top), "primary button selected first")

	// tab wraps from Save to Don't Save
	m, _ = send(t, m, keyTab)
	assert.Equal(t, 0, m.input.selection(top))

	_, _ = send(t, m, keySpace, tasksReadyMsg{})
	assert.Empty(t, a.Documents().WorkingSet())

	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data), "don't save leaves the file alone")
}

func TestModel_PromptForm(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = send(t, m, keyCtrlO)
	require.NotNil(t, m.form)
	assert.Equal(t, command.FileOpen, m.form.Command())
	assert.Contains(t, m.View(), "Open File")

	m, _ = send(t, m, keyEsc)
	assert.Nil(t, m.form)
}

func TestModel_CloseWindowQuits(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := send(t, m, keyCtrlQ)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_DeferredTasksRunOnLaterTurn(t *testing.T) {
	m, a, _ := newTestModel(t)

	ran := false
	a.Queue().Defer(func() { ran = true })

	_, cmd := send(t, m, tasksReadyMsg{})
	assert.True(t, ran)
	assert.NotNil(t, cmd, "the pump is re-armed")
}
