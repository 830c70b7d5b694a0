package tui

import "github.com/charmbracelet/bubbles/key"

// dialogKeyMap holds the keys a dialog reacts to. Enter is not listed here
// because confirming with the primary button is handled by the dialog
// manager's capture stack.
type dialogKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Close    key.Binding
	Up       key.Binding
	Down     key.Binding
}

func newDialogKeyMap() dialogKeyMap {
	return dialogKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next button"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "previous button"),
		),
		Activate: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "activate"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "close"),
		),
		Up: key.NewBinding(
			key.WithKeys("pgup", "up", "k"),
			key.WithHelp("pgup", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("pgdown", "down", "j"),
			key.WithHelp("pgdown", "scroll down"),
		),
	}
}

// editorKeyMap holds TUI-level keys that are not editor commands.
type editorKeyMap struct {
	NextDoc key.Binding
	PrevDoc key.Binding
	Quit    key.Binding
}

func newEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		NextDoc: key.NewBinding(
			key.WithKeys("ctrl+pgdown", "alt+]"),
			key.WithHelp("alt+]", "next file"),
		),
		PrevDoc: key.NewBinding(
			key.WithKeys("ctrl+pgup", "alt+["),
			key.WithHelp("alt+[", "previous file"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "close window"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextDoc, k.PrevDoc, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
