package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hay-kot/scribe/internal/core/command"
	"github.com/hay-kot/scribe/internal/styles"
)

// PathForm wraps a huh.Form asking for the path a command needs.
type PathForm struct {
	form    *huh.Form
	command string
	path    string
}

// NewPathForm creates a form for commandID. Suggestions are offered for
// completion as the user types.
func NewPathForm(commandID string, suggestions []string) *PathForm {
	f := &PathForm{command: commandID}

	title, placeholder := "Path", ""
	switch commandID {
	case command.FileOpen:
		title, placeholder = "Open File", "relative to the project root"
	case command.FileSave:
		title, placeholder = "Save As", "path for the new file"
	case command.ProjectOpen:
		title, placeholder = "Open Folder", "project directory"
	}

	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&f.path).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a path is required")
			}
			return nil
		})
	if len(suggestions) > 0 {
		input = input.Suggestions(suggestions)
	}

	f.form = huh.NewForm(huh.NewGroup(input)).
		WithTheme(styles.FormTheme()).
		WithShowHelp(false)

	return f
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *PathForm) Form() *huh.Form {
	return f.form
}

// Command returns the command the path is for.
func (f *PathForm) Command() string {
	return f.command
}

// Path returns the entered path. Only valid once the form is completed.
func (f *PathForm) Path() string {
	return strings.TrimSpace(f.path)
}

// View renders the form.
func (f *PathForm) View() string {
	return f.form.View()
}
