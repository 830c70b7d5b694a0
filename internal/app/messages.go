package app

import (
	"github.com/hay-kot/scribe/internal/dialog"
	"github.com/hay-kot/scribe/pkg/tmpl"
)

// Dialog titles and markdown bodies. Data is a messageData.
const (
	titleOpenError    = "Error Opening File"
	titleSaveError    = "Error Saving File"
	titleReloadError  = "Error Reloading File"
	titleProjectError = "Error Opening Project"
	titleSaveClose    = "Save Changes"
	titleExtChanged   = "File Changed on Disk"
	titleExtDeleted   = "File Deleted"

	bodyOpenError    = "The file {{ code .Name }} could not be opened.\n\n{{ escape .Err }}"
	bodySaveError    = "The file {{ code .Name }} could not be saved.\n\n{{ escape .Err }}"
	bodyReloadError  = "The file {{ code .Name }} could not be reloaded.\n\n{{ escape .Err }}"
	bodyProjectError = "The folder {{ code .Name }} could not be loaded.\n\n{{ escape .Err }}"
	bodySaveClose    = "Do you want to save the changes you made to {{ code .Name }}?\n\nYour changes will be lost if you don't save them."
	bodyExtChanged   = "{{ code .Name }} has been modified on disk, but also has unsaved changes.\n\nDo you want to keep your changes or reload the file from disk?"
	bodyExtDeleted   = "{{ code .Name }} has been deleted on disk, but has unsaved changes or is still open.\n\nDo you want to keep it open or close it?"
)

type messageData struct {
	Name string
	Path string
	Err  string
}

// message renders a body template. A template failure falls back to the
// file name so the dialog still says something useful.
func (a *App) message(body string, data messageData) string {
	out, err := tmpl.Render(body, data)
	if err != nil {
		a.log.Error().Err(err).Msg("render dialog message")
		return data.Name
	}
	return out
}

// showError shows an error-dialog. The returned completion is nil when the
// dialog could not be shown.
func (a *App) showError(title, body string, data messageData) *dialog.Completion {
	c, err := a.dialogs.Show(dialog.ClassError, title, a.message(body, data))
	if err != nil {
		a.log.Error().Err(err).Str("title", title).Msg("show error dialog")
		return nil
	}
	return c
}
