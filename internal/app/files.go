package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hay-kot/scribe/internal/core/command"
	"github.com/hay-kot/scribe/internal/core/document"
	"github.com/hay-kot/scribe/internal/dialog"
)

func (a *App) registerCommands() error {
	handlers := []struct {
		id      string
		name    string
		handler command.Handler
	}{
		{command.FileNew, "New File", a.handleNew},
		{command.FileOpen, "Open File", a.handleOpen},
		{command.FileSave, "Save", a.handleSave},
		{command.FileClose, "Close", a.handleClose},
		{command.FileReload, "Reload from Disk", a.handleReload},
		{command.FileCloseWindow, "Close Window", a.handleCloseWindow},
		{command.ProjectOpen, "Open Folder", a.handleOpenProject},
		{command.AppQuit, "Quit", a.handleCloseWindow},
	}

	for _, h := range handlers {
		if _, err := a.commands.Register(h.id, h.name, h.handler); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) handleNew(_ context.Context, _ ...string) error {
	doc := a.docs.NewUntitled()
	a.setStatus("new %s", doc.Name())
	return nil
}

func (a *App) handleOpen(_ context.Context, args ...string) error {
	if len(args) == 0 {
		a.promptPath(command.FileOpen)
		return nil
	}

	path := args[0]
	if p := a.projects.Current(); p != nil && !filepath.IsAbs(path) {
		path = p.Abs(path)
	}

	doc, err := a.docs.Open(path)
	if err != nil {
		a.showError(titleOpenError, bodyOpenError, messageData{Name: filepath.Base(path), Path: path, Err: err.Error()})
		return nil
	}

	a.watch(doc)
	a.setStatus("opened %s", doc.Name())
	return nil
}

func (a *App) handleSave(_ context.Context, args ...string) error {
	doc := a.docs.Current()
	if doc == nil {
		return nil
	}

	if len(args) > 0 {
		old := doc.Path
		if err := a.docs.SaveAs(doc.ID, args[0]); err != nil {
			a.showError(titleSaveError, bodySaveError, messageData{Name: doc.Name(), Path: args[0], Err: err.Error()})
			return nil
		}
		if old != doc.Path {
			a.unwatch(old)
			a.watch(doc)
		}
		a.setStatus("saved %s", doc.Name())
		return nil
	}

	if doc.Untitled() {
		a.promptPath(command.FileSave)
		return nil
	}

	a.save(doc)
	return nil
}

// save writes doc and reports failures through an error-dialog.
func (a *App) save(doc *document.Document) bool {
	if err := a.docs.Save(doc.ID); err != nil {
		a.showError(titleSaveError, bodySaveError, messageData{Name: doc.Name(), Path: doc.Path, Err: err.Error()})
		return false
	}
	a.setStatus("saved %s", doc.Name())
	return true
}

func (a *App) handleReload(_ context.Context, _ ...string) error {
	doc := a.docs.Current()
	if doc == nil || doc.Untitled() {
		return nil
	}
	if err := a.docs.Reload(doc.ID); err != nil {
		a.showError(titleReloadError, bodyReloadError, messageData{Name: doc.Name(), Path: doc.Path, Err: err.Error()})
		return nil
	}
	a.setStatus("reloaded %s", doc.Name())
	return nil
}

func (a *App) handleClose(_ context.Context, args ...string) error {
	doc := a.docs.Current()
	if len(args) > 0 {
		var err error
		if doc, err = a.docs.Get(args[0]); err != nil {
			return err
		}
	}
	if doc == nil {
		return nil
	}

	a.confirmClose(doc, func(bool) {})
	return nil
}

// confirmClose closes doc, first asking whether to save it when it has
// unsaved changes. done reports whether the document was closed.
func (a *App) confirmClose(doc *document.Document, done func(closed bool)) {
	if !doc.Dirty {
		a.closeDocument(doc)
		done(true)
		return
	}

	c, err := a.dialogs.Show(dialog.ClassSaveClose, titleSaveClose, a.message(bodySaveClose, messageData{Name: doc.Name(), Path: doc.Path}))
	if err != nil {
		a.log.Error().Err(err).Msg("show save dialog")
		done(false)
		return
	}

	c.Then(func(button string) {
		switch button {
		case dialog.ButtonOK:
			if doc.Untitled() {
				// An untitled buffer needs a path first; the close is
				// abandoned and the user is asked where to save it.
				_ = a.docs.SetCurrent(doc.ID)
				a.promptPath(command.FileSave)
				done(false)
				return
			}
			if !a.save(doc) {
				done(false)
				return
			}
			a.closeDocument(doc)
			done(true)
		case dialog.ButtonDontSave:
			a.closeDocument(doc)
			done(true)
		default:
			done(false)
		}
	})
}

func (a *App) closeDocument(doc *document.Document) {
	if err := a.docs.Close(doc.ID); err != nil {
		a.log.Debug().Err(err).Str("document", doc.ID).Msg("close")
		return
	}
	a.unwatch(doc.Path)
	a.setStatus("closed %s", doc.Name())
}

// handleCloseWindow prompts for every dirty document in turn and quits once
// all of them are closed. Cancelling any prompt aborts the whole request.
func (a *App) handleCloseWindow(_ context.Context, _ ...string) error {
	if a.closing {
		return nil
	}
	a.closing = true

	var next func()
	next = func() {
		dirty := a.docs.Dirty()
		if len(dirty) == 0 {
			a.closing = false
			a.log.Info().Msg("closing window")
			a.Shutdown()
			if a.hooks.Quit != nil {
				a.hooks.Quit()
			}
			return
		}

		doc := dirty[0]
		_ = a.docs.SetCurrent(doc.ID)
		a.confirmClose(doc, func(closed bool) {
			if !closed {
				a.closing = false
				a.setStatus("close window cancelled")
				return
			}
			next()
		})
	}
	next()
	return nil
}

func (a *App) handleOpenProject(ctx context.Context, args ...string) error {
	if len(args) == 0 {
		a.promptPath(command.ProjectOpen)
		return nil
	}

	if err := a.loadProject(ctx, args[0]); err != nil {
		a.showError(titleProjectError, bodyProjectError, messageData{Name: filepath.Base(args[0]), Path: args[0], Err: err.Error()})
		return nil
	}
	a.setStatus("opened folder %s", a.projects.Current().Root)
	return nil
}

func (a *App) promptPath(commandID string) {
	if a.hooks.PromptPath == nil {
		a.setStatus("%s needs a path", commandID)
		return
	}
	a.hooks.PromptPath(commandID)
}

func (a *App) watch(doc *document.Document) {
	if a.watcher == nil || doc.Untitled() {
		return
	}
	if err := a.watcher.Add(doc.Path); err != nil {
		a.log.Warn().Err(err).Str("path", doc.Path).Msg("cannot watch document")
	}
}

func (a *App) unwatch(path string) {
	if a.watcher == nil || path == "" {
		return
	}
	a.watcher.Remove(path)
}

// Execute runs a command, logging failures the handlers did not turn into
// dialogs.
func (a *App) Execute(ctx context.Context, id string, args ...string) {
	if err := a.commands.Execute(ctx, id, args...); err != nil {
		a.log.Error().Err(err).Str("command", id).Msg("command failed")
		a.setStatus("%s", err)
	}
}

// String describes the app for logs.
func (a *App) String() string {
	root := ""
	if p := a.projects.Current(); p != nil {
		root = p.Root
	}
	return fmt.Sprintf("app(%s, %d documents)", root, len(a.docs.WorkingSet()))
}
