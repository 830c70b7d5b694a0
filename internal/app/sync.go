package app

import (
	"github.com/hay-kot/scribe/internal/core/document"
	"github.com/hay-kot/scribe/internal/dialog"
)

// SyncOpenDocuments compares every open document with the disk. Clean
// documents that changed are reloaded silently; dirty ones and deleted ones
// ask the user what to do, one dialog at a time. A request arriving while a
// sync is in progress is folded into a single follow-up pass.
func (a *App) SyncOpenDocuments() {
	if a.syncing {
		a.resync = true
		return
	}
	a.syncing = true

	docs := a.docs.WorkingSet()
	var step func(i int)
	step = func(i int) {
		for ; i < len(docs); i++ {
			if a.syncDocument(docs[i], func() { step(i + 1) }) {
				return
			}
		}
		a.finishSync()
	}
	step(0)
}

func (a *App) finishSync() {
	a.syncing = false
	if a.resync {
		a.resync = false
		a.SyncOpenDocuments()
	}
}

// syncDocument handles one document. It returns true when it showed a
// dialog, in which case next is called once the dialog resolves.
func (a *App) syncDocument(doc *document.Document, next func()) bool {
	if _, err := a.docs.Get(doc.ID); err != nil {
		return false // closed while an earlier dialog was up
	}

	state, err := a.docs.Stat(doc)
	if err != nil {
		a.log.Warn().Err(err).Str("path", doc.Path).Msg("sync stat failed")
		return false
	}

	switch state {
	case document.DiskModified:
		if !doc.Dirty {
			if err := a.docs.Reload(doc.ID); err != nil {
				a.log.Warn().Err(err).Str("path", doc.Path).Msg("sync reload failed")
			} else {
				a.setStatus("reloaded %s", doc.Name())
			}
			return false
		}
		return a.ask(doc, dialog.ClassExtChanged, titleExtChanged, bodyExtChanged, next, func(button string) {
			if button == dialog.ButtonDontSave {
				if err := a.docs.Reload(doc.ID); err != nil {
					a.showError(titleReloadError, bodyReloadError, messageData{Name: doc.Name(), Path: doc.Path, Err: err.Error()})
				}
				return
			}
			a.acknowledge(doc)
		})
	case document.DiskDeleted:
		return a.ask(doc, dialog.ClassExtDeleted, titleExtDeleted, bodyExtDeleted, next, func(button string) {
			if button == dialog.ButtonDontSave {
				a.closeDocument(doc)
				return
			}
			a.acknowledge(doc)
		})
	default:
		return false
	}
}

// ask shows a sync dialog, applies the answer and then continues the sync.
// A dialog cancelled by a sweep leaves the document untouched and ends the
// sync.
func (a *App) ask(doc *document.Document, class, title, body string, next func(), apply func(button string)) bool {
	c, err := a.dialogs.Show(class, title, a.message(body, messageData{Name: doc.Name(), Path: doc.Path}))
	if err != nil {
		a.log.Error().Err(err).Str("class", class).Msg("show sync dialog")
		return false
	}

	c.Then(func(button string) {
		if button == dialog.ButtonCanceled {
			a.syncing = false
			a.resync = false
			return
		}
		if _, err := a.docs.Get(doc.ID); err == nil {
			apply(button)
		}
		next()
	})
	return true
}

func (a *App) acknowledge(doc *document.Document) {
	if err := a.docs.Acknowledge(doc.ID); err != nil {
		a.log.Warn().Err(err).Str("path", doc.Path).Msg("acknowledge disk change")
	}
}
