package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/scribe/internal/core/command"
	"github.com/hay-kot/scribe/internal/dialog"
)

func TestSync_CleanDocumentReloadsSilently(t *testing.T) {
	h := newHarness(t, "a.txt")
	h.exec(t, command.FileOpen, "a.txt")
	doc := h.app.Documents().Current()

	h.touch(t, "a.txt", "changed elsewhere")
	h.app.SyncOpenDocuments()

	assert.Zero(t, h.app.Dialogs().Open(""))
	assert.Equal(t, "changed elsewhere", doc.Text)
}

func TestSync_DirtyDocumentChanged(t *testing.T) {
	t.Run("reload from disk", func(t *testing.T) {
		h := newHarness(t, "a.txt")
		doc := h.openDirty(t, "a.txt")

		h.touch(t, "a.txt", "changed elsewhere")
		h.app.SyncOpenDocuments()
		h.answer(t, dialog.ClassExtChanged, dialog.ButtonDontSave)

		assert.Equal(t, "changed elsewhere", doc.Text)
		assert.False(t, doc.Dirty)
	})

	t.Run("keep changes", func(t *testing.T) {
		h := newHarness(t, "a.txt")
		doc := h.openDirty(t, "a.txt")

		h.touch(t, "a.txt", "changed elsewhere")
		h.app.SyncOpenDocuments()
		h.answer(t, dialog.ClassExtChanged, dialog.ButtonCancel)

		assert.Equal(t, "edited a.txt", doc.Text)
		assert.True(t, doc.Dirty)

		h.app.SyncOpenDocuments()
		assert.Zero(t, h.app.Dialogs().Open(""), "the same change is not asked about twice")
	})
}

func TestSync_DeletedDocument(t *testing.T) {
	t.Run("close", func(t *testing.T) {
		h := newHarness(t, "a.txt")
		h.exec(t, command.FileOpen, "a.txt")
		doc := h.app.Documents().Current()

		require.NoError(t, os.Remove(h.path("a.txt")))
		h.app.SyncOpenDocuments()
		h.answer(t, dialog.ClassExtDeleted, dialog.ButtonDontSave)

		_, err := h.app.Documents().Get(doc.ID)
		assert.Error(t, err)
	})

	t.Run("keep open", func(t *testing.T) {
		h := newHarness(t, "a.txt")
		h.exec(t, command.FileOpen, "a.txt")
		doc := h.app.Documents().Current()

		require.NoError(t, os.Remove(h.path("a.txt")))
		h.app.SyncOpenDocuments()
		h.answer(t, dialog.ClassExtDeleted, dialog.ButtonOK)

		assert.True(t, doc.Deleted)
		assert.True(t, doc.Dirty)

		h.app.SyncOpenDocuments()
		assert.Zero(t, h.app.Dialogs().Open(""))

		h.exec(t, command.FileSave)
		assert.Equal(t, "original a.txt", readFile(t, h.path("a.txt")))
	})
}

func TestSync_OneAtATime(t *testing.T) {
	h := newHarness(t, "a.txt", "b.txt")
	a := h.openDirty(t, "a.txt")
	b := h.openDirty(t, "b.txt")

	h.touch(t, "a.txt", "new a")
	h.touch(t, "b.txt", "new b")

	h.app.SyncOpenDocuments()
	h.app.SyncOpenDocuments()
	assert.Equal(t, 1, h.app.Dialogs().Open(dialog.ClassExtChanged))

	h.answer(t, dialog.ClassExtChanged, dialog.ButtonDontSave)
	assert.Equal(t, "new a", a.Text)
	assert.Equal(t, 1, h.app.Dialogs().Open(dialog.ClassExtChanged), "second document asked next")

	h.answer(t, dialog.ClassExtChanged, dialog.ButtonDontSave)
	assert.Equal(t, "new b", b.Text)

	// The folded follow-up pass finds nothing left to do.
	assert.Zero(t, h.app.Dialogs().Open(""))
	assert.False(t, h.app.syncing)
}

func TestSync_CancelSweepEndsSync(t *testing.T) {
	h := newHarness(t, "a.txt", "b.txt")
	a := h.openDirty(t, "a.txt")
	h.openDirty(t, "b.txt")

	h.touch(t, "a.txt", "new a")
	h.touch(t, "b.txt", "new b")

	h.app.SyncOpenDocuments()
	require.Equal(t, 1, h.app.Dialogs().CancelAll(dialog.ClassExtChanged))
	h.queue.Drain()

	assert.Zero(t, h.app.Dialogs().Open(""))
	assert.Equal(t, "edited a.txt", a.Text)
	assert.False(t, h.app.syncing)
}
