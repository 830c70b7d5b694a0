// Package document tracks the working set of open files.
//
// A Manager is owned by the event loop goroutine and is not safe for
// concurrent use.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/scribe/pkg/randid"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrUntitled = errors.New("document has no path")
)

// DiskState compares a document with the file backing it.
type DiskState int

const (
	DiskUnchanged DiskState = iota
	DiskModified
	DiskDeleted
)

func (s DiskState) String() string {
	switch s {
	case DiskUnchanged:
		return "unchanged"
	case DiskModified:
		return "modified"
	case DiskDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("DiskState(%d)", int(s))
	}
}

// Document is an open file or an untitled buffer.
type Document struct {
	ID      string
	Path    string // empty for untitled buffers
	Text    string
	Dirty   bool
	ModTime time.Time
	Size    int64
	Deleted bool // file removed on disk and kept open on purpose
}

// Untitled reports whether the document has never been saved.
func (d *Document) Untitled() bool {
	return d.Path == ""
}

// Name is the label shown in the working set.
func (d *Document) Name() string {
	if d.Untitled() {
		return "untitled-" + d.ID
	}
	return filepath.Base(d.Path)
}

// Manager holds the working set and the current document.
type Manager struct {
	log     zerolog.Logger
	docs    []*Document
	current *Document
}

// NewManager creates an empty working set.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{log: log}
}

// Open reads path into the working set and makes it current. A file that is
// already open is made current without rereading it.
func (m *Manager) Open(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	if doc := m.FindPath(abs); doc != nil {
		m.current = doc
		return doc, nil
	}

	doc := &Document{ID: m.newID(), Path: abs}
	if err := read(doc); err != nil {
		return nil, err
	}

	m.docs = append(m.docs, doc)
	m.current = doc
	m.log.Debug().Str("path", abs).Int64("size", doc.Size).Msg("document opened")
	return doc, nil
}

// NewUntitled adds an empty untitled buffer and makes it current.
func (m *Manager) NewUntitled() *Document {
	doc := &Document{ID: m.newID()}
	m.docs = append(m.docs, doc)
	m.current = doc
	return doc
}

// Current returns the current document, or nil when the working set is empty.
func (m *Manager) Current() *Document {
	return m.current
}

// SetCurrent makes the document with id current.
func (m *Manager) SetCurrent(id string) error {
	doc, err := m.Get(id)
	if err != nil {
		return err
	}
	m.current = doc
	return nil
}

// Get looks up a document by id.
func (m *Manager) Get(id string) (*Document, error) {
	for _, doc := range m.docs {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// FindPath returns the open document for an absolute path, or nil.
func (m *Manager) FindPath(path string) *Document {
	for _, doc := range m.docs {
		if doc.Path == path {
			return doc
		}
	}
	return nil
}

// SetText replaces the document text, marking it dirty when it changed.
func (m *Manager) SetText(id, text string) error {
	doc, err := m.Get(id)
	if err != nil {
		return err
	}
	if doc.Text != text {
		doc.Text = text
		doc.Dirty = true
	}
	return nil
}

// Save writes the document to its path.
func (m *Manager) Save(id string) error {
	doc, err := m.Get(id)
	if err != nil {
		return err
	}
	if doc.Untitled() {
		return fmt.Errorf("save %s: %w", doc.Name(), ErrUntitled)
	}
	return m.write(doc, doc.Path)
}

// SaveAs writes the document to path and adopts it as the document's path.
func (m *Manager) SaveAs(id, path string) error {
	doc, err := m.Get(id)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	return m.write(doc, abs)
}

// write saves through a temp file and rename so a failed write leaves the
// previous contents intact.
func (m *Manager) write(doc *Document, path string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(doc.Text), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}

	doc.Path = path
	doc.Dirty = false
	doc.Deleted = false
	doc.ModTime = info.ModTime()
	doc.Size = info.Size()
	m.log.Debug().Str("path", path).Msg("document saved")
	return nil
}

// Reload discards in-memory edits and rereads the file.
func (m *Manager) Reload(id string) error {
	doc, err := m.Get(id)
	if err != nil {
		return err
	}
	if doc.Untitled() {
		return fmt.Errorf("reload %s: %w", doc.Name(), ErrUntitled)
	}
	if err := read(doc); err != nil {
		return err
	}
	m.log.Debug().Str("path", doc.Path).Msg("document reloaded")
	return nil
}

// Close removes the document from the working set. The next document, or
// the previous one when closing the last, becomes current.
func (m *Manager) Close(id string) error {
	idx := -1
	for i, doc := range m.docs {
		if doc.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	closed := m.docs[idx]
	m.docs = append(m.docs[:idx], m.docs[idx+1:]...)

	if m.current == closed {
		switch {
		case len(m.docs) == 0:
			m.current = nil
		case idx < len(m.docs):
			m.current = m.docs[idx]
		default:
			m.current = m.docs[len(m.docs)-1]
		}
	}
	return nil
}

// WorkingSet returns the open documents in the order they were opened.
func (m *Manager) WorkingSet() []*Document {
	return append([]*Document(nil), m.docs...)
}

// Dirty returns the documents with unsaved changes.
func (m *Manager) Dirty() []*Document {
	var dirty []*Document
	for _, doc := range m.docs {
		if doc.Dirty {
			dirty = append(dirty, doc)
		}
	}
	return dirty
}

// Stat compares the document with its file on disk.
func (m *Manager) Stat(doc *Document) (DiskState, error) {
	if doc.Untitled() {
		return DiskUnchanged, nil
	}

	info, err := os.Stat(doc.Path)
	if err != nil {
		if os.IsNotExist(err) {
			if doc.Deleted {
				return DiskUnchanged, nil
			}
			return DiskDeleted, nil
		}
		return DiskUnchanged, fmt.Errorf("stat %s: %w", doc.Name(), err)
	}
	if doc.Deleted {
		return DiskModified, nil
	}

	if !info.ModTime().Equal(doc.ModTime) || info.Size() != doc.Size {
		return DiskModified, nil
	}
	return DiskUnchanged, nil
}

// Acknowledge accepts the file's current disk state without touching the
// document text, so the same change is not reported again. A document whose
// file is gone is marked deleted and dirty so it can be saved back.
func (m *Manager) Acknowledge(id string) error {
	doc, err := m.Get(id)
	if err != nil {
		return err
	}
	if doc.Untitled() {
		return nil
	}

	info, err := os.Stat(doc.Path)
	switch {
	case err == nil:
		doc.ModTime = info.ModTime()
		doc.Size = info.Size()
		doc.Deleted = false
	case os.IsNotExist(err):
		doc.Deleted = true
		doc.Dirty = true
	default:
		return fmt.Errorf("stat %s: %w", doc.Name(), err)
	}
	return nil
}

func read(doc *Document) error {
	data, err := os.ReadFile(doc.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(doc.Path), err)
	}
	info, err := os.Stat(doc.Path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", filepath.Base(doc.Path), err)
	}

	doc.Text = string(data)
	doc.Dirty = false
	doc.Deleted = false
	doc.ModTime = info.ModTime()
	doc.Size = info.Size()
	return nil
}

func (m *Manager) newID() string {
	return randid.Unique(6, func(id string) bool {
		_, err := m.Get(id)
		return err == nil
	})
}
