package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/scribe/internal/app"
	"github.com/hay-kot/scribe/internal/core/command"
	"github.com/hay-kot/scribe/internal/core/document"
	"github.com/hay-kot/scribe/internal/core/keymap"
	"github.com/hay-kot/scribe/internal/styles"
)

const (
	sidebarWidth = 24
	chromeHeight = 2 // menu bar + status bar
)

var zoneOnce sync.Once

// tasksReadyMsg is sent when the event loop queue has deferred work.
type tasksReadyMsg struct{}

// hostState is written by the app hooks while Update is running.
type hostState struct {
	quit   bool
	prompt string
}

// docItem adapts a document for the working set list.
type docItem struct {
	doc *document.Document
}

func (i docItem) Title() string {
	if i.doc.Dirty {
		return "• " + i.doc.Name()
	}
	return i.doc.Name()
}

func (i docItem) Description() string { return i.doc.Path }
func (i docItem) FilterValue() string { return i.doc.Name() }

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	app  *app.App
	ctx  context.Context
	host *hostState

	editor textarea.Model
	files  list.Model
	help   help.Model
	keys   editorKeyMap
	input  *dialogInput
	md     *markdown
	form   *PathForm
	docID  string // document loaded into the editor

	width  int
	height int
}

// New creates the TUI model and connects it to a. The app must already be
// started.
func New(ctx context.Context, a *app.App) Model {
	zoneOnce.Do(zone.NewGlobal)

	host := &hostState{}
	a.SetHooks(app.Hooks{
		Quit:       func() { host.quit = true },
		PromptPath: func(id string) { host.prompt = id },
	})

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Focus()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	files := list.New(nil, delegate, sidebarWidth, 10)
	files.Title = "Working Files"
	files.Styles.Title = lipgloss.NewStyle().Foreground(styles.ColorBlue).Bold(true)
	files.SetShowHelp(false)
	files.SetShowStatusBar(false)
	files.SetFilteringEnabled(false)

	m := Model{
		app:    a,
		ctx:    ctx,
		host:   host,
		editor: ta,
		files:  files,
		help:   help.New(),
		keys:   newEditorKeyMap(),
		input:  newDialogInput(a.Dialogs()),
		md:     newMarkdown(a.Config().Editor.MarkdownStyle),
	}
	m.syncEditor()
	m.refreshFiles()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForTasks())
}

// waitForTasks re-arms the event loop pump.
func (m Model) waitForTasks() tea.Cmd {
	return waitForTasks(m.app.Queue().Notify())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tasksReadyMsg:
		m.app.Queue().RunPending()
		return m.settle(m.waitForTasks())

	case tea.FocusMsg:
		m.app.SyncOpenDocuments()
		return m.settle()

	case tea.KeyMsg:
		if m.form != nil && !m.app.Dialogs().Armed() {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.input.handleKey(msg, m.editorKey)
	return m.settle(cmd)
}

// editorKey handles a key no dialog claimed: TUI keys first, then the
// installed keymap, then the editor itself.
func (m *Model) editorKey(msg tea.KeyMsg) tea.Cmd {
	docs := m.app.Documents()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.app.Execute(m.ctx, command.FileCloseWindow)
		return nil
	case key.Matches(msg, m.keys.NextDoc):
		m.cycleDocument(1)
		return nil
	case key.Matches(msg, m.keys.PrevDoc):
		m.cycleDocument(-1)
		return nil
	}

	if desc := keymap.Translate(msg.String()); desc != "" {
		handled, err := m.app.Keys().HandleKey(m.ctx, desc)
		if err != nil {
			log.Error().Err(err).Str("key", desc).Msg("key binding failed")
		}
		if handled {
			return nil
		}
	}

	doc := docs.Current()
	if doc == nil {
		return nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if err := docs.SetText(doc.ID, m.editor.Value()); err != nil {
		log.Error().Err(err).Msg("update document")
	}
	return cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	clicked := m.input.handleMouse(msg, func(msg tea.MouseMsg) {
		for _, mn := range m.app.Menus() {
			for _, item := range mn.Items {
				if zone.Get(menuZone(item.Command)).InBounds(msg) {
					m.app.Execute(m.ctx, item.Command)
				}
			}
		}
	})
	if !clicked {
		return m, nil
	}
	return m.settle()
}

// updateForm routes a message to the path form.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.form = nil
		return m.settle()
	}

	form, cmd := m.form.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}

	switch m.form.Form().State {
	case huh.StateCompleted:
		id, path := m.form.Command(), m.form.Path()
		m.form = nil
		m.app.Execute(m.ctx, id, path)
		return m.settle()
	case huh.StateAborted:
		m.form = nil
		return m.settle()
	case huh.StateNormal:
	}
	return m, cmd
}

// settle brings the view state in line with the app after it may have
// changed, and reacts to the app hooks.
func (m Model) settle(cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	m.syncEditor()
	m.refreshFiles()
	m.input.prune()

	if m.host.quit {
		return m, tea.Quit
	}

	if id := m.host.prompt; id != "" {
		m.host.prompt = ""
		if m.form == nil {
			m.form = NewPathForm(id, m.suggestions(id))
			cmds = append(cmds, m.form.Form().Init())
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) suggestions(commandID string) []string {
	if commandID != command.FileOpen {
		return nil
	}
	files, err := m.app.Projects().Find("")
	if err != nil {
		return nil
	}
	return files
}

// syncEditor loads the current document into the editor when it changed
// underneath, for example after a reload or a switch of document.
func (m *Model) syncEditor() {
	doc := m.app.Documents().Current()
	if doc == nil {
		if m.docID != "" {
			m.editor.Reset()
			m.docID = ""
		}
		return
	}
	if doc.ID != m.docID || doc.Text != m.editor.Value() {
		m.editor.SetValue(doc.Text)
		m.docID = doc.ID
	}
}

func (m *Model) refreshFiles() {
	docs := m.app.Documents()
	working := docs.WorkingSet()

	items := make([]list.Item, len(working))
	current := -1
	for i, doc := range working {
		items[i] = docItem{doc: doc}
		if doc == docs.Current() {
			current = i
		}
	}
	m.files.SetItems(items)
	if current >= 0 {
		m.files.Select(current)
	}
}

func (m *Model) cycleDocument(delta int) {
	docs := m.app.Documents()
	working := docs.WorkingSet()
	if len(working) < 2 {
		return
	}
	idx := 0
	for i, doc := range working {
		if doc == docs.Current() {
			idx = i
		}
	}
	next := working[(idx+delta+len(working))%len(working)]
	_ = docs.SetCurrent(next.ID)
}

func (m *Model) resize() {
	contentHeight := max(m.height-chromeHeight, 1)
	m.files.SetSize(sidebarWidth, contentHeight)
	m.editor.SetWidth(max(m.width-sidebarWidth-3, 10))
	m.editor.SetHeight(contentHeight)
	m.help.Width = m.width
}

// View renders the TUI.
func (m Model) View() string {
	if view, ok := m.input.view(m.width, m.height, m.md); ok {
		return zone.Scan(view)
	}

	if m.form != nil {
		return zone.Scan(overlay(dialogStyle.Render(m.form.View()), m.width, m.height))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(m.files.View()),
		editorStyle.Render(m.editorView()),
	)
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, m.menuBar(), body, m.statusBar()))
}

func menuZone(commandID string) string {
	return "menu-" + commandID
}

func (m Model) menuBar() string {
	var parts []string
	for _, mn := range m.app.Menus() {
		parts = append(parts, menuLabelStyle.Render(mn.Label))
		for _, item := range mn.Items {
			label := item.Label
			if item.Key != "" {
				label += " " + menuKeyStyle.Render(item.Key)
			}
			parts = append(parts, zone.Mark(menuZone(item.Command), menuItemStyle.Render(label)))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if m.width > 0 {
		return menuBarStyle.Width(m.width).MaxWidth(m.width).Render(bar)
	}
	return menuBarStyle.Render(bar)
}

func (m Model) editorView() string {
	if m.app.Documents().Current() != nil {
		return m.editor.View()
	}

	var b strings.Builder
	b.WriteString(styles.BannerStyle.Render(styles.Banner))
	b.WriteString("\n\n")
	km := m.app.Keys().KeyMap()
	for _, id := range []string{command.FileNew, command.FileOpen, command.ProjectOpen, command.FileCloseWindow} {
		name, _ := m.app.Commands().Name(id)
		k, _ := km.KeyFor(id)
		fmt.Fprintf(&b, "%s  %s\n", styles.MutedStyle.Render(fmt.Sprintf("%-8s", k)), name)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusBar() string {
	var parts []string

	if doc := m.app.Documents().Current(); doc != nil {
		name := doc.Name()
		if doc.Dirty {
			name = statusDirtyStyle.Render(name + " (modified)")
		}
		parts = append(parts, name, humanize.Bytes(uint64(len(doc.Text))))
		if !doc.ModTime.IsZero() {
			parts = append(parts, "saved "+humanize.Time(doc.ModTime))
		}
	}

	if p := m.app.Projects().Current(); p != nil {
		files := humanize.Comma(int64(len(p.Files))) + " files"
		if p.Truncated {
			files += "+"
		}
		parts = append(parts, files)
	}

	if status := m.app.Status(); status != "" {
		parts = append(parts, status)
	}

	return statusBarStyle.Render(strings.Join(parts, "  •  "))
}
