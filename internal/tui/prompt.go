package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/hay-kot/scribe/internal/core/loop"
	"github.com/hay-kot/scribe/internal/dialog"
)

// PromptModel shows dialogs on their own, without the editor, and quits
// once the given completion is fulfilled.
type PromptModel struct {
	queue  *loop.Queue
	result *dialog.Completion
	input  *dialogInput
	md     *markdown

	width  int
	height int
}

// NewPrompt creates a prompt model. The dialog behind result must already be
// shown on dialogs, whose scheduler must be queue.
func NewPrompt(dialogs *dialog.Manager, queue *loop.Queue, result *dialog.Completion, markdownStyle string) PromptModel {
	zoneOnce.Do(zone.NewGlobal)

	return PromptModel{
		queue:  queue,
		result: result,
		input:  newDialogInput(dialogs),
		md:     newMarkdown(markdownStyle),
	}
}

// Init initializes the model.
func (m PromptModel) Init() tea.Cmd {
	return waitForTasks(m.queue.Notify())
}

// Update handles messages.
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksReadyMsg:
		m.queue.RunPending()
		m.input.prune()
		if _, done := m.result.Value(); done {
			return m, tea.Quit
		}
		return m, waitForTasks(m.queue.Notify())

	case tea.KeyMsg:
		return m, m.input.handleKey(msg, nil)

	case tea.MouseMsg:
		m.input.handleMouse(msg, nil)
		return m, nil
	}

	return m, nil
}

// View renders the top dialog.
func (m PromptModel) View() string {
	view, _ := m.input.view(m.width, m.height, m.md)
	return zone.Scan(view)
}
