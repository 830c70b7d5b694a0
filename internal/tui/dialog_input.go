package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/scribe/internal/dialog"
)

// dialogInput routes terminal input through a dialog manager and remembers
// which button is selected in each open dialog.
type dialogInput struct {
	dialogs  *dialog.Manager
	keys     dialogKeyMap
	selected map[int]int // dialog id -> selected button index
	scroll   map[int]int // dialog id -> body line offset
}

func newDialogInput(dialogs *dialog.Manager) *dialogInput {
	return &dialogInput{
		dialogs:  dialogs,
		keys:     newDialogKeyMap(),
		selected: make(map[int]int),
		scroll:   make(map[int]int),
	}
}

// handleKey feeds the key through the capture stack as a down/up pair. The
// terminal reports a single event per press, so both phases are sent back to
// back with the target computed before either is handled. Keys no dialog
// claims go to pass.
func (d *dialogInput) handleKey(msg tea.KeyMsg, pass func(tea.KeyMsg) tea.Cmd) tea.Cmd {
	target := 0
	if top, ok := d.dialogs.Top(); ok {
		target = top.ID
	}
	ev := dialog.Event{Kind: dialog.EventKey, Phase: dialog.PhaseDown, Key: msg.String(), Target: target}

	var cmd tea.Cmd
	switch d.dialogs.HandleEvent(ev) {
	case dialog.Pass:
		if pass != nil {
			cmd = pass(msg)
		}
	case dialog.Deliver:
		d.deliverKey(msg, target)
	case dialog.Suppress:
	}

	ev.Phase = dialog.PhaseUp
	d.dialogs.HandleEvent(ev)
	return cmd
}

// deliverKey handles a key delivered to the dialog with the given id.
func (d *dialogInput) deliverKey(msg tea.KeyMsg, id int) {
	top, ok := d.dialogs.Top()
	if !ok || top.ID != id {
		return
	}

	switch {
	case key.Matches(msg, d.keys.Close):
		if err := d.dialogs.Close(top.ID); err != nil {
			log.Debug().Err(err).Int("dialog", top.ID).Msg("close dialog")
		}
		return
	case key.Matches(msg, d.keys.Up):
		d.scroll[top.ID] = max(d.scroll[top.ID]-scrollStep(msg), 0)
		return
	case key.Matches(msg, d.keys.Down):
		d.scroll[top.ID] += scrollStep(msg)
		return
	}

	n := len(top.Buttons)
	if n == 0 {
		return
	}
	sel := d.selection(top)

	switch {
	case key.Matches(msg, d.keys.Next):
		sel = (sel + 1) % n
	case key.Matches(msg, d.keys.Prev):
		sel = (sel - 1 + n) % n
	case key.Matches(msg, d.keys.Activate):
		if err := d.dialogs.Click(top.ID, top.Buttons[sel].ID); err != nil {
			log.Debug().Err(err).Int("dialog", top.ID).Msg("activate button")
		}
	}
	d.selected[top.ID] = sel
}

// handleMouse hit-tests left clicks against the dialog zones and feeds them
// through the capture stack. Presses are the down phase, releases the up
// phase; a button is activated on release. Releases no dialog claims go to
// pass. It reports whether the event was a click at all.
func (d *dialogInput) handleMouse(msg tea.MouseMsg, pass func(tea.MouseMsg)) bool {
	var phase dialog.Phase
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		phase = dialog.PhaseDown
	case msg.Action == tea.MouseActionRelease:
		phase = dialog.PhaseUp
	default:
		return false
	}

	top, open := d.dialogs.Top()
	target := 0
	if open && zone.Get(dialogZone(top.ID)).InBounds(msg) {
		target = top.ID
	}

	verdict := d.dialogs.HandleEvent(dialog.Event{Kind: dialog.EventPointer, Phase: phase, Target: target})
	if phase != dialog.PhaseUp {
		return true
	}

	switch verdict {
	case dialog.Deliver:
		for i, b := range top.Buttons {
			if zone.Get(buttonZone(top.ID, b.ID)).InBounds(msg) {
				d.selected[top.ID] = i
				if err := d.dialogs.Click(top.ID, b.ID); err != nil {
					log.Debug().Err(err).Int("dialog", top.ID).Msg("click button")
				}
				break
			}
		}
	case dialog.Pass:
		if pass != nil {
			pass(msg)
		}
	case dialog.Suppress:
	}
	return true
}

func (d *dialogInput) selection(v dialog.View) int {
	if sel, ok := d.selected[v.ID]; ok && sel < len(v.Buttons) {
		return sel
	}
	return defaultSelection(v)
}

// prune forgets selections of dialogs that are no longer open.
func (d *dialogInput) prune() {
	open := make(map[int]bool)
	for _, v := range d.dialogs.Views() {
		open[v.ID] = true
	}
	for id := range d.selected {
		if !open[id] {
			delete(d.selected, id)
		}
	}
	for id := range d.scroll {
		if !open[id] {
			delete(d.scroll, id)
		}
	}
}

// scrollStep is the number of body lines a scroll key moves.
func scrollStep(msg tea.KeyMsg) int {
	switch msg.String() {
	case "pgup", "pgdown":
		return 5
	default:
		return 1
	}
}

// view renders the top dialog centered on the screen. It returns false when
// no dialog is open.
func (d *dialogInput) view(width, height int, md *markdown) (string, bool) {
	top, ok := d.dialogs.Top()
	if !ok {
		return "", false
	}

	box, offset := renderDialog(top, dialogLayout{
		selected:  d.selection(top),
		offset:    d.scroll[top.ID],
		maxWidth:  width,
		maxHeight: height,
	}, md)
	d.scroll[top.ID] = offset
	if more := d.dialogs.Open("") - 1; more > 0 {
		box = lipgloss.JoinVertical(lipgloss.Center, box, statusBarStyle.Render(fmt.Sprintf("%d more dialogs waiting", more)))
	}
	return overlay(box, width, height), true
}

// waitForTasks returns a command that fires once notify signals queued work.
// Tasks are run from Update so they never run inside the call that deferred
// them.
func waitForTasks(notify <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-notify
		return tasksReadyMsg{}
	}
}
