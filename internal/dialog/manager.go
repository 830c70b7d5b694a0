package dialog

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	// ErrNotOpen is returned when dismissing an id that is not a live instance.
	ErrNotOpen = errors.New("dialog instance is not open")
	// ErrUnknownButton is returned when clicking a button the instance does not have.
	ErrUnknownButton = errors.New("unknown dialog button")
)

// Scheduler runs tasks after the current call stack has unwound.
// *loop.Queue satisfies it.
type Scheduler interface {
	Defer(task func())
}

// Manager owns every live dialog instance and the input capture stack.
// It is not safe for concurrent use; all methods must be called from the
// goroutine that runs the Scheduler's tasks.
type Manager struct {
	registry  *Registry
	sched     Scheduler
	log       zerolog.Logger
	capture   captureStack
	instances []*instance // live instances in show order
	nextID    int
}

// NewManager creates a manager that instantiates templates from registry and
// defers completion work onto sched.
func NewManager(registry *Registry, sched Scheduler, log zerolog.Logger) *Manager {
	return &Manager{
		registry: registry,
		sched:    sched,
		log:      log,
	}
}

// Registry returns the template registry backing the manager.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Show creates a new instance of class with the given title and body, arms
// input capture for it and returns its completion. Title and body are
// inserted verbatim.
func (m *Manager) Show(class, title, body string) (*Completion, error) {
	tpl, err := m.registry.Instantiate(class)
	if err != nil {
		return nil, fmt.Errorf("show dialog: %w", err)
	}

	m.nextID++
	inst := &instance{
		id:     m.nextID,
		tpl:    tpl,
		title:  title,
		body:   body,
		state:  StateOpen,
		result: newCompletion(),
	}
	inst.release = m.capture.arm(inst.id)
	m.instances = append(m.instances, inst)

	m.log.Debug().
		Str("class", class).
		Int("instance", inst.id).
		Int("open", len(m.instances)).
		Msg("dialog shown")

	return inst.result, nil
}

// Dismiss closes the instance with the given button id. An empty button id
// is treated as an implicit close and reported as ButtonCancel. Dismissing an
// instance that is already closing is a no-op.
func (m *Manager) Dismiss(id int, buttonID string) error {
	inst := m.find(id)
	if inst == nil {
		return fmt.Errorf("dismiss %d: %w", id, ErrNotOpen)
	}

	reason := ReasonButton
	if buttonID == "" {
		reason = ReasonImplicit
	}
	m.dismiss(inst, buttonID, reason)
	return nil
}

// Click dismisses the instance with one of its own buttons.
func (m *Manager) Click(id int, buttonID string) error {
	inst := m.find(id)
	if inst == nil {
		return fmt.Errorf("click %d: %w", id, ErrNotOpen)
	}
	if _, ok := inst.tpl.Button(buttonID); !ok {
		return fmt.Errorf("click %d: %w: %q", id, ErrUnknownButton, buttonID)
	}

	m.dismiss(inst, buttonID, ReasonButton)
	return nil
}

// Close dismisses the instance through its implicit close control.
func (m *Manager) Close(id int) error {
	inst := m.find(id)
	if inst == nil {
		return fmt.Errorf("close %d: %w", id, ErrNotOpen)
	}

	m.dismiss(inst, "", ReasonImplicit)
	return nil
}

// CancelAll dismisses every open instance of class with ButtonCanceled, in
// the order they were shown. Instances already closing are skipped. It
// returns the number of instances cancelled.
func (m *Manager) CancelAll(class string) int {
	var targets []*instance
	for _, inst := range m.instances {
		if inst.tpl.Class == class && inst.state == StateOpen {
			targets = append(targets, inst)
		}
	}

	cancelled := 0
	for _, inst := range targets {
		if m.dismiss(inst, ButtonCanceled, ReasonCancelSweep) {
			cancelled++
		}
	}

	if cancelled > 0 {
		m.log.Debug().Str("class", class).Int("cancelled", cancelled).Msg("dialogs cancelled")
	}
	return cancelled
}

// HandleEvent offers an input event to the capture stack. When the event
// completes an Enter press on the active instance, that instance is dismissed
// with its primary button.
func (m *Manager) HandleEvent(ev Event) Verdict {
	verdict, confirmed := m.capture.intercept(ev)
	if confirmed == 0 {
		return verdict
	}

	inst := m.find(confirmed)
	if inst == nil || inst.state != StateOpen {
		return verdict
	}
	if primary, ok := inst.tpl.Primary(); ok {
		m.dismiss(inst, primary.ID, ReasonButton)
	}
	return verdict
}

// Armed reports whether any instance is capturing input.
func (m *Manager) Armed() bool {
	return m.capture.depth() > 0
}

// Top returns the instance that currently owns input.
func (m *Manager) Top() (View, bool) {
	top := m.capture.top()
	if top == nil {
		return View{}, false
	}
	inst := m.find(top.id)
	if inst == nil {
		return View{}, false
	}
	return inst.view(), true
}

// Views returns snapshots of the open instances in show order.
func (m *Manager) Views() []View {
	views := make([]View, 0, len(m.instances))
	for _, inst := range m.instances {
		if inst.state == StateOpen {
			views = append(views, inst.view())
		}
	}
	return views
}

// Open returns the number of open instances of class. An empty class counts
// every open instance.
func (m *Manager) Open(class string) int {
	n := 0
	for _, inst := range m.instances {
		if inst.state == StateOpen && (class == "" || inst.tpl.Class == class) {
			n++
		}
	}
	return n
}

// dismiss performs the terminal transition. It returns false when the
// instance was not open.
func (m *Manager) dismiss(inst *instance, buttonID string, reason CloseReason) bool {
	if inst.state != StateOpen {
		return false
	}
	if buttonID == "" {
		buttonID = ButtonCancel
	}

	inst.buttonID = buttonID
	inst.reason = reason
	inst.state = StateHiding
	inst.release()

	m.log.Debug().
		Str("class", inst.tpl.Class).
		Int("instance", inst.id).
		Str("button", buttonID).
		Stringer("reason", reason).
		Msg("dialog dismissed")

	m.sched.Defer(func() { m.hidden(inst) })
	return true
}

// hidden detaches the instance and then fulfills its completion, so that a
// callback which shows another dialog never sees the first one still live.
func (m *Manager) hidden(inst *instance) {
	for i, live := range m.instances {
		if live == inst {
			m.instances = append(m.instances[:i], m.instances[i+1:]...)
			break
		}
	}
	inst.state = StateClosed

	if !inst.result.resolve(inst.buttonID) {
		m.log.Warn().Int("instance", inst.id).Msg("dialog completion already fulfilled")
	}
}

func (m *Manager) find(id int) *instance {
	for _, inst := range m.instances {
		if inst.id == id {
			return inst
		}
	}
	return nil
}
