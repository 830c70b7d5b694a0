package dialog

// State is the lifecycle state of a dialog instance.
type State int

const (
	StateOpen State = iota
	StateHiding
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHiding:
		return "hiding"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// CloseReason records which terminal transition closed an instance.
type CloseReason int

const (
	ReasonNone CloseReason = iota
	ReasonButton
	ReasonImplicit
	ReasonCancelSweep
)

func (r CloseReason) String() string {
	switch r {
	case ReasonButton:
		return "button"
	case ReasonImplicit:
		return "implicit"
	case ReasonCancelSweep:
		return "cancel-sweep"
	default:
		return "none"
	}
}

// instance is a live copy of a template. It is owned by the Manager.
type instance struct {
	id       int
	tpl      Template
	title    string
	body     string
	state    State
	reason   CloseReason
	buttonID string
	result   *Completion
	release  func()
}

// View is a read-only snapshot of an instance for presentation.
type View struct {
	ID      int
	Class   string
	Title   string
	Body    string
	Width   int
	Buttons []Button
	State   State
}

// Primary returns the primary button of the viewed instance.
func (v View) Primary() (Button, bool) {
	return Template{Buttons: v.Buttons}.Primary()
}

func (i *instance) view() View {
	t := i.tpl.clone()
	return View{
		ID:      i.id,
		Class:   t.Class,
		Title:   i.title,
		Body:    i.body,
		Width:   t.Width,
		Buttons: t.Buttons,
		State:   i.state,
	}
}
