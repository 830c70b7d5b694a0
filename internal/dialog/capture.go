package dialog

// EventKind distinguishes keyboard from pointer input.
type EventKind int

const (
	EventKey EventKind = iota
	EventPointer
)

// Phase is the key phase of a keyboard event.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseUp
)

// KeyEnter is the key name that confirms the primary button.
const KeyEnter = "enter"

// Event is an input event offered to the capture stack before the rest of the
// application sees it. Target is the id of the instance whose subtree the
// event is aimed at, or zero for the application itself.
type Event struct {
	Kind   EventKind
	Phase  Phase
	Key    string
	Target int
}

// Verdict tells the host what to do with an event after capture.
type Verdict int

const (
	// Pass means no dialog is armed; the application handles the event.
	Pass Verdict = iota
	// Deliver means the event targets the active dialog and should reach it.
	Deliver
	// Suppress means the event must not reach anything.
	Suppress
)

func (v Verdict) String() string {
	switch v {
	case Pass:
		return "pass"
	case Deliver:
		return "deliver"
	case Suppress:
		return "suppress"
	default:
		return "unknown"
	}
}

type armed struct {
	id        int
	enterDown bool
}

// captureStack tracks armed instances in show order. The last armed instance
// owns input.
type captureStack struct {
	stack []*armed
}

// arm pushes id and returns the function that disarms it. The returned
// function is safe to call more than once.
func (c *captureStack) arm(id int) func() {
	entry := &armed{id: id}
	if top := c.top(); top != nil {
		top.enterDown = false
	}
	c.stack = append(c.stack, entry)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		c.remove(entry)
	}
}

func (c *captureStack) remove(entry *armed) {
	for i, e := range c.stack {
		if e == entry {
			c.stack = append(c.stack[:i], c.stack[i+1:]...)
			break
		}
	}
	if top := c.top(); top != nil {
		top.enterDown = false
	}
}

func (c *captureStack) top() *armed {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

func (c *captureStack) depth() int {
	return len(c.stack)
}

// intercept classifies ev and reports the id of the instance whose primary
// action was confirmed by a complete Enter press, or zero.
func (c *captureStack) intercept(ev Event) (Verdict, int) {
	top := c.top()
	if top == nil {
		return Pass, 0
	}

	confirmed := 0
	if ev.Kind == EventKey {
		switch ev.Phase {
		case PhaseDown:
			if ev.Key == KeyEnter {
				top.enterDown = true
			}
		case PhaseUp:
			if ev.Key == KeyEnter && top.enterDown {
				confirmed = top.id
			}
			top.enterDown = false
		}
	}

	if ev.Target != top.id {
		return Suppress, confirmed
	}
	return Deliver, confirmed
}
