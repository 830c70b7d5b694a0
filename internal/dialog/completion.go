package dialog

import (
	"context"
	"sync"
)

// Completion is the single-resolution handle returned by Show. It is
// fulfilled exactly once with the id of the button that closed the dialog,
// ButtonCancel for an implicit close, or ButtonCanceled for a cancel sweep.
// It is never rejected.
type Completion struct {
	mu        sync.Mutex
	done      chan struct{}
	resolved  bool
	value     string
	callbacks []func(string)
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// resolve fulfills the completion and runs registered callbacks in order.
// It returns false if the completion was already fulfilled.
func (c *Completion) resolve(buttonID string) bool {
	c.mu.Lock()
	if c.resolved {
		c.mu.Unlock()
		return false
	}
	c.resolved = true
	c.value = buttonID
	callbacks := c.callbacks
	c.callbacks = nil
	close(c.done)
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(buttonID)
	}
	return true
}

// Done returns a channel closed once the completion is fulfilled.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Value returns the resolved button id and whether the completion is fulfilled.
func (c *Completion) Value() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.resolved
}

// Then registers fn to run with the resolved button id. Callbacks run on the
// goroutine that fulfills the completion, in registration order. If the
// completion is already fulfilled fn runs immediately.
func (c *Completion) Then(fn func(buttonID string)) *Completion {
	c.mu.Lock()
	if !c.resolved {
		c.callbacks = append(c.callbacks, fn)
		c.mu.Unlock()
		return c
	}
	value := c.value
	c.mu.Unlock()

	fn(value)
	return c
}

// Wait blocks until the completion is fulfilled or ctx is done. It must not be
// called from the goroutine that runs the event loop.
func (c *Completion) Wait(ctx context.Context) (string, error) {
	select {
	case <-c.done:
		v, _ := c.Value()
		return v, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
