package dialog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion_ResolvesOnce(t *testing.T) {
	c := newCompletion()

	_, ok := c.Value()
	assert.False(t, ok)

	assert.True(t, c.resolve("ok"))
	assert.False(t, c.resolve("cancel"))

	v, ok := c.Value()
	assert.True(t, ok)
	assert.Equal(t, "ok", v)
}

func TestCompletion_ThenOrdering(t *testing.T) {
	c := newCompletion()
	var calls []string

	c.Then(func(id string) { calls = append(calls, "a:"+id) }).
		Then(func(id string) { calls = append(calls, "b:"+id) })
	assert.Empty(t, calls)

	c.resolve("ok")
	assert.Equal(t, []string{"a:ok", "b:ok"}, calls)

	c.Then(func(id string) { calls = append(calls, "late:"+id) })
	assert.Equal(t, []string{"a:ok", "b:ok", "late:ok"}, calls)
}

func TestCompletion_Wait(t *testing.T) {
	c := newCompletion()

	go func() {
		time.Sleep(10 * time.Millisecond)
		c.resolve(ButtonDontSave)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	v, err := c.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, ButtonDontSave, v)

	select {
	case <-c.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestCompletion_WaitContextCancelled(t *testing.T) {
	c := newCompletion()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
