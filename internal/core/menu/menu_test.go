package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type names map[string]string

func (n names) Name(id string) (string, bool) {
	v, ok := n[id]
	return v, ok
}

type keys map[string]string

func (k keys) KeyFor(id string) (string, bool) {
	v, ok := k[id]
	return v, ok
}

func TestBuild(t *testing.T) {
	specs := []Spec{
		{ID: "file", Label: "File", Commands: []string{"file.open", "file.save", "file.missing"}},
		{ID: "empty", Label: "Empty", Commands: []string{"nothing"}},
	}

	menus := Build(specs,
		names{"file.open": "Open", "file.save": "Save"},
		keys{"file.save": "Ctrl-S"},
	)

	require.Len(t, menus, 1)
	assert.Equal(t, "File", menus[0].Label)
	assert.Equal(t, []Item{
		{Command: "file.open", Label: "Open"},
		{Command: "file.save", Label: "Save", Key: "Ctrl-S"},
	}, menus[0].Items)
}
