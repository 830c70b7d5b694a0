package doctor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/scribe/internal/core/config"
	"github.com/hay-kot/scribe/internal/dialog"
	"github.com/hay-kot/scribe/internal/store/jsonfile"
)

func TestRecentCheck(t *testing.T) {
	ctx := context.Background()
	live := t.TempDir()
	gone := filepath.Join(t.TempDir(), "gone")

	newStore := func(t *testing.T) *jsonfile.RecentStore {
		store := jsonfile.NewRecentStore(filepath.Join(t.TempDir(), "recent.json"), 10)
		require.NoError(t, store.Touch(ctx, gone))
		require.NoError(t, store.Touch(ctx, live))
		return store
	}

	t.Run("reports stale entries", func(t *testing.T) {
		result := NewRecentCheck(newStore(t), false).Run(ctx)

		assert.Equal(t, "Recent Projects", result.Name)
		require.Len(t, result.Items, 1)
		assert.Equal(t, gone, result.Items[0].Label)
		assert.Equal(t, StatusWarn, result.Items[0].Status)
		assert.Equal(t, 1, Tally([]Result{result}).Fixable)
	})

	t.Run("fix removes them", func(t *testing.T) {
		store := newStore(t)
		result := NewRecentCheck(store, true).Run(ctx)

		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusPass, result.Items[0].Status)
		counts := Tally([]Result{result})
		assert.Equal(t, 1, counts.Fixed)
		assert.Zero(t, counts.Fixable)

		recent, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, live, recent[0].Root)
	})

	t.Run("nothing stale", func(t *testing.T) {
		store := jsonfile.NewRecentStore(filepath.Join(t.TempDir(), "recent.json"), 10)
		require.NoError(t, store.Touch(ctx, live))

		result := NewRecentCheck(store, false).Run(ctx)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "No stale entries", result.Items[0].Label)
	})
}

func TestTemplatesCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("built-ins", func(t *testing.T) {
		result := NewTemplatesCheck("").Run(ctx)

		require.Len(t, result.Items, len(dialog.ReservedClasses))
		counts := Tally([]Result{result})
		assert.Equal(t, len(dialog.ReservedClasses), counts.Passed)
		assert.Zero(t, counts.Warned)
		assert.True(t, counts.Healthy())
	})

	t.Run("override without primary warns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "templates.yaml")
		content := "templates:\n  - class: error-dialog\n    buttons:\n      - id: ok\n        label: OK\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		result := NewTemplatesCheck(path).Run(ctx)
		counts := Tally([]Result{result})
		assert.Equal(t, 1, counts.Warned)
		assert.Zero(t, counts.Failed)
	})

	t.Run("invalid file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "templates.yaml")
		content := "templates:\n  - class: error-dialog\n    buttons:\n      - id: ''\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		result := NewTemplatesCheck(path).Run(ctx)
		assert.Positive(t, Tally([]Result{result}).Failed)
	})
}

func TestConfigCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("not loaded", func(t *testing.T) {
		result := NewConfigCheck(nil, "").Run(ctx)
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusFail, result.Items[0].Status)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load("", t.TempDir())
		require.NoError(t, err)

		results := RunAll(ctx, []Check{NewConfigCheck(cfg, filepath.Join(t.TempDir(), "missing.yaml"))})
		assert.True(t, Tally(results).Healthy())

		data, err := json.Marshal(results[0].Items[0])
		require.NoError(t, err)
		assert.Contains(t, string(data), `"status":"pass"`)
	})
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := RunAll(ctx, []Check{NewTemplatesCheck("")})
	require.Len(t, results, 1)
	assert.Equal(t, "Skipped", results[0].Items[0].Label)
	assert.False(t, Tally(results).Healthy())
}
