package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecentStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		store := NewRecentStore(filepath.Join(t.TempDir(), "recent.json"), 5)

		projects, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(projects) != 0 {
			t.Errorf("got %d projects, want 0", len(projects))
		}
	})

	t.Run("touch moves to front", func(t *testing.T) {
		store := NewRecentStore(filepath.Join(t.TempDir(), "recent.json"), 5)

		for _, root := range []string{"/a", "/b", "/a"} {
			if err := store.Touch(ctx, root); err != nil {
				t.Fatalf("Touch %s: %v", root, err)
			}
		}

		projects, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(projects) != 2 {
			t.Fatalf("got %d projects, want 2", len(projects))
		}
		if projects[0].Root != "/a" || projects[1].Root != "/b" {
			t.Errorf("got order %s, %s; want /a, /b", projects[0].Root, projects[1].Root)
		}
	})

	t.Run("limit", func(t *testing.T) {
		store := NewRecentStore(filepath.Join(t.TempDir(), "recent.json"), 2)

		for _, root := range []string{"/a", "/b", "/c"} {
			if err := store.Touch(ctx, root); err != nil {
				t.Fatalf("Touch %s: %v", root, err)
			}
		}

		projects, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(projects) != 2 || projects[0].Root != "/c" || projects[1].Root != "/b" {
			t.Errorf("got %+v, want /c then /b", projects)
		}
	})

	t.Run("records time", func(t *testing.T) {
		store := NewRecentStore(filepath.Join(t.TempDir(), "recent.json"), 2)
		fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		store.now = func() time.Time { return fixed }

		if err := store.Touch(ctx, "/a"); err != nil {
			t.Fatalf("Touch: %v", err)
		}

		projects, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if !projects[0].OpenedAt.Equal(fixed) {
			t.Errorf("got %v, want %v", projects[0].OpenedAt, fixed)
		}
	})

	t.Run("remove", func(t *testing.T) {
		store := NewRecentStore(filepath.Join(t.TempDir(), "recent.json"), 5)

		for _, root := range []string{"/a", "/b"} {
			if err := store.Touch(ctx, root); err != nil {
				t.Fatalf("Touch %s: %v", root, err)
			}
		}
		if err := store.Remove(ctx, "/a"); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if err := store.Remove(ctx, "/missing"); err != nil {
			t.Fatalf("Remove missing: %v", err)
		}

		projects, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(projects) != 1 || projects[0].Root != "/b" {
			t.Errorf("got %+v, want only /b", projects)
		}
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recent.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}

		store := NewRecentStore(path, 2)
		if _, err := store.List(ctx); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("no temp file left behind", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "recent.json")
		store := NewRecentStore(path, 2)

		if err := store.Touch(ctx, "/a"); err != nil {
			t.Fatalf("Touch: %v", err)
		}
		if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
			t.Errorf("temp file still exists: %v", err)
		}
	})
}
