package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/hay-kot/scribe/internal/core/project"
)

// RecentStore lists and prunes recent projects.
type RecentStore interface {
	List(ctx context.Context) ([]project.Recent, error)
	Remove(ctx context.Context, root string) error
}

// RecentCheck detects recent project entries whose directory is gone.
type RecentCheck struct {
	store RecentStore
	fix   bool
}

// NewRecentCheck creates a new recent projects check.
// If fix is true, stale entries are removed from the list.
func NewRecentCheck(store RecentStore, fix bool) *RecentCheck {
	return &RecentCheck{store: store, fix: fix}
}

func (c *RecentCheck) Name() string {
	return "Recent Projects"
}

func (c *RecentCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	recent, err := c.store.List(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Read recent projects",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	var stale []string
	for _, r := range recent {
		if info, err := os.Stat(r.Root); err != nil || !info.IsDir() {
			stale = append(stale, r.Root)
		}
	}

	if len(stale) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "No stale entries",
			Status: StatusPass,
			Detail: fmt.Sprintf("%d project(s) recorded", len(recent)),
		})
		return result
	}

	for _, root := range stale {
		if !c.fix {
			result.Items = append(result.Items, CheckItem{
				Label:   root,
				Status:  StatusWarn,
				Detail:  "directory no longer exists",
				Fixable: true,
			})
			continue
		}

		if err := c.store.Remove(ctx, root); err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  root,
				Status: StatusFail,
				Detail: fmt.Sprintf("failed to remove: %v", err),
			})
			continue
		}
		result.Items = append(result.Items, CheckItem{
			Label:  root,
			Status: StatusPass,
			Detail: "removed stale entry",
			Fixed:  true,
		})
	}

	return result
}
