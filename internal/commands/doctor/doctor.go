// Package doctor implements the health checks run by `scribe doctor`.
package doctor

import (
	"context"
	"fmt"
)

// Status is the outcome of a single check item.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText encodes the status by name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckItem is one line of a check result.
type CheckItem struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
	// Fixable marks issues that `doctor --fix` can repair.
	Fixable bool `json:"fixable,omitempty"`
	// Fixed marks issues that were repaired during this run.
	Fixed bool `json:"fixed,omitempty"`
}

// Result groups the items reported by one check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

// Check is a single diagnostic.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// RunAll runs checks in order. Checks left when ctx is cancelled are
// reported as failed without running.
func RunAll(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{
				Name:  check.Name(),
				Items: []CheckItem{{Label: "Skipped", Status: StatusFail, Detail: err.Error()}},
			})
			continue
		}
		results = append(results, check.Run(ctx))
	}
	return results
}

// Counts tallies check items by outcome.
type Counts struct {
	Passed  int `json:"passed"`
	Warned  int `json:"warned"`
	Failed  int `json:"failed"`
	Fixable int `json:"fixable"`
	Fixed   int `json:"fixed"`
}

// Healthy reports whether nothing failed.
func (c Counts) Healthy() bool {
	return c.Failed == 0
}

// Tally counts the items of every result.
func Tally(results []Result) Counts {
	var c Counts
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				c.Passed++
			case StatusWarn:
				c.Warned++
			case StatusFail:
				c.Failed++
			}
			if item.Fixable && item.Status != StatusPass {
				c.Fixable++
			}
			if item.Fixed {
				c.Fixed++
			}
		}
	}
	return c
}
