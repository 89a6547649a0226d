// Package diff computes classified differences between two token-set
// sources. Each source is loaded into a key to (value, category) mapping;
// every key of either side appears exactly once in the result, in
// lexicographic order.
package diff

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

// Loader loads the state of every key in a reference. A reference is
// types.CurrentRef, a snapshot id or a snapshot version label.
type Loader interface {
	Load(ref string) (map[string]types.TokenState, error)
}

// Engine diffs references through a Loader.
type Engine struct {
	loader Loader
}

// NewEngine returns an Engine that reads sources from loader.
func NewEngine(loader Loader) *Engine {
	return &Engine{loader: loader}
}

// Diff loads refA and refB and compares them. Both sides are loaded before
// comparison; a missing reference aborts with the loader's error.
func (e *Engine) Diff(refA, refB string) (*types.DiffReport, error) {
	a, err := e.loader.Load(refA)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", refA, err)
	}
	b, err := e.loader.Load(refB)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", refB, err)
	}
	entries := Compute(a, b)
	return &types.DiffReport{
		A:       refA,
		B:       refB,
		Summary: Summarize(entries),
		Entries: entries,
	}, nil
}

// Compute classifies every key in the union of a and b. Only value and
// category take part in equality.
func Compute(a, b map[string]types.TokenState) []types.DiffEntry {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	entries := make([]types.DiffEntry, 0, len(keys))
	for _, k := range keys {
		old, inA := a[k]
		cur, inB := b[k]
		entry := types.DiffEntry{Key: k}
		switch {
		case inA && !inB:
			entry.Kind = types.Removed
			entry.Old = &old
		case !inA && inB:
			entry.Kind = types.Added
			entry.New = &cur
		case old == cur:
			entry.Kind = types.Unchanged
			entry.Old, entry.New = &old, &cur
		default:
			entry.Kind = types.Modified
			entry.Old, entry.New = &old, &cur
		}
		entries = append(entries, entry)
	}
	return entries
}

// Summarize counts entries per kind.
func Summarize(entries []types.DiffEntry) types.DiffSummary {
	var s types.DiffSummary
	for _, e := range entries {
		switch e.Kind {
		case types.Added:
			s.Added++
		case types.Removed:
			s.Removed++
		case types.Modified:
			s.Modified++
		case types.Unchanged:
			s.Unchanged++
		}
	}
	return s
}
