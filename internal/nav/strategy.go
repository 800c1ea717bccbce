// Package nav moves a selection through the ordered directory index
// under two traversal semantics: linear sequence adjacency and
// hierarchical sibling-restricted stepping.
package nav

import (
	"fmt"

	"github.com/oakwood-commons/dirtree/internal/tree"
)

// Direction selects which neighbor link a step follows.
type Direction int

const (
	Backward Direction = iota
	Forward
)

// Mode names the traversal semantics a cursor is using. It is held per
// cursor rather than as process-global state, so two views over the
// same index can navigate differently.
type Mode int

const (
	// Linear walks raw sequence adjacency.
	Linear Mode = iota
	// Hierarchical restricts movement to entries sharing the same
	// effective parent, ascending and descending explicitly.
	Hierarchical
)

func (m Mode) String() string {
	if m == Hierarchical {
		return "hierarchical"
	}
	return "linear"
}

// ParseMode converts a CLI flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "linear", "static":
		return Linear, nil
	case "hierarchical", "dynamic":
		return Hierarchical, nil
	default:
		return Linear, fmt.Errorf("invalid navigation mode %q: valid values are linear, hierarchical", s)
	}
}

// Strategy is a pure stepping algorithm over the index sequence.
//
// Step is the movement primitive: the entry a single cursor move lands
// on, or nil at a boundary. WindowStep is the viewport primitive: the
// next entry in the given direction that is visible in a window
// anchored on anchor. The two coincide for linear traversal; the
// hierarchical window additionally shows ancestors and the anchor's
// immediate children, which movement skips.
type Strategy interface {
	Step(cur *tree.Entry, dir Direction) *tree.Entry
	WindowStep(anchor, cur *tree.Entry, dir Direction) *tree.Entry
}

// StrategyFor returns the stateless strategy implementing a mode.
func StrategyFor(m Mode) Strategy {
	if m == Hierarchical {
		return hierarchicalStrategy{}
	}
	return linearStrategy{}
}

// MoveRelative applies Step up to n times, stopping at a boundary. It
// returns the final entry and the number of successful steps so the
// caller can adjust its viewport offset by exactly that count.
func MoveRelative(s Strategy, cur *tree.Entry, n int, dir Direction) (*tree.Entry, int) {
	steps := 0
	for cur != nil && steps < n {
		next := s.Step(cur, dir)
		if next == nil {
			break
		}
		cur = next
		steps++
	}
	return cur, steps
}

func neighbor(e *tree.Entry, dir Direction) *tree.Entry {
	if dir == Forward {
		return e.Next()
	}
	return e.Prev()
}

type linearStrategy struct{}

func (linearStrategy) Step(cur *tree.Entry, dir Direction) *tree.Entry {
	return neighbor(cur, dir)
}

func (linearStrategy) WindowStep(_, cur *tree.Entry, dir Direction) *tree.Entry {
	return neighbor(cur, dir)
}

type hierarchicalStrategy struct{}

// Step returns the adjacent entry at the same depth without leaving
// the current parent's subtree: the walk stops as soon as the next
// entry is shallower than the starting depth, and skips over the
// deeper entries that make up intervening descendant runs.
func (hierarchicalStrategy) Step(cur *tree.Entry, dir Direction) *tree.Entry {
	for c := neighbor(cur, dir); c != nil && c.Depth >= cur.Depth; c = neighbor(c, dir) {
		if c.Depth == cur.Depth {
			return c
		}
	}
	return nil
}

// WindowStep returns the nearest entry visible from anchor in the
// given direction, skipping entries the hierarchical window hides.
func (hierarchicalStrategy) WindowStep(anchor, cur *tree.Entry, dir Direction) *tree.Entry {
	for c := neighbor(cur, dir); c != nil; c = neighbor(c, dir) {
		if VisibleFrom(anchor, c) {
			return c
		}
	}
	return nil
}

// VisibleFrom decides whether e appears in a hierarchical window
// anchored on anchor: anchor's siblings (same effective parent),
// anchor's ancestor chain, and anchor's immediate children when anchor
// is not the root. The effective-parent test compares raw path bytes
// up to the entry's last separator, exactly as the paths are stored.
func VisibleFrom(anchor, e *tree.Entry) bool {
	if anchor == e {
		return true
	}
	switch {
	case e.Depth == anchor.Depth:
		return tree.SameParent(e.Path, anchor.Path)
	case e.Depth < anchor.Depth:
		return tree.HasPathPrefix(anchor.Path, e.Path)
	case e.Depth == anchor.Depth+1 && !anchor.IsRoot():
		return tree.HasPathPrefix(e.Path, anchor.Path)
	default:
		return false
	}
}
