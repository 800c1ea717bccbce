package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dirtree/internal/tree"
)

func buildStore(t *testing.T, ps ...string) *tree.Store {
	t.Helper()
	s := tree.NewStore()
	for _, p := range ps {
		s.Add(p)
	}
	return s
}

// The running example: /, /a, /a/b, /a/c, /d.
func exampleStore(t *testing.T) *tree.Store {
	return buildStore(t, "/", "/a", "/a/b", "/a/c", "/d")
}

func TestParseMode(t *testing.T) {
	for _, v := range []string{"linear", "static"} {
		m, err := ParseMode(v)
		require.NoError(t, err)
		assert.Equal(t, Linear, m)
	}
	for _, v := range []string{"hierarchical", "dynamic"} {
		m, err := ParseMode(v)
		require.NoError(t, err)
		assert.Equal(t, Hierarchical, m)
	}
	_, err := ParseMode("diagonal")
	assert.Error(t, err)
}

func TestLinearStep(t *testing.T) {
	s := exampleStore(t)
	lin := StrategyFor(Linear)

	a := s.Lookup("/a")
	assert.Equal(t, "/a/b", lin.Step(a, Forward).Path)
	assert.Equal(t, "/", lin.Step(a, Backward).Path)
	assert.Nil(t, lin.Step(s.Last(), Forward))
	assert.Nil(t, lin.Step(s.First(), Backward))
}

func TestHierarchicalStepSkipsDescendants(t *testing.T) {
	s := exampleStore(t)
	h := StrategyFor(Hierarchical)

	// From /a a forward step lands on /d, jumping the children of /a.
	assert.Equal(t, "/d", h.Step(s.Lookup("/a"), Forward).Path)
	assert.Equal(t, "/a", h.Step(s.Lookup("/d"), Backward).Path)

	// Between siblings inside /a.
	assert.Equal(t, "/a/c", h.Step(s.Lookup("/a/b"), Forward).Path)
	assert.Equal(t, "/a/b", h.Step(s.Lookup("/a/c"), Backward).Path)
}

func TestHierarchicalStepStopsAtSubtreeEdge(t *testing.T) {
	s := exampleStore(t)
	h := StrategyFor(Hierarchical)

	// /a/c is the last child; the next same-depth candidate would sit
	// outside /a, so the walk stops at the shallower /d.
	assert.Nil(t, h.Step(s.Lookup("/a/c"), Forward))
	assert.Nil(t, h.Step(s.Lookup("/a/b"), Backward))
}

func TestHierarchicalStepAcrossDeepRun(t *testing.T) {
	s := buildStore(t, "/", "/a", "/a/b", "/a/b/x", "/a/b/x/y", "/a/c")
	h := StrategyFor(Hierarchical)
	assert.Equal(t, "/a/c", h.Step(s.Lookup("/a/b"), Forward).Path)
}

func TestMoveRelativeCountsSteps(t *testing.T) {
	s := exampleStore(t)
	lin := StrategyFor(Linear)

	e, steps := MoveRelative(lin, s.First(), 3, Forward)
	assert.Equal(t, "/a/c", e.Path)
	assert.Equal(t, 3, steps)

	// Clamped at the boundary, reporting the steps actually taken.
	e, steps = MoveRelative(lin, s.First(), 99, Forward)
	assert.Equal(t, "/d", e.Path)
	assert.Equal(t, 4, steps)
}

func TestVisibleFrom(t *testing.T) {
	s := exampleStore(t)
	anchor := s.Lookup("/a/b")

	assert.True(t, VisibleFrom(anchor, anchor))
	assert.True(t, VisibleFrom(anchor, s.Lookup("/a/c")), "sibling")
	assert.True(t, VisibleFrom(anchor, s.Lookup("/a")), "ancestor")
	assert.True(t, VisibleFrom(anchor, s.Lookup("/")), "root ancestor")
	assert.False(t, VisibleFrom(anchor, s.Lookup("/d")), "outside subtree")
}

func TestVisibleFromShowsImmediateChildren(t *testing.T) {
	s := exampleStore(t)
	anchor := s.Lookup("/a")

	assert.True(t, VisibleFrom(anchor, s.Lookup("/a/b")))
	assert.True(t, VisibleFrom(anchor, s.Lookup("/a/c")))
	assert.True(t, VisibleFrom(anchor, s.Lookup("/d")), "sibling")
}

func TestVisibleFromRootHidesChildren(t *testing.T) {
	// The child clause is suppressed for the root anchor, so anchored
	// on "/" only the root itself is window-visible.
	s := exampleStore(t)
	root := s.Lookup("/")
	assert.True(t, VisibleFrom(root, root))
	assert.False(t, VisibleFrom(root, s.Lookup("/a")))
	assert.False(t, VisibleFrom(root, s.Lookup("/a/b")))
}

func TestVisibleFromUsesRawBytePrefix(t *testing.T) {
	// "/a" is not an ancestor of "/ab/x", but the visibility test
	// compares raw path bytes, so it counts as one. Documented
	// behavior, inherited from how the entries are stored.
	s := buildStore(t, "/", "/a", "/ab", "/ab/x")
	assert.True(t, VisibleFrom(s.Lookup("/ab/x"), s.Lookup("/a")))
}

func TestWindowStepHierarchical(t *testing.T) {
	s := exampleStore(t)
	h := StrategyFor(Hierarchical)
	anchor := s.Lookup("/a/b")

	// Backward from the anchor: /a (ancestor), then / (ancestor).
	p1 := h.WindowStep(anchor, anchor, Backward)
	require.NotNil(t, p1)
	assert.Equal(t, "/a", p1.Path)
	p2 := h.WindowStep(anchor, p1, Backward)
	require.NotNil(t, p2)
	assert.Equal(t, "/", p2.Path)
	assert.Nil(t, h.WindowStep(anchor, p2, Backward))

	// Forward from the anchor: the sibling /a/c, and nothing after it
	// since /d is outside the window.
	n1 := h.WindowStep(anchor, anchor, Forward)
	require.NotNil(t, n1)
	assert.Equal(t, "/a/c", n1.Path)
	assert.Nil(t, h.WindowStep(anchor, n1, Forward))
}
