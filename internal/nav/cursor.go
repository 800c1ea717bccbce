package nav

import (
	"github.com/oakwood-commons/dirtree/internal/tree"
)

// margin is the number of lines kept between the selection and either
// window edge when recentering.
const margin = 3

// Cursor owns a selection into the index plus the viewport offset of
// that selection from the window top. All movement goes through the
// active traversal strategy; every move ends with a recenter so the
// offset stays inside the window.
//
// A cursor registers a removal hook on creation so a mutation that
// deletes the selected entry repairs the selection while the removed
// entry's links are still valid. Close deregisters the hook; a cursor
// that is never closed keeps receiving repair callbacks.
type Cursor struct {
	store    *tree.Store
	selected *tree.Entry
	offset   int
	mode     Mode
	height   int
	hook     tree.HookHandle
	closed   bool
}

// NewCursor creates a cursor over store starting at the first entry,
// with the selection initially centered in a window of height lines.
func NewCursor(store *tree.Store, mode Mode, height int) *Cursor {
	c := &Cursor{
		store:  store,
		mode:   mode,
		height: height,
		offset: height / 2,
	}
	c.selected = store.First()
	c.hook = store.AddRemoveHook(c.onRemove)
	return c
}

// Close deregisters the cursor's removal hook.
func (c *Cursor) Close() {
	if !c.closed {
		c.store.RemoveRemoveHook(c.hook)
		c.closed = true
	}
}

// onRemove repairs the selection when its entry is removed: former
// successor, else former predecessor, else no selection. The hook runs
// before unlinking, so both neighbor links are still valid. It may
// fire re-entrantly from a rescan inside MoveToChild; at that point
// the selection is still the pre-move entry, so repair stays coherent.
func (c *Cursor) onRemove(e *tree.Entry) {
	if c.selected != e {
		return
	}
	if e.Next() != nil {
		c.selected = e.Next()
	} else {
		c.selected = e.Prev()
	}
}

// Selected returns the current selection; nil only when the index is
// empty.
func (c *Cursor) Selected() *tree.Entry {
	if c.selected == nil {
		c.selected = c.store.First()
	}
	return c.selected
}

// Offset returns the viewport offset of the selection.
func (c *Cursor) Offset() int { return c.offset }

// Mode returns the active traversal mode.
func (c *Cursor) Mode() Mode { return c.mode }

// SetMode switches the traversal mode for all subsequent moves.
func (c *Cursor) SetMode(m Mode) { c.mode = m }

// ToggleMode flips between linear and hierarchical traversal and
// returns the new mode.
func (c *Cursor) ToggleMode() Mode {
	if c.mode == Linear {
		c.mode = Hierarchical
	} else {
		c.mode = Linear
	}
	return c.mode
}

// Height returns the window height the cursor recenters against.
func (c *Cursor) Height() int { return c.height }

// SetHeight updates the window height after a resize and re-clamps.
func (c *Cursor) SetHeight(h int) {
	c.height = h
	c.Recenter()
}

func (c *Cursor) strategy() Strategy { return StrategyFor(c.mode) }

// MoveBackward moves the selection up to n steps toward the start,
// adjusting the offset by the steps actually taken.
func (c *Cursor) MoveBackward(n int) {
	if c.Selected() == nil {
		return
	}
	e, steps := MoveRelative(c.strategy(), c.selected, n, Backward)
	c.selected = e
	c.offset -= steps
	c.Recenter()
}

// MoveForward moves the selection up to n steps toward the end,
// adjusting the offset by the steps actually taken.
func (c *Cursor) MoveForward(n int) {
	if c.Selected() == nil {
		return
	}
	e, steps := MoveRelative(c.strategy(), c.selected, n, Forward)
	c.selected = e
	c.offset += steps
	c.Recenter()
}

// MoveToParent walks predecessor links until an entry shallower than
// the selection, decrementing the offset once per link traversed, and
// falls back to the first entry if the walk exhausts the list. It
// reports whether the selection changed.
func (c *Cursor) MoveToParent() bool {
	if c.Selected() == nil {
		return false
	}
	old := c.selected
	cur := c.selected.Prev()
	for cur != nil && cur.Depth >= c.selected.Depth {
		cur = cur.Prev()
		c.offset--
	}
	if cur == nil {
		cur = c.store.First()
	}
	c.selected = cur
	c.Recenter()
	return c.selected != old
}

// MoveToChild selects the selection's first child. If the sequence has
// no deeper successor yet, the selection's directory is rescanned once
// and the check retried; a still-missing child leaves the selection
// unchanged, which is a defined no-op. The returned error reports a
// failed rescan only.
func (c *Cursor) MoveToChild() error {
	if c.Selected() == nil {
		return nil
	}
	if c.descendIfChild() {
		return nil
	}
	err := c.store.Rescan(c.selected.Path)
	c.descendIfChild()
	return err
}

func (c *Cursor) descendIfChild() bool {
	next := c.selected.Next()
	if next == nil || next.Depth <= c.selected.Depth {
		return false
	}
	c.selected = next
	c.offset++
	c.Recenter()
	return true
}

// MoveToTop selects the first entry at the window top.
func (c *Cursor) MoveToTop() {
	c.selected = c.store.First()
	c.offset = 0
}

// MoveToBottom selects the last entry near the window bottom.
func (c *Cursor) MoveToBottom() {
	c.selected = c.store.Last()
	c.offset = c.height - margin - 1
}

// SelectLine sets the selection to an entry resolved from a rendered
// line, placing the offset at that line. Used for mouse hit-testing.
func (c *Cursor) SelectLine(e *tree.Entry, line int) {
	if e == nil {
		return
	}
	c.selected = e
	c.offset = line
}

// SelectPath moves the selection to the entry for path, if indexed.
func (c *Cursor) SelectPath(path string) bool {
	e := c.store.Lookup(path)
	if e == nil {
		return false
	}
	c.selected = e
	c.Recenter()
	return true
}

// Recenter clamps the offset into [margin, height-margin-1]. Windows
// too short for both margins degrade to clamping against the edges.
func (c *Cursor) Recenter() {
	lo, hi := margin, c.height-margin-1
	if hi < lo {
		lo, hi = 0, max(c.height-1, 0)
	}
	if c.offset < lo {
		c.offset = lo
	} else if c.offset > hi {
		c.offset = hi
	}
}

// Top computes the entry shown on the topmost window line by stepping
// backward from the selection with the active strategy, and snaps the
// offset to the steps actually available so the selection's line and
// the top entry always agree.
func (c *Cursor) Top() *tree.Entry {
	if c.Selected() == nil {
		return nil
	}
	cur := c.selected
	steps := 0
	s := c.strategy()
	for steps < c.offset {
		prev := s.WindowStep(c.selected, cur, Backward)
		if prev == nil {
			break
		}
		cur = prev
		steps++
	}
	c.offset = steps
	return cur
}
