// Package view projects cursor state onto a fixed-height window,
// producing per-line glyph text and the line-to-entry map used for
// mouse hit-testing. Glyph selection never depends on the traversal
// mode; only the choice of the topmost entry does.
package view

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/dirtree/internal/nav"
	"github.com/oakwood-commons/dirtree/internal/tree"
)

// Connector glyphs for the tree outline.
const (
	glyphVLine  = "│"
	glyphTee    = "├"
	glyphCorner = "└"
	glyphHLine  = "─"
)

// Line is one rendered window row.
type Line struct {
	// Entry backs this row; nil for rows past the end of the index.
	Entry *tree.Entry
	// Text is the glyph prefix plus name (or full path at topdepth),
	// truncated to the renderer width.
	Text string
	// Selected marks the cursor row.
	Selected bool
}

// Frame is a fully rendered window: exactly Height lines plus the
// index of the selected row (-1 when the index is empty).
type Frame struct {
	Lines        []Line
	SelectedLine int
}

// EntryAt resolves a window row to its entry for hit-testing.
func (f Frame) EntryAt(line int) *tree.Entry {
	if line < 0 || line >= len(f.Lines) {
		return nil
	}
	return f.Lines[line].Entry
}

// Renderer holds the window geometry.
type Renderer struct {
	Width  int
	Height int
}

// Render builds a frame for the cursor's current state. The topmost
// entry comes from stepping backward with the cursor's active
// strategy, so a hierarchical viewport stays sibling-coherent; the
// rows themselves follow raw sequence order because the window must
// show the literal list.
func (r Renderer) Render(c *nav.Cursor) Frame {
	frame := Frame{
		Lines:        make([]Line, max(r.Height, 0)),
		SelectedLine: -1,
	}
	top := c.Top()
	if top == nil || r.Height <= 0 {
		return frame
	}

	entries := make([]*tree.Entry, 0, r.Height)
	topdepth := top.Depth
	for e := top; e != nil && len(entries) < r.Height; e = e.Next() {
		entries = append(entries, e)
		if e.Depth < topdepth {
			topdepth = e.Depth
		}
	}

	sel := c.Selected()
	for i, e := range entries {
		frame.Lines[i] = Line{
			Entry:    e,
			Text:     entryText(e, topdepth, r.Width),
			Selected: e == sel,
		}
		if e == sel {
			frame.SelectedLine = i
		}
	}
	return frame
}

// entryText draws one row: guide columns for the levels between
// topdepth and the entry, a tee or corner connector, then the leaf
// name. Entries at topdepth show their full path for orientation.
func entryText(e *tree.Entry, topdepth, width int) string {
	if e.Depth <= topdepth {
		return runewidth.Truncate(e.Path, width, "")
	}

	var b strings.Builder
	cols := e.Depth - topdepth - 1
	for j := 0; j < cols; j++ {
		if width-8-3*j < 9 {
			break
		}
		b.WriteByte(' ')
		if e.SiblingMask&(1<<levelBit(j+topdepth+1)) != 0 {
			b.WriteString(glyphVLine)
		} else {
			b.WriteByte(' ')
		}
		b.WriteByte(' ')
	}
	b.WriteByte(' ')
	if subtreeEnds(e) {
		b.WriteString(glyphCorner)
	} else {
		b.WriteString(glyphTee)
	}
	b.WriteString(glyphHLine)
	b.WriteByte(' ')

	prefix := b.String()
	avail := width - runewidth.StringWidth(prefix)
	if avail <= 0 {
		return runewidth.Truncate(prefix, width, "")
	}
	return prefix + runewidth.Truncate(e.Name, avail, "")
}

// subtreeEnds reports whether e is the final sibling at its level: the
// following entry's mask no longer carries this level's bit.
func subtreeEnds(e *tree.Entry) bool {
	next := e.Next()
	return next == nil || next.SiblingMask&(1<<levelBit(e.Depth)) == 0
}

// levelBit clamps a depth level into the mask's bit range.
func levelBit(level int) uint {
	if level > 63 {
		return 63
	}
	return uint(level)
}

// RenderAll draws the whole index as glyph lines, one per entry that
// passes the filter (a nil filter keeps everything). This backs the
// non-interactive tree dump.
func RenderAll(s *tree.Store, width int, filter func(*tree.Entry) bool) []string {
	first := s.First()
	if first == nil {
		return nil
	}
	topdepth := first.Depth
	var lines []string
	for e := first; e != nil; e = e.Next() {
		if filter != nil && !filter(e) {
			continue
		}
		lines = append(lines, entryText(e, topdepth, width))
	}
	return lines
}
