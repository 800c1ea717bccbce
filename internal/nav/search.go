package nav

import "strings"

// Search scans forward from the selection for the first entry whose
// leaf name starts with prefix (case-sensitive), wrapping around to
// the start once. On a match the entry becomes the selection and the
// offset grows by the number of entries scanned, wraparound included,
// before recentering. Without a match after a full wrap the selection
// is left untouched and false is returned; the caller is expected to
// drop the character that made the buffer unmatchable.
//
// Each call is O(index size); fine for interactive list sizes, and the
// known scaling limit of incremental search.
func (c *Cursor) Search(prefix string) bool {
	if c.Selected() == nil {
		return false
	}
	cur := c.selected
	scanned := 0
	wrapped := false
	for !wrapped || cur != c.selected {
		if strings.HasPrefix(cur.Name, prefix) {
			c.selected = cur
			c.offset += scanned
			c.Recenter()
			return true
		}
		cur = cur.Next()
		if cur == nil {
			cur = c.store.First()
			wrapped = true
		}
		scanned++
	}
	c.Recenter()
	return false
}

// NextForSearch advances the selection one raw sequence step before a
// repeated search, so successive searches find successive hits even in
// hierarchical mode; from the last entry it restarts at the top.
func (c *Cursor) NextForSearch() {
	if c.Selected() == nil {
		return
	}
	if c.selected == c.store.Last() {
		c.MoveToTop()
		return
	}
	e, steps := MoveRelative(StrategyFor(Linear), c.selected, 1, Forward)
	c.selected = e
	c.offset += steps
	c.Recenter()
}
