package tree

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// RemoveHook observes entry removal. Hooks fire synchronously, once per
// removed entry, before the entry is unlinked, so the entry's Prev/Next
// links are still valid when the hook runs. This is the window in which
// cursors repair a selection that points at the removed entry.
type RemoveHook func(*Entry)

// HookHandle identifies a registered RemoveHook for deregistration.
type HookHandle int

// Store is the ordered directory index. It owns the entry sequence and
// enforces the contiguous-children invariant across Add, Remove and
// Rescan. A Store is single-writer: all mutation happens on the event
// dispatch goroutine, so no locking is required.
type Store struct {
	first, last *Entry
	byPath      map[string]*Entry

	scanner  Scanner
	hooks    map[HookHandle]RemoveHook
	nextHook HookHandle
}

// NewStore returns an empty index scanning the real filesystem.
func NewStore() *Store {
	return NewStoreWithScanner(osScanner{})
}

// NewStoreWithScanner returns an empty index using the given scanner
// for Rescan. Tests inject fake directory trees this way.
func NewStoreWithScanner(s Scanner) *Store {
	return &Store{
		byPath:  make(map[string]*Entry),
		scanner: s,
		hooks:   make(map[HookHandle]RemoveHook),
	}
}

// First returns the first entry in sequence order, or nil when empty.
func (s *Store) First() *Entry { return s.first }

// Last returns the last entry in sequence order, or nil when empty.
func (s *Store) Last() *Entry { return s.last }

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.byPath) }

// Lookup finds the entry for an exact path, or nil.
func (s *Store) Lookup(p string) *Entry {
	return s.byPath[normalize(p)]
}

// AddRemoveHook registers a removal observer and returns its handle.
func (s *Store) AddRemoveHook(h RemoveHook) HookHandle {
	s.nextHook++
	s.hooks[s.nextHook] = h
	return s.nextHook
}

// RemoveRemoveHook deregisters a previously registered observer.
func (s *Store) RemoveRemoveHook(h HookHandle) {
	delete(s.hooks, h)
}

// Add inserts a directory path into the sequence, keeping order and
// recomputing sibling masks. Missing ancestor entries are created
// first; without them the run after an entry would not be exactly its
// descendants. Adding an existing path is a no-op and returns the
// existing entry.
func (s *Store) Add(p string) *Entry {
	p = normalize(p)
	if e, ok := s.byPath[p]; ok {
		return e
	}
	if parent := parentPath(p); parent != p {
		s.Add(parent)
	}
	e := &Entry{
		Path:  p,
		Name:  leafName(p),
		Depth: pathDepth(p),
	}

	// Find the first entry that sorts after the new path and link in
	// front of it. Interactive index sizes make the linear walk fine.
	at := s.first
	for at != nil && pathLess(at.Path, p) {
		at = at.next
	}
	s.linkBefore(e, at)
	s.byPath[p] = e
	s.recomputeMasks()
	return e
}

// Remove deletes the entry for path together with its contiguous
// descendant run; removing a parent alone would break the ordering
// invariant. Each removed entry is announced to every hook before its
// links are cut. Unknown paths are a no-op.
func (s *Store) Remove(p string) {
	e := s.Lookup(p)
	if e == nil {
		return
	}
	end := e.next
	for end != nil && end.Depth > e.Depth {
		end = end.next
	}
	for cur := e; cur != nil && cur != end; {
		next := cur.next
		s.removeOne(cur)
		cur = next
	}
	s.recomputeMasks()
}

// removeOne fires hooks and unlinks a single entry.
func (s *Store) removeOne(e *Entry) {
	for _, h := range s.hooks {
		h(e)
	}
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.first = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.last = e.prev
	}
	e.prev, e.next = nil, nil
	delete(s.byPath, e.Path)
}

// Rescan refreshes the immediate children of path from the scanner:
// newly appeared directories are inserted, vanished ones are removed
// together with their descendant runs. The entry for path itself is
// created if missing. Scan failures leave the index untouched.
func (s *Store) Rescan(p string) error {
	p = normalize(p)
	names, err := s.scanner.ListDirs(p)
	if err != nil {
		return fmt.Errorf("rescan %s: %w", p, err)
	}
	parent := s.Add(p)

	sort.Strings(names)
	onDisk := make(map[string]bool, len(names))
	for _, name := range names {
		child := joinChild(p, name)
		onDisk[child] = true
		s.Add(child)
	}

	// Collect stale immediate children first; removal invalidates the
	// walk links, and hooks must see a still-linked sequence.
	var stale []string
	for c := parent.next; c != nil && c.Depth > parent.Depth; c = c.next {
		if c.Path == joinChild(p, c.Name) && !onDisk[c.Path] {
			stale = append(stale, c.Path)
		}
	}
	for _, sp := range stale {
		s.Remove(sp)
	}
	return nil
}

// linkBefore inserts e in front of at; a nil at appends at the end.
func (s *Store) linkBefore(e, at *Entry) {
	if at == nil {
		e.prev = s.last
		if s.last != nil {
			s.last.next = e
		} else {
			s.first = e
		}
		s.last = e
		return
	}
	e.next = at
	e.prev = at.prev
	if at.prev != nil {
		at.prev.next = e
	} else {
		s.first = e
	}
	at.prev = e
}

// recomputeMasks rebuilds every SiblingMask with a single backward
// pass. An entry's mask is its successor's mask restricted to the
// entry's own depth, plus the entry's own level bit: bit L survives
// exactly while the subtree chain at level L still continues below.
func (s *Store) recomputeMasks() {
	var carry uint64
	for e := s.last; e != nil; e = e.prev {
		d := e.Depth
		mask := carry
		if d < 63 {
			mask &= (2 << uint(d)) - 1
		}
		mask |= 1 << uint(min(d, 63))
		e.SiblingMask = mask
		carry = mask
	}
}

// normalize cleans a path into the canonical absolute form entries use.
func normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// parentPath returns the parent of a normalized path; the root is its
// own parent.
func parentPath(p string) string {
	return path.Dir(p)
}

// joinChild appends one component below parent.
func joinChild(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}
