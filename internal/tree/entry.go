// Package tree holds the ordered directory index: a flat sequence of
// directory entries encoding the hierarchy through depth and ordering.
// The sequence maintains the contiguous-children invariant: every
// entry's descendants occupy an unbroken run immediately after it.
package tree

import "strings"

// Separator is the path separator used for depth and prefix arithmetic.
// Paths in the index are always absolute, slash-separated and cleaned.
const Separator = '/'

// Entry is a single directory in the index. Entries are owned by a
// Store and linked into its sequence; navigation code holds non-owning
// references into that sequence.
type Entry struct {
	// Path is the absolute, cleaned directory path. Unique per Store.
	Path string
	// Name is the last path component ("/" for the root entry).
	Name string
	// Depth is the number of separators from the root ("/" is 0).
	Depth int
	// SiblingMask has bit L set when a further sibling subtree follows
	// this entry at ancestor level L. Used only for connector glyphs.
	SiblingMask uint64

	prev, next *Entry
}

// Next returns the following entry in sequence order, or nil at the end.
func (e *Entry) Next() *Entry { return e.next }

// Prev returns the preceding entry in sequence order, or nil at the start.
func (e *Entry) Prev() *Entry { return e.prev }

// IsRoot reports whether the entry is the filesystem root.
func (e *Entry) IsRoot() bool { return e.Path == "/" }

// pathDepth counts separators from the root; "/" is depth 0.
func pathDepth(path string) int {
	if path == "/" {
		return 0
	}
	return strings.Count(path, "/")
}

// leafName extracts the last path component; "/" maps to itself.
func leafName(path string) string {
	i := strings.LastIndexByte(path, byte(Separator))
	if i < 0 || i == len(path)-1 {
		return path
	}
	return path[i+1:]
}

// parentPrefixLen returns the byte length of the parent portion of
// path, i.e. the index of the last separator. The hierarchical
// traversal compares raw path bytes up to this point, exactly as the
// entries are stored; behavior for paths that are not cleaned absolute
// paths is deliberately left to the byte comparison.
func parentPrefixLen(path string) int {
	i := strings.LastIndexByte(path, byte(Separator))
	if i < 0 {
		return 0
	}
	return i
}

// SameParent reports whether a and b share an effective parent: their
// raw bytes agree up to a's last separator. For cleaned absolute paths
// of equal depth this is exactly sibling-ness.
func SameParent(a, b string) bool {
	j := parentPrefixLen(a)
	return len(b) >= j && a[:j] == b[:j]
}

// HasPathPrefix reports whether prefix's raw bytes lead path. The
// hierarchical traversal uses this for ancestor and immediate-child
// containment tests.
func HasPathPrefix(path, prefix string) bool {
	return isPathPrefix(prefix, path)
}

// pathLess orders paths so that every directory sorts immediately
// before its descendants and descendant runs stay contiguous.
// Components are compared bytewise; a proper ancestor sorts first.
func pathLess(a, b string) bool {
	if a == b {
		return false
	}
	for {
		ca, ra := nextComponent(a)
		cb, rb := nextComponent(b)
		switch {
		case ca == "" && cb == "":
			return false
		case ca == "":
			// a is a proper ancestor of b
			return true
		case cb == "":
			return false
		case ca != cb:
			return ca < cb
		}
		a, b = ra, rb
	}
}

// nextComponent splits off the leading path component, skipping the
// leading separator. Returns ("", "") when the path is exhausted.
func nextComponent(p string) (string, string) {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "", ""
	}
	if i := strings.IndexByte(p, byte(Separator)); i >= 0 {
		return p[:i], p[i:]
	}
	return p, ""
}

// isPathPrefix reports whether anc's path bytes are a prefix of path.
// This is the raw comparison the hierarchical strategy relies on; it
// does not insert a separator check beyond what the stored bytes give.
func isPathPrefix(anc, path string) bool {
	return len(anc) <= len(path) && path[:len(anc)] == anc
}
