package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"/a", "/a/b", true},
		{"/a/b", "/ab", true},
		{"/a", "/ab", true},
		{"/a", "/a", false},
		{"/ab", "/a/b", false},
		{"/a/b", "/a", false},
		{"/", "/a", true},
		{"/a/b/c", "/a/c", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, pathLess(c.a, c.b), "%s < %s", c.a, c.b)
	}
}

func TestPathDepthAndLeafName(t *testing.T) {
	assert.Equal(t, 0, pathDepth("/"))
	assert.Equal(t, 1, pathDepth("/usr"))
	assert.Equal(t, 3, pathDepth("/usr/local/bin"))

	assert.Equal(t, "/", leafName("/"))
	assert.Equal(t, "bin", leafName("/usr/local/bin"))
}

func TestSameParent(t *testing.T) {
	assert.True(t, SameParent("/a/b", "/a/c"))
	assert.False(t, SameParent("/a/b", "/x/c"))
	assert.True(t, SameParent("/a", "/b"))

	// Raw byte comparison: the parent prefix test does not require a
	// separator boundary in the other path.
	assert.True(t, SameParent("/a/b", "/ax"))
	assert.False(t, SameParent("/usr/local", "/us"))
}

func TestHasPathPrefix(t *testing.T) {
	assert.True(t, HasPathPrefix("/a/b", "/a"))
	assert.True(t, HasPathPrefix("/a", "/a"))
	assert.False(t, HasPathPrefix("/a", "/a/b"))

	// Byte prefix, not component prefix.
	assert.True(t, HasPathPrefix("/ab", "/a"))
}
