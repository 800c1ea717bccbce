package tree

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	s := buildStore(t, "/", "/a", "/a/b", "/a/c", "/d")

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	assert.Equal(t, "/\n/a\n/a/b\n/a/c\n/d\n", buf.String())

	loaded := NewStore()
	require.NoError(t, loaded.Load(&buf))
	assert.Equal(t, paths(s), paths(loaded))
}

func TestLoadSkipsJunkLines(t *testing.T) {
	in := strings.NewReader("/a\n\nnot-a-path\n  \n/b\n# comment\n")
	s := NewStore()
	require.NoError(t, s.Load(in))
	assert.Equal(t, []string{"/", "/a", "/b"}, paths(s))
}

func TestLoadCreatesMissingParents(t *testing.T) {
	// A hand-edited cache may drop a parent line; the loaded sequence
	// still keeps every entry inside its ancestor's run.
	in := strings.NewReader("/a\n/b/c\n")
	s := NewStore()
	require.NoError(t, s.Load(in))
	assert.Equal(t, []string{"/", "/a", "/b", "/b/c"}, paths(s))
}

func TestLoadSortsUnsortedInput(t *testing.T) {
	in := strings.NewReader("/d\n/a/b\n/\n/a\n")
	s := NewStore()
	require.NoError(t, s.Load(in))
	assert.Equal(t, []string{"/", "/a", "/a/b", "/d"}, paths(s))
}

func TestLoadFileMissing(t *testing.T) {
	s := NewStore()
	err := s.LoadFile(filepath.Join(t.TempDir(), "absent"))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Zero(t, s.Len())
}

func TestSaveFileCreatesDirAndWrites(t *testing.T) {
	s := buildStore(t, "/", "/x")
	path := filepath.Join(t.TempDir(), "nested", "dir", "tree")
	require.NoError(t, s.SaveFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/\n/x\n", string(data))

	// No temp file debris next to the cache.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree")
	require.NoError(t, os.WriteFile(path, []byte("/old\n"), 0o644))

	s := buildStore(t, "/new")
	require.NoError(t, s.SaveFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/\n/new\n", string(data))
}
