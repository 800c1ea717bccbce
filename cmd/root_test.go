package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dirtree/internal/tree"
)

func dumpStore(t *testing.T) *tree.Store {
	t.Helper()
	s := tree.NewStore()
	for _, p := range []string{"/", "/a", "/a/b", "/d"} {
		s.Add(p)
	}
	return s
}

func TestDumpTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, dumpStore(t), "tree", "", ""))
	assert.Equal(t, "/\n ├─ a\n │  └─ b\n └─ d\n", buf.String())
}

func TestDumpPaths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, dumpStore(t), "paths", "", ""))
	assert.Equal(t, "/\n/a\n/a/b\n/d\n", buf.String())
}

func TestDumpPathsFiltered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, dumpStore(t), "paths", `depth == 1`, ""))
	assert.Equal(t, "/a\n/d\n", buf.String())
}

func TestDumpRestrictedToSubtree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, dumpStore(t), "paths", "", "/a"))
	assert.Equal(t, "/a\n/a/b\n", buf.String())

	// "/a" must not drag in "/ab"-style near-matches.
	s := dumpStore(t)
	s.Add("/ab")
	buf.Reset()
	require.NoError(t, dump(&buf, s, "paths", "", "/a"))
	assert.Equal(t, "/a\n/a/b\n", buf.String())
}

func TestDumpJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, dumpStore(t), "json", "", ""))

	var doc dumpDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Entries, 4)
	assert.Equal(t, dumpEntry{Path: "/a/b", Name: "b", Depth: 2}, doc.Entries[2])
}

func TestDumpYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, dumpStore(t), "yaml", "", ""))

	var doc dumpDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Entries, 4)
}

func TestDumpTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, dumpStore(t), "toml", "", ""))
	assert.Contains(t, buf.String(), "[[entries]]")
	assert.Contains(t, buf.String(), "/a/b")
}

func TestDumpUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := dump(&buf, dumpStore(t), "xml", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestDumpBadFilter(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, dump(&buf, dumpStore(t), "paths", `depth +`, ""))
}

func TestCompileFilterEmpty(t *testing.T) {
	pred, err := compileFilter("")
	require.NoError(t, err)
	assert.Nil(t, pred)
}

func TestSeedIndexIndexesAncestors(t *testing.T) {
	base := t.TempDir()
	sub := filepath.Join(base, "one", "two")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	store := tree.NewStore()
	seedIndex(store, sub)

	assert.NotNil(t, store.Lookup("/"))
	assert.NotNil(t, store.Lookup(filepath.ToSlash(base)))
	assert.NotNil(t, store.Lookup(filepath.ToSlash(sub)))
}

func TestSeedIndexScansChildren(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "kid"), 0o755))

	store := tree.NewStore()
	seedIndex(store, base)
	assert.NotNil(t, store.Lookup(filepath.ToSlash(filepath.Join(base, "kid"))))
}

func TestSaveIndexWritesCache(t *testing.T) {
	var stderr bytes.Buffer
	c := &cobra.Command{}
	c.SetErr(&stderr)

	path := filepath.Join(t.TempDir(), "cache", "tree")
	saveIndex(c, dumpStore(t), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/\n/a\n/a/b\n/d\n", string(data))
	assert.Empty(t, stderr.String())
}

func TestSaveIndexReportsFailureToStderr(t *testing.T) {
	var stderr bytes.Buffer
	c := &cobra.Command{}
	c.SetErr(&stderr)

	// A file where a directory is needed makes the save fail.
	blocker := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	saveIndex(c, dumpStore(t), filepath.Join(blocker, "tree"))

	assert.Contains(t, stderr.String(), "save tree cache")
}

func TestRunParamsDefaults(t *testing.T) {
	flagCache, flagPath = "", ""
	params := runParams()
	assert.NotEmpty(t, params.CachePath)
	assert.NotEmpty(t, params.StartPath)
	assert.True(t, params.PrintSelection)
}
