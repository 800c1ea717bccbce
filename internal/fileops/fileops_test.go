package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirWithFile(t *testing.T, dir string) string {
	t.Helper()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "inner"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "inner", "f.txt"), []byte("x"), 0o644))
	return src
}

func TestCopyReplicatesTree(t *testing.T) {
	dir := t.TempDir()
	src := mkdirWithFile(t, dir)
	dest := filepath.Join(dir, "dest")
	require.NoError(t, os.Mkdir(dest, 0o755))

	require.NoError(t, OS{}.Copy(src, dest))

	// The copy lands under dest as a child, the same shape Move makes.
	data, err := os.ReadFile(filepath.Join(dest, "src", "inner", "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
	assert.DirExists(t, src)
}

func TestCopyRejectsMissingDestination(t *testing.T) {
	dir := t.TempDir()
	src := mkdirWithFile(t, dir)

	err := OS{}.Copy(src, filepath.Join(dir, "absent"))
	var oe *OperationError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "copy", oe.Op)
}

func TestCopyRejectsFileDestination(t *testing.T) {
	dir := t.TempDir()
	src := mkdirWithFile(t, dir)
	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.Error(t, OS{}.Copy(src, file))
}

func TestMoveRenamesIntoDestination(t *testing.T) {
	dir := t.TempDir()
	src := mkdirWithFile(t, dir)
	dest := filepath.Join(dir, "dest")
	require.NoError(t, os.Mkdir(dest, 0o755))

	require.NoError(t, OS{}.Move(src, dest))
	assert.NoDirExists(t, src)
	assert.FileExists(t, filepath.Join(dest, "src", "inner", "f.txt"))
}

func TestDeleteRemovesTree(t *testing.T) {
	dir := t.TempDir()
	src := mkdirWithFile(t, dir)

	require.NoError(t, OS{}.Delete(src))
	assert.NoDirExists(t, src)
}

func TestDeleteMissingIsNoError(t *testing.T) {
	assert.NoError(t, OS{}.Delete(filepath.Join(t.TempDir(), "absent")))
}

func TestJoinBase(t *testing.T) {
	assert.Equal(t, "/dest/src", joinBase("/dest", "/tmp/src"))
	assert.Equal(t, "/src", joinBase("/", "/tmp/src"))
}

func TestOperationErrorUnwrap(t *testing.T) {
	err := OS{}.Chdir(filepath.Join(t.TempDir(), "absent"))
	var oe *OperationError
	require.ErrorAs(t, err, &oe)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
