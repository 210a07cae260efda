package pathsec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateForRead_RejectsEmpty(t *testing.T) {
	_, err := ValidateForRead("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestValidateForRead_RejectsNullByte(t *testing.T) {
	_, err := ValidateForRead("/tmp/evil\x00path")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestValidateForRead_ResolvesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	got, err := ValidateForRead(link)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidateForRead_MissingPathFails(t *testing.T) {
	_, err := ValidateForRead(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestValidateForWrite_MissingLeafUsesParent(t *testing.T) {
	dir := t.TempDir()
	got, err := ValidateForWrite(filepath.Join(dir, "newfile"))
	require.NoError(t, err)

	parent, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "newfile"), got)
}

func TestValidateForWrite_MissingParentFails(t *testing.T) {
	dir := t.TempDir()
	_, err := ValidateForWrite(filepath.Join(dir, "missing", "newfile"))
	assert.Error(t, err)
}

func TestValidateForRead_CleansRelativeSegments(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	got, err := ValidateForRead(sub + "/../sub")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(sub)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
