package mounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigreer/volmeta/internal/config"
)

func testOpts(t *testing.T) *config.Options {
	t.Helper()
	opts := config.Default()
	opts.MaxConcurrency = 2
	return opts
}

func mkMount(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.Mkdir(p, 0o755))
	return p
}

func TestReconcile_DedupesFirstSeen(t *testing.T) {
	dir := t.TempDir()
	data := mkMount(t, dir, "data")

	raw := []MountPoint{
		{MountPoint: data, FSType: "ext4", Device: "/dev/sda1"},
		{MountPoint: data, FSType: "xfs", Device: "/dev/sdb1"},
	}

	got, err := reconcile(raw, testOpts(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ext4", got[0].FSType)
	assert.Equal(t, "/dev/sda1", got[0].Device)
}

func TestReconcile_FiltersSystemVolumes(t *testing.T) {
	dir := t.TempDir()
	data := mkMount(t, dir, "data")
	procish := mkMount(t, dir, "proc")

	raw := []MountPoint{
		{MountPoint: data, FSType: "ext4"},
		{MountPoint: procish, FSType: "proc"},
	}

	opts := testOpts(t)
	got, err := reconcile(raw, opts)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, data, got[0].MountPoint)

	opts.IncludeSystemVolumes = true
	got, err = reconcile(raw, opts)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[1].IsSystemVolume)
}

func TestReconcile_SystemPathPattern(t *testing.T) {
	dir := t.TempDir()
	snapish := mkMount(t, dir, "snapmount")

	opts := testOpts(t)
	opts.SystemPathPatterns = []string{filepath.Join(dir, "snap*")}

	got, err := reconcile([]MountPoint{{MountPoint: snapish, FSType: "ext4"}}, opts)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReconcile_ExclusionGlobs(t *testing.T) {
	dir := t.TempDir()
	scratch := mkMount(t, dir, "scratch1")
	keep := mkMount(t, dir, "keep")

	opts := testOpts(t)
	opts.ExcludedMountPointGlobs = []string{filepath.Join(dir, "scratch*")}

	got, err := reconcile([]MountPoint{
		{MountPoint: scratch, FSType: "ext4"},
		{MountPoint: keep, FSType: "ext4"},
	}, opts)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, keep, got[0].MountPoint)
}

func TestReconcile_DropsUnstattableMounts(t *testing.T) {
	dir := t.TempDir()
	data := mkMount(t, dir, "data")

	got, err := reconcile([]MountPoint{
		{MountPoint: data, FSType: "ext4"},
		{MountPoint: filepath.Join(dir, "vanished"), FSType: "ext4"},
	}, testOpts(t))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, data, got[0].MountPoint)
}

func TestReconcile_BadGlobIsAnError(t *testing.T) {
	opts := testOpts(t)
	opts.ExcludedMountPointGlobs = []string{"[unclosed"}
	_, err := reconcile(nil, opts)
	assert.Error(t, err)
}
