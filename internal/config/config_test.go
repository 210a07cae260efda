package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	opts := Default()
	assert.Equal(t, 5000, opts.TimeoutMs)
	assert.False(t, opts.IncludeSystemVolumes)
	assert.Contains(t, opts.MountTablePaths, "/proc/self/mounts")
	assert.Contains(t, opts.SystemFSTypes, "proc")
}

func TestLoad_FileOverridesAndFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"timeout_ms: 250\n"+
			"include_system_volumes: true\n"+
			"excluded_mount_point_globs:\n"+
			"  - \"/mnt/scratch*\"\n"), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, opts.TimeoutMs)
	assert.True(t, opts.IncludeSystemVolumes)
	assert.Equal(t, []string{"/mnt/scratch*"}, opts.ExcludedMountPointGlobs)
	// Unset fields come from the defaults.
	assert.NotEmpty(t, opts.MountTablePaths)
	assert.Greater(t, opts.MaxConcurrency, 0)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout_ms: [not a number\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5000, opts.TimeoutMs)
}
