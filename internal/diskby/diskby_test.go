package diskby

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLinkNameTargeting(t *testing.T) {
	dir := t.TempDir()
	devDir := filepath.Join(dir, "dev")
	byUUID := filepath.Join(dir, "by-uuid")
	require.NoError(t, os.Mkdir(devDir, 0o755))
	require.NoError(t, os.Mkdir(byUUID, 0o755))

	sda1 := filepath.Join(devDir, "sda1")
	require.NoError(t, os.WriteFile(sda1, nil, 0o644))
	require.NoError(t, os.Symlink("../dev/sda1", filepath.Join(byUUID, "ABC-123")))

	name, ok := FindLinkNameTargeting(byUUID, sda1)
	require.True(t, ok)
	assert.Equal(t, "ABC-123", name)
}

func TestFindLinkNameTargeting_NoMatch(t *testing.T) {
	dir := t.TempDir()
	byLabel := filepath.Join(dir, "by-label")
	require.NoError(t, os.Mkdir(byLabel, 0o755))

	_, ok := FindLinkNameTargeting(byLabel, filepath.Join(dir, "sdb1"))
	assert.False(t, ok)
}

func TestFindLinkNameTargeting_SkipsBrokenLinks(t *testing.T) {
	dir := t.TempDir()
	devDir := filepath.Join(dir, "dev")
	byUUID := filepath.Join(dir, "by-uuid")
	require.NoError(t, os.Mkdir(devDir, 0o755))
	require.NoError(t, os.Mkdir(byUUID, 0o755))

	sda1 := filepath.Join(devDir, "sda1")
	require.NoError(t, os.WriteFile(sda1, nil, 0o644))
	require.NoError(t, os.Symlink("../dev/gone", filepath.Join(byUUID, "DEAD-0000")))
	require.NoError(t, os.Symlink("../dev/sda1", filepath.Join(byUUID, "ABC-123")))

	name, ok := FindLinkNameTargeting(byUUID, sda1)
	require.True(t, ok)
	assert.Equal(t, "ABC-123", name)
}

func TestFindLinkNameTargeting_MissingDir(t *testing.T) {
	_, ok := FindLinkNameTargeting(filepath.Join(t.TempDir(), "absent"), "/dev/sda1")
	assert.False(t, ok)
}

func TestDecodeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ABC-123", "ABC-123"},
		{`My\x20Label`, "My Label"},
		{`Media\x20\x28backup\x29`, "Media (backup)"},
		{`Octal\040Label`, "Octal Label"},
		{`trailing\`, `trailing\`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeName(tt.in), "input %q", tt.in)
	}
}
