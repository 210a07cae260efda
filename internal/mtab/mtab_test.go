package mtab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BasicLine(t *testing.T) {
	entries := Parse(strings.NewReader("/dev/sda1\t/\text4\trw,relatime\t0\t1"))
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "/dev/sda1", e.Source)
	assert.Equal(t, "/", e.MountPoint)
	assert.Equal(t, "ext4", e.FSType)
	assert.Equal(t, []string{"rw", "relatime"}, e.Options)
	assert.Equal(t, 0, e.Freq)
	assert.Equal(t, 1, e.PassNo)
}

func TestFormat_RoundTripsExactLine(t *testing.T) {
	line := "/dev/sda1\t/\text4\trw,relatime\t0\t1\n"
	entries := Parse(strings.NewReader(line))
	assert.Equal(t, line, Format(entries))
}

func TestParse_OctalEscapedMountPoint(t *testing.T) {
	entries := Parse(strings.NewReader(`/dev/sdb1 /with\040space ext4 rw 0 0`))
	require.Len(t, entries, 1)
	assert.Equal(t, "/with space", entries[0].MountPoint)
}

func TestParseFormat_RoundTripLaw(t *testing.T) {
	input := strings.Join([]string{
		"# a comment",
		"",
		"/dev/sda1 / ext4 rw,relatime 0 1",
		`/dev/sdb1 /mnt/with\040space ext4 rw 0 2`,
		"nfs-server:/export /mnt/nfs nfs4 rw,vers=4.2 0 0",
		"tmpfs /run tmpfs rw,nosuid,nodev extra ignored",
		"short line skipped",
	}, "\n")

	first := Parse(strings.NewReader(input))
	second := Parse(strings.NewReader(Format(first)))
	assert.Equal(t, first, second)
}

func TestParseFormat_RoundTripsControlCharacters(t *testing.T) {
	// A carriage return inside a field must come back out escaped, or
	// re-parsing splits the field and shifts everything after it.
	entries := Parse(strings.NewReader(`/dev/a\015b /mnt ext4 rw 0 0`))
	require.Len(t, entries, 1)
	assert.Equal(t, "/dev/a\rb", entries[0].Source)

	again := Parse(strings.NewReader(Format(entries)))
	require.Len(t, again, 1)
	assert.Equal(t, entries[0], again[0])
}

func TestEscape_WhitespaceAndControlBytes(t *testing.T) {
	for _, c := range []byte{'\r', '\v', '\f', 0x00, 0x1f, 0x7f} {
		escaped := Escape(string(c))
		assert.Equal(t, 4, len(escaped), "byte %#02x must become a fixed-width escape", c)
		assert.Equal(t, string(c), Unescape(escaped))
	}
}

func TestParse_DefaultsAndSkips(t *testing.T) {
	entries := Parse(strings.NewReader(strings.Join([]string{
		"proc /proc proc defaults",
		"bad line here",
		"# comment",
	}, "\n")))
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Freq)
	assert.Equal(t, 0, entries[0].PassNo)
}

func TestParse_StripsOneTrailingSlash(t *testing.T) {
	entries := Parse(strings.NewReader(strings.Join([]string{
		"/dev/sda1 /mnt/data/ ext4 rw 0 0",
		"/dev/sda2 / ext4 rw 0 0",
	}, "\n")))
	require.Len(t, entries, 2)
	assert.Equal(t, "/mnt/data", entries[0].MountPoint)
	assert.Equal(t, "/", entries[1].MountPoint)
}

func TestEscapeUnescape_Inverse(t *testing.T) {
	for _, s := range []string{
		"/plain/path",
		"/with space",
		"/with\ttab",
		`/with\backslash`,
		"/mixed space\tand\\more",
	} {
		assert.Equal(t, s, Unescape(Escape(s)), "value %q", s)
	}
}

func TestReadFile_FirstReadableWins(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "mounts")
	require.NoError(t, os.WriteFile(good, []byte("/dev/sda1 / ext4 rw 0 1\n"), 0o644))

	entries, err := ReadFile([]string{filepath.Join(dir, "missing"), good})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/", entries[0].MountPoint)
}

func TestReadFile_AllCandidatesFail(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadFile([]string{filepath.Join(dir, "a"), filepath.Join(dir, "b")})
	assert.Error(t, err)
}
