// Package diskby recovers volume identity from /dev/disk/by-* style
// symlink directories when the tag lookup comes back empty.
package diskby

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sigreer/volmeta/internal/logger"
)

// Well-known symlink directories, keyed by the identity they encode.
const (
	ByUUIDDir  = "/dev/disk/by-uuid"
	ByLabelDir = "/dev/disk/by-label"
)

// FindLinkNameTargeting walks the symlinks in dir and returns the decoded
// name of the first link whose resolved target equals target. Unreadable
// or broken links are skipped. The second return is false when no link
// matches; that is an answer, not an error.
func FindLinkNameTargeting(dir, target string) (string, bool) {
	canonical, err := filepath.EvalSymlinks(target)
	if err != nil {
		canonical = filepath.Clean(target)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		resolved, err := filepath.EvalSymlinks(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		if resolved == canonical {
			name := DecodeName(entry.Name())
			logger.Debugf("diskby: %s/%s -> %s", dir, entry.Name(), canonical)
			return name, true
		}
	}

	return "", false
}

// DecodeName reverses the escape encodings udev applies to link names:
// "\xNN" hex escapes and the fstab-style 3-digit octal "\NNN" form, both
// used for spaces, parentheses, and other shell-hostile characters.
func DecodeName(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && s[i+1] == 'x' && isHex(s[i+2]) && isHex(s[i+3]) {
			b.WriteByte(hexVal(s[i+2])<<4 | hexVal(s[i+3]))
			i += 3
			continue
		}
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isOctal(c byte) bool { return c >= '0' && c <= '7' }

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}
