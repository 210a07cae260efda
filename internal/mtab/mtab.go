// Package mtab parses and formats mtab/fstab-style mount tables.
//
// The format is the classic six-field line: source, mount point, fs type,
// comma-separated options, dump frequency, fsck pass. Fields containing
// whitespace or control characters are written with the fixed-width octal
// escapes getmntent uses (a literal space is "\040"). Parse never fails:
// comments, blank lines, and lines with fewer than four fields are dropped.
package mtab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sigreer/volmeta/internal/logger"
)

// Entry is one parsed mount-table line.
type Entry struct {
	Source     string   `json:"source"`
	MountPoint string   `json:"mountPoint"`
	FSType     string   `json:"fsType"`
	Options    []string `json:"options"`
	Freq       int      `json:"dumpFreq"`
	PassNo     int      `json:"fsckPass"`
}

// Parse reads a mount table. Malformed lines are skipped, never fatal.
func Parse(r io.Reader) []Entry {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			logger.Debugf("mtab: skipping short line %q", line)
			continue
		}

		entry := Entry{
			Source:     Unescape(fields[0]),
			MountPoint: trimTrailingSlash(Unescape(fields[1])),
			FSType:     Unescape(fields[2]),
			Options:    strings.Split(Unescape(fields[3]), ","),
		}
		if len(fields) > 4 {
			entry.Freq, _ = strconv.Atoi(fields[4])
		}
		if len(fields) > 5 {
			entry.PassNo, _ = strconv.Atoi(fields[5])
		}
		// Extra trailing fields are ignored.

		entries = append(entries, entry)
	}

	return entries
}

// Format renders entries back into mount-table text. For entries produced
// by Parse the output parses back to the same entries.
func Format(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%d\t%d\n",
			Escape(e.Source),
			Escape(e.MountPoint),
			Escape(e.FSType),
			Escape(strings.Join(e.Options, ",")),
			e.Freq,
			e.PassNo,
		)
	}
	return b.String()
}

// ReadFile parses the first readable path from the ordered candidates.
// All candidates are attempted before giving up.
func ReadFile(paths []string) ([]Entry, error) {
	var firstErr error
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("open mount table %s: %w", p, err)
			}
			continue
		}
		entries := Parse(f)
		f.Close()
		logger.Debugf("mtab: read %d entries from %s", len(entries), p)
		return entries, nil
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("no mount table paths configured")
	}
	return nil, firstErr
}

// trimTrailingSlash strips exactly one trailing slash unless the mount
// point is the root.
func trimTrailingSlash(p string) string {
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		return p[:len(p)-1]
	}
	return p
}

// Unescape decodes the getmntent octal convention: any 3-digit octal
// escape, e.g. "\040" for space, "\011" tab, "\134" backslash. Malformed
// escapes are kept as-is.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			v := (s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0')
			b.WriteByte(v)
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Escape is the exact inverse of Unescape. Every byte that would break
// field tokenization is encoded: all whitespace and control characters
// (anything below 0x21, plus DEL), and the backslash itself.
func Escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x21 || c == 0x7f || c == '\\' {
			fmt.Fprintf(&b, "\\%03o", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
