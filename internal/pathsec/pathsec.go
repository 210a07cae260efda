// Package pathsec canonicalizes and security-checks paths before any
// stat-like call touches them. Canonicalization happens before use so a
// symlink swapped in between check and use resolves to nothing we already
// trusted; callers that need to stat and then operate must do both through
// a single open handle.
package pathsec

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sigreer/volmeta/internal/logger"
)

// ErrInvalidPath marks paths rejected before any filesystem access:
// empty strings and paths carrying an embedded NUL byte.
var ErrInvalidPath = errors.New("invalid path")

// ValidateForRead canonicalizes path for a read-side operation.
// The path must exist.
func ValidateForRead(path string) (string, error) {
	return validate(path, false)
}

// ValidateForWrite canonicalizes path for a write-side operation.
// The final component may not exist yet; its parent directory must.
func ValidateForWrite(path string) (string, error) {
	return validate(path, true)
}

func validate(path string, allowNonexistent bool) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("%w: path contains null byte", ErrInvalidPath)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err == nil {
		logger.Debugf("pathsec: canonicalized %q -> %q", path, canonical)
		return canonical, nil
	}

	if allowNonexistent && errors.Is(err, fs.ErrNotExist) {
		// Write-path use case: the target may be created later, but its
		// parent must independently canonicalize.
		parent := filepath.Dir(abs)
		parentCanonical, perr := filepath.EvalSymlinks(parent)
		if perr != nil {
			return "", fmt.Errorf("resolve parent %q: %w", parent, perr)
		}
		result := filepath.Join(parentCanonical, filepath.Base(abs))
		logger.Debugf("pathsec: validated non-existent %q -> %q", path, result)
		return result, nil
	}

	return "", fmt.Errorf("resolve %q: %w", path, err)
}
