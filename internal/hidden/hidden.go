// Package hidden gets and sets the hidden state of filesystem paths.
// On this platform hidden means a leading-dot basename; setting the
// state renames the entry, so the final path can differ from the input.
package hidden

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sigreer/volmeta/internal/logger"
	"github.com/sigreer/volmeta/internal/pathsec"
)

// IsHidden reports whether the path itself is hidden. Root paths are
// never hidden.
func IsHidden(path string) (bool, error) {
	canonical, err := pathsec.ValidateForRead(path)
	if err != nil {
		return false, err
	}
	return hiddenName(canonical), nil
}

// IsHiddenRecursive reports whether the path or any ancestor below the
// filesystem root is hidden.
func IsHiddenRecursive(path string) (bool, error) {
	canonical, err := pathsec.ValidateForRead(path)
	if err != nil {
		return false, err
	}
	for p := canonical; !isRoot(p); p = filepath.Dir(p) {
		if hiddenName(p) {
			return true, nil
		}
	}
	return false, nil
}

// SetHidden sets or clears the hidden state and returns the path the
// entry ends up at. Setting the already-present state is a no-op.
func SetHidden(path string, hidden bool) (string, error) {
	canonical, err := pathsec.ValidateForRead(path)
	if err != nil {
		return "", err
	}
	if isRoot(canonical) {
		return "", fmt.Errorf("set hidden %s: cannot hide a root path", canonical)
	}
	if hiddenName(canonical) == hidden {
		return canonical, nil
	}

	base := filepath.Base(canonical)
	if hidden {
		base = "." + base
	} else {
		base = strings.TrimPrefix(base, ".")
	}
	final := filepath.Join(filepath.Dir(canonical), base)

	if _, err := os.Lstat(final); err == nil {
		return "", fmt.Errorf("set hidden %s: %s already exists", canonical, final)
	}
	if err := os.Rename(canonical, final); err != nil {
		return "", fmt.Errorf("set hidden %s: %w", canonical, err)
	}
	logger.Debugf("hidden: renamed %s -> %s", canonical, final)
	return final, nil
}

func hiddenName(path string) bool {
	if isRoot(path) {
		return false
	}
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

func isRoot(path string) bool {
	return path == filepath.Dir(path)
}
