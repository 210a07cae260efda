//go:build linux || darwin

package volume

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// sysError wraps a failed primitive query with the operation name, the
// path involved, and the OS error (errno number and strerror text).
func sysError(op, path string, err error) error {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return fmt.Errorf("%s %s: %w (errno %d)", op, path, errno, int(errno))
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}
