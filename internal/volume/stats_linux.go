package volume

import (
	"golang.org/x/sys/unix"

	"github.com/sigreer/volmeta/internal/logger"
)

// queryStats opens the canonicalized mount point once and runs fstatvfs
// on the handle, not the path string: the fd pins the filesystem so the
// mount cannot be swapped out between validation and query.
func queryStats(canonical string) (Stats, error) {
	fd, err := unix.Open(canonical, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return Stats{}, sysError("open", canonical, err)
	}
	defer unix.Close(fd)

	var vfs unix.Statfs_t
	if err := unix.Fstatfs(fd, &vfs); err != nil {
		return Stats{}, sysError("fstatfs", canonical, err)
	}

	blockSize := uint64(vfs.Frsize)
	if vfs.Frsize <= 0 {
		blockSize = uint64(vfs.Bsize)
	}

	st, err := computeStats(blockSize, vfs.Blocks, vfs.Bfree, vfs.Bavail)
	if err != nil {
		return Stats{}, err
	}
	logger.Debugf("volume: %s size=%d available=%d", canonical, st.Size, st.Available)
	return st, nil
}
