package mounts

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/sigreer/volmeta/internal/config"
)

// listPlatform enumerates via getfsstat, which reports mount point,
// filesystem type, and mount source in one call.
func listPlatform(_ *config.Options) ([]MountPoint, error) {
	n, err := unix.Getfsstat(nil, unix.MNT_NOWAIT)
	if err != nil {
		return nil, fmt.Errorf("getfsstat: %w", err)
	}

	stats := make([]unix.Statfs_t, n)
	n, err = unix.Getfsstat(stats, unix.MNT_NOWAIT)
	if err != nil {
		return nil, fmt.Errorf("getfsstat: %w", err)
	}

	points := make([]MountPoint, 0, n)
	for _, st := range stats[:n] {
		points = append(points, MountPoint{
			MountPoint: unix.ByteSliceToString(st.Mntonname[:]),
			FSType:     unix.ByteSliceToString(st.Fstypename[:]),
			Device:     unix.ByteSliceToString(st.Mntfromname[:]),
		})
	}
	return points, nil
}
