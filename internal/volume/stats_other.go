//go:build !linux && !darwin

package volume

import "github.com/sigreer/volmeta/internal/mounts"

func queryStats(string) (Stats, error) {
	return Stats{}, mounts.ErrUnsupported
}
