package mounts

import (
	"github.com/sigreer/volmeta/internal/config"
	"github.com/sigreer/volmeta/internal/findmnt"
	"github.com/sigreer/volmeta/internal/logger"
	"github.com/sigreer/volmeta/internal/mtab"
)

// listPlatform merges the mount table with the optional findmnt
// enumerator. Both report partially-overlapping sets: findmnt fields win
// on conflict, table entries fill the gaps, and mounts only one source
// knows about are kept.
func listPlatform(opts *config.Options) ([]MountPoint, error) {
	entries, err := mtab.ReadFile(opts.MountTablePaths)
	if err != nil {
		return nil, err
	}

	points := make([]MountPoint, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		index[e.MountPoint] = len(points)
		points = append(points, MountPoint{
			MountPoint: e.MountPoint,
			FSType:     e.FSType,
			Device:     e.Source,
		})
	}

	rich, err := findmnt.List()
	if err != nil {
		// Best-effort enrichment; the mount table alone is authoritative
		// enough for enumeration.
		logger.Debugf("mounts: findmnt unavailable: %v", err)
		return points, nil
	}

	for _, info := range rich {
		if i, ok := index[info.Target]; ok {
			if info.FSType != "" {
				points[i].FSType = info.FSType
			}
			if info.Source != "" {
				points[i].Device = info.Source
			}
			continue
		}
		points = append(points, MountPoint{
			MountPoint: info.Target,
			FSType:     info.FSType,
			Device:     info.Source,
		})
	}

	return points, nil
}
