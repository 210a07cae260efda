//go:build !linux && !darwin

package mounts

import "github.com/sigreer/volmeta/internal/config"

func listPlatform(_ *config.Options) ([]MountPoint, error) {
	return nil, ErrUnsupported
}
