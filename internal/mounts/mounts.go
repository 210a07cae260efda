// Package mounts enumerates candidate mount points from the configured
// sources, merges them, and filters them per policy. Enumeration is
// recomputed on every call; nothing here is persisted.
package mounts

import (
	"errors"
	"fmt"
	"os"

	"github.com/gobwas/glob"
	"github.com/sigreer/volmeta/internal/config"
	"github.com/sigreer/volmeta/internal/logger"
)

// ErrUnsupported is returned on platforms without an enumeration source.
var ErrUnsupported = errors.New("mount enumeration not supported on this platform")

// MountPoint is one enumerated mount.
type MountPoint struct {
	MountPoint     string `json:"mountPoint"`
	FSType         string `json:"fstype"`
	IsSystemVolume bool   `json:"isSystemVolume"`
	Status         string `json:"status,omitempty"`

	// Device is the mount source, carried along as the identity-lookup
	// hint for resolution. Not part of the reported shape.
	Device string `json:"-"`
}

// List enumerates, merges, classifies, and filters mount points.
func List(opts *config.Options) ([]MountPoint, error) {
	raw, err := listPlatform(opts)
	if err != nil {
		return nil, err
	}
	return reconcile(raw, opts)
}

// reconcile dedupes, classifies, and filters the merged enumeration.
func reconcile(raw []MountPoint, opts *config.Options) ([]MountPoint, error) {
	cls, err := newClassifier(opts)
	if err != nil {
		return nil, err
	}

	var out []MountPoint
	seen := make(map[string]bool)
	for _, mp := range raw {
		if mp.MountPoint == "" || seen[mp.MountPoint] {
			// First-seen wins across overlapping sources.
			continue
		}
		seen[mp.MountPoint] = true

		if cls.excluded(mp.MountPoint) {
			logger.Debugf("mounts: %s excluded by glob", mp.MountPoint)
			continue
		}

		mp.IsSystemVolume = cls.isSystem(mp.MountPoint, mp.FSType)
		if mp.IsSystemVolume && !opts.IncludeSystemVolumes {
			continue
		}

		// Enumeration establishes existence, not accessibility: a mount
		// point the caller cannot stat is dropped, not reported broken.
		if _, err := os.Stat(mp.MountPoint); err != nil {
			logger.Debugf("mounts: %s unreadable, dropped: %v", mp.MountPoint, err)
			continue
		}

		out = append(out, mp)
	}

	return out, nil
}

type classifier struct {
	fsTypes      map[string]bool
	pathPatterns []glob.Glob
	exclusions   []glob.Glob
}

func newClassifier(opts *config.Options) (*classifier, error) {
	c := &classifier{fsTypes: make(map[string]bool)}
	for _, t := range opts.SystemFSTypes {
		c.fsTypes[t] = true
	}
	for _, p := range opts.SystemPathPatterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("system path pattern %q: %w", p, err)
		}
		c.pathPatterns = append(c.pathPatterns, g)
	}
	for _, p := range opts.ExcludedMountPointGlobs {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("excluded mount point glob %q: %w", p, err)
		}
		c.exclusions = append(c.exclusions, g)
	}
	return c, nil
}

func (c *classifier) isSystem(mountPoint, fsType string) bool {
	if c.fsTypes[fsType] {
		return true
	}
	for _, g := range c.pathPatterns {
		if g.Match(mountPoint) {
			return true
		}
	}
	return false
}

func (c *classifier) excluded(mountPoint string) bool {
	for _, g := range c.exclusions {
		if g.Match(mountPoint) {
			return true
		}
	}
	return false
}
