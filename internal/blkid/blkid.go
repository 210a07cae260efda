// Package blkid looks up filesystem identity tags (UUID, label, type) for
// a block device by shelling out to blkid(8).
//
// The tag cache underneath blkid is a shared resource: each lookup opens
// its own scoped handle and releases it before returning, and a package
// mutex keeps two concurrent resolutions from interleaving inside the
// acquire/release sequence. Nothing is cached across calls.
package blkid

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/sigreer/volmeta/internal/logger"
)

var mu sync.Mutex

// Tags holds the identity tags reported for one device.
type Tags struct {
	UUID  *string
	Label *string
	Type  *string
}

// Cache is a call-scoped handle to the blkid tag cache. Obtain one with
// Open, use it, and Release it on every exit path. A Cache must not be
// shared across goroutines or kept across calls.
type Cache struct {
	released bool
}

// Open acquires the tag cache.
func Open() (*Cache, error) {
	mu.Lock()
	return &Cache{}, nil
}

// Release gives the tag cache back. Safe to call more than once.
func (c *Cache) Release() {
	if c.released {
		return
	}
	c.released = true
	mu.Unlock()
}

// Tags queries the identity tags for device.
func (c *Cache) Tags(device string) (*Tags, error) {
	if c.released {
		return nil, fmt.Errorf("blkid: cache handle already released")
	}

	out, err := exec.Command("blkid", "-o", "export", device).CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("blkid %s: %w", device, err)
	}

	tags := &Tags{}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		key, val, ok := strings.Cut(line, "=")
		if !ok || val == "" {
			continue
		}
		switch key {
		case "UUID":
			tags.UUID = &val
		case "LABEL":
			tags.Label = &val
		case "TYPE":
			tags.Type = &val
		}
	}

	logger.Debugf("blkid: %s uuid=%v label=%v", device, deref(tags.UUID), deref(tags.Label))
	return tags, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
