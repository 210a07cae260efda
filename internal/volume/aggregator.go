package volume

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/sigreer/volmeta/internal/config"
	"github.com/sigreer/volmeta/internal/logger"
	"github.com/sigreer/volmeta/internal/mounts"
)

// ListAll enumerates the mount points resolution would cover.
func (r *Resolver) ListAll() ([]mounts.MountPoint, error) {
	return r.list(r.opts)
}

// ResolveAll resolves every enumerated mount point concurrently. A
// per-mount failure never aborts the batch: it becomes a record with
// OK=false and a status message. Only a failure to enumerate mount
// points at all returns an error, so callers can tell a degraded
// environment from one with no eligible volumes. Result order is not
// dispatch order; every element is keyed by its mount point.
func (r *Resolver) ResolveAll(ctx context.Context) ([]Metadata, error) {
	points, err := r.list(r.opts)
	if err != nil {
		return nil, fmt.Errorf("enumerating mount points: %w", err)
	}

	maxWorkers := r.opts.MaxConcurrency
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	// A zero-valued Options must not arm an already-expired timer.
	timeoutMs := r.opts.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = config.Default().TimeoutMs
	}
	timeout := time.Duration(timeoutMs) * time.Millisecond

	results := make([]Metadata, len(points))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, p := range points {
		wg.Add(1)
		go func(idx int, p mounts.MountPoint) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = r.resolveBounded(ctx, p, timeout)
		}(i, p)
	}

	wg.Wait()
	return results, nil
}

// resolveBounded races one resolution against the deadline. The query
// work itself is not cancelable mid-flight: on timeout we stop waiting
// and report a timeout failure, while the abandoned call runs to
// completion and its result is discarded.
func (r *Resolver) resolveBounded(ctx context.Context, p mounts.MountPoint, timeout time.Duration) Metadata {
	type outcome struct {
		meta *Metadata
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		meta, err := r.Resolve(p.MountPoint, p.Device)
		done <- outcome{meta, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case o := <-done:
		if o.err != nil {
			return Metadata{MountPoint: p.MountPoint, Status: o.err.Error()}
		}
		return *o.meta
	case <-timer.C:
		logger.Warnf("volume: %s timed out after %s", p.MountPoint, timeout)
		return Metadata{MountPoint: p.MountPoint, Status: fmt.Sprintf("timeout after %s", timeout)}
	case <-ctx.Done():
		return Metadata{MountPoint: p.MountPoint, Status: ctx.Err().Error()}
	}
}
