package volume

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigreer/volmeta/internal/config"
	"github.com/sigreer/volmeta/internal/mounts"
)

func aggregatorFixture(t *testing.T, n int) (*Resolver, []mounts.MountPoint) {
	t.Helper()
	r := testResolver(t)

	points := make([]mounts.MountPoint, n)
	for i := range points {
		mp := filepath.Join(t.TempDir(), "vol")
		require.NoError(t, os.Mkdir(mp, 0o755))
		points[i] = mounts.MountPoint{MountPoint: mp, FSType: "ext4"}
	}
	r.list = func(*config.Options) ([]mounts.MountPoint, error) { return points, nil }
	return r, points
}

func TestResolveAll_AllSucceed(t *testing.T) {
	r, points := aggregatorFixture(t, 5)

	got, err := r.ResolveAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, len(points))
	for i, meta := range got {
		assert.True(t, meta.OK)
		// Slots line up with the enumeration order.
		assert.Equal(t, points[i].MountPoint, meta.MountPoint)
	}
}

func TestResolveAll_PartialFailureIsolated(t *testing.T) {
	r, points := aggregatorFixture(t, 4)
	bad := points[2].MountPoint
	r.stats = func(canonical string) (Stats, error) {
		if canonical == bad {
			return Stats{}, errors.New("fstatfs failed")
		}
		return Stats{Size: 100, Used: 10, Available: 80}, nil
	}

	got, err := r.ResolveAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4, "one failure must not shrink the result set")

	for i, meta := range got {
		if i == 2 {
			assert.False(t, meta.OK)
			assert.Equal(t, bad, meta.MountPoint)
			assert.Contains(t, meta.Status, "fstatfs failed")
			continue
		}
		assert.True(t, meta.OK)
	}
}

func TestResolveAll_EnumerationFailureSurfaces(t *testing.T) {
	r := testResolver(t)
	r.list = func(*config.Options) ([]mounts.MountPoint, error) {
		return nil, errors.New("no mount table")
	}

	got, err := r.ResolveAll(context.Background())
	require.Error(t, err, "an unenumerable system is not an empty one")
	assert.Contains(t, err.Error(), "no mount table")
	assert.Nil(t, got)
}

func TestResolveAll_ZeroTimeoutUsesDefault(t *testing.T) {
	r, points := aggregatorFixture(t, 2)
	r.opts = &config.Options{MaxConcurrency: 2}
	r.list = func(*config.Options) ([]mounts.MountPoint, error) { return points, nil }

	got, err := r.ResolveAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, meta := range got {
		assert.True(t, meta.OK)
		assert.NotContains(t, meta.Status, "timeout")
	}
}

func TestResolveAll_Timeout(t *testing.T) {
	r, points := aggregatorFixture(t, 2)
	r.opts.TimeoutMs = 50
	slow := points[0].MountPoint
	r.stats = func(canonical string) (Stats, error) {
		if canonical == slow {
			time.Sleep(2 * time.Second)
		}
		return Stats{Size: 100, Used: 10, Available: 80}, nil
	}

	start := time.Now()
	got, err := r.ResolveAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.False(t, got[0].OK)
	assert.Contains(t, got[0].Status, "timeout")
	assert.True(t, got[1].OK)
	assert.Less(t, time.Since(start), time.Second, "timed-out slot must not stall the batch")
}

func TestResolveAll_ContextCanceled(t *testing.T) {
	r, _ := aggregatorFixture(t, 2)
	started := make(chan struct{}, 2)
	r.stats = func(string) (Stats, error) {
		started <- struct{}{}
		time.Sleep(2 * time.Second)
		return Stats{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	got, err := r.ResolveAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, meta := range got {
		assert.False(t, meta.OK)
	}
}

func TestResolveAll_BoundedConcurrency(t *testing.T) {
	r, _ := aggregatorFixture(t, 8)
	r.opts.MaxConcurrency = 2

	var mu chan struct{} = make(chan struct{}, 2)
	r.stats = func(string) (Stats, error) {
		select {
		case mu <- struct{}{}:
		default:
			t.Error("more than two resolutions in flight")
		}
		time.Sleep(10 * time.Millisecond)
		<-mu
		return Stats{Size: 100, Used: 10, Available: 80}, nil
	}

	got, err := r.ResolveAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 8)
}

func TestListAll(t *testing.T) {
	r, points := aggregatorFixture(t, 3)
	got, err := r.ListAll()
	require.NoError(t, err)
	assert.Equal(t, points, got)
}
