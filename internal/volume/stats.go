package volume

import (
	"fmt"
	"math"
)

// computeStats turns raw block counts into byte totals with every
// multiplication overflow-checked first. An overflow is fatal for the
// volume, never a silent wraparound.
func computeStats(blockSize, blocks, bfree, bavail uint64) (Stats, error) {
	if wouldOverflow(blockSize, blocks) {
		return Stats{}, fmt.Errorf("%w: total size", ErrOverflow)
	}
	if wouldOverflow(blockSize, bavail) {
		return Stats{}, fmt.Errorf("%w: available space", ErrOverflow)
	}
	if wouldOverflow(blockSize, bfree) {
		return Stats{}, fmt.Errorf("%w: free space", ErrOverflow)
	}

	size := blockSize * blocks
	available := blockSize * bavail
	free := blockSize * bfree

	// Some filesystems report free > total for privileged reservations;
	// clamp so used and available stay order-consistent with size.
	if free > size {
		free = size
	}
	used := size - free
	if available > size {
		available = size
	}
	if used > size-available {
		used = size - available
	}

	return Stats{Size: size, Used: used, Available: available}, nil
}

func wouldOverflow(a, b uint64) bool {
	return b > 0 && a > math.MaxUint64/b
}
