package store

import (
	"sync/atomic"

	"github.com/rediscache/rcache/internal/util"
)

// Process-wide counters, shared by every Shard instance in the process.
// Modeled as a package-level singleton rather than per-shard state, since
// process-wide counters on a type should not expose a constructor that
// gets invoked per shard. Readers snapshot them without locking.
//
// hits/misses are bumped on every single Get across every shard, so they
// sit on their own cache line (util.PaddedAtomicInt64) to keep one shard's
// hit traffic from bouncing the line a neighboring shard's miss traffic
// just wrote.
//
// maxmemory/maxmemory_policy/maxmemory_samples are NOT mirrored here:
// cache.Core computes each shard's byte budget directly from its own
// Config (MaxMemory / CacheNum) and calls Shard.SetMaxMemoryBudget with
// it, so a second process-wide copy of the same tunables would just be
// unread state.
var (
	hits       util.PaddedAtomicInt64
	misses     util.PaddedAtomicInt64
	usedMemory atomic.Int64
)

// RecordHit increments the process-wide hit counter.
func RecordHit() { hits.Add(1) }

// RecordMiss increments the process-wide miss counter.
func RecordMiss() { misses.Add(1) }

// GetHitAndMissNum snapshots the process-wide hit/miss counters.
func GetHitAndMissNum() (hitCount, missCount int64) {
	return hits.Load(), misses.Load()
}

// ResetHitAndMissNum zeroes the process-wide hit/miss counters.
func ResetHitAndMissNum() {
	hits.Store(0)
	misses.Store(0)
}

// GetUsedMemory returns the process-wide approximate resident byte count
// across every shard (updated incrementally by the per-type mutators).
func GetUsedMemory() int64 { return usedMemory.Load() }

func addUsedMemory(delta int64) {
	if delta == 0 {
		return
	}
	usedMemory.Add(delta)
}
