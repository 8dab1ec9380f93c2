package cache

import "github.com/rediscache/rcache/backing"

// BackingStore aliases backing.Store so cache.Config can name it directly.
type BackingStore = backing.Store

// StartPos selects which end of a sorted set the cache retains a bounded
// window of.
type StartPos uint8

const (
	// FromBegin retains the lowest-scoring members.
	FromBegin StartPos = iota
	// FromEnd retains the highest-scoring members.
	FromEnd
)

func (p StartPos) String() string {
	if p == FromEnd {
		return "from_end"
	}
	return "from_begin"
}

// cacheSizeInflation matches pika_cache.cc's EXTEND_CACHE_SIZE macro: the
// configured per-key item cap is inflated by 20% internally to absorb
// churn between mutation and the next size-cap pass.
const cacheSizeInflation = 1.2

// Config carries the cache core's tunables.
type Config struct {
	CacheNum         int
	CacheStartPos    StartPos
	CacheItemsPerKey int

	MaxMemory        int64
	MaxMemoryPolicy  string // "noeviction" | "allkeys-lru" | "allkeys-lfu" | "allkeys-random"
	MaxMemorySamples int

	Logger Logger
	Store  BackingStore
}

func inflatedItemsPerKey(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(float64(n) * cacheSizeInflation)
	if v < n {
		v = n
	}
	return v
}
