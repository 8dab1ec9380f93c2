package cache

import (
	"hash/crc32"

	"github.com/rediscache/rcache/internal/util"
)

// CacheIndex routes a key to a shard: CacheIndex(key) = CRC32(key) mod N,
// matching pika_cache.cc's routing rule verbatim — this is not a place to
// substitute the pack's xxhash. The modulo itself goes through
// util.ShardIndex, which takes the bitmask fast path whenever
// n is a power of two and falls back to plain modulo otherwise, so a
// cache_num like the teacher's recommended 64 or 256 avoids the division.
func CacheIndex(key string, n int) int {
	if n <= 0 {
		return 0
	}
	return util.ShardIndex(uint64(crc32.ChecksumIEEE([]byte(key))), n)
}

// RecommendedShardCount exposes util.ReasonableShardCount for callers that
// want a CacheNum sized to the process's GOMAXPROCS instead of a fixed
// constant, mirroring the teacher's sharded-LRU sizing heuristic.
func RecommendedShardCount() int { return util.ReasonableShardCount() }
