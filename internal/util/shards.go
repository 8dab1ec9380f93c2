package util

import "runtime"

// ReasonableShardCount picks a practical default CacheNum based on CPU
// parallelism, for callers that don't want to hardcode a shard count in
// their cache.Config. Heuristic: nextPow2(2*GOMAXPROCS), clamped to
// [1..256]. This sharply reduces per-shard lock contention without
// bloating memory overhead across the shard pool.
func ReasonableShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	// 2×CPU, round up to power of two, then clamp to 256.
	n := int(NextPow2(uint64(p * 2)))
	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}
	return n
}

// ShardIndex maps a 64-bit hash to a shard index. cache.CacheIndex calls
// this with the CRC32(key) checksum, so the modulo-N result is identical
// either way; only the division is skipped when shards is a power of two.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	// Fast path if shard count is power of two.
	if IsPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}
