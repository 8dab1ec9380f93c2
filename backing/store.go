// Package backing defines the contract the cache layer and reload daemon
// use to reach the authoritative, durable store a cache core fronts.
// The cache never writes through this interface — it is read-only from
// the cache's perspective; writes reach the backing store through some
// other path entirely before the cache is ever told about them.
package backing

import "context"

// ZMember is one (member, score) pair as reported by the backing store.
type ZMember struct {
	Member string
	Score  float64
}

// Store is the authoritative data source a cache core reads from during
// coherence checks and reloads. Every method with an ok result returns the
// same "not found" signal (ok=false, nil error) when the key is simply
// absent; ZRangeFromBegin/ZRangeFromEnd have no ok result and return an
// empty slice instead. A non-nil error means the backing store itself
// failed.
type Store interface {
	// TTL returns the remaining seconds until expiry for key, or 0 if the
	// key has no TTL. ok is false if the key does not exist.
	TTL(ctx context.Context, key string) (ttlSeconds int64, ok bool, err error)

	GetString(ctx context.Context, key string) (value string, ok bool, err error)
	GetHash(ctx context.Context, key string) (fields map[string]string, ok bool, err error)
	GetList(ctx context.Context, key string) (values []string, ok bool, err error)
	GetSet(ctx context.Context, key string) (members []string, ok bool, err error)

	// ZCard returns the authoritative member count of a zset, used as
	// db_len by the coverage-coherence checks.
	ZCard(ctx context.Context, key string) (n int64, ok bool, err error)

	// ZRangeFromBegin/ZRangeFromEnd read at most limit members from the
	// requested end of the authoritative zset, respecting cache_start_pos,
	// for use by the reload daemon.
	ZRangeFromBegin(ctx context.Context, key string, limit int) ([]ZMember, error)
	ZRangeFromEnd(ctx context.Context, key string, limit int) ([]ZMember, error)
}
