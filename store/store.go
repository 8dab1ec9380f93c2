// Package store implements the shard contract: a single-shard,
// thread-unsafe in-memory key/value store with native Redis-like types
// (string/hash/list/set/zset), TTLs, and active expiration.
//
// A Shard is not safe for concurrent use — the cache package (component B)
// owns one mutex per shard and never calls into a Shard without holding it.
// This mirrors the teacher's cache/shard.go, generalized from one generic
// map[K]*node to five typed sub-stores sharing a single keyspace.
package store

import (
	"context"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/rediscache/rcache/policy"
)

// bigStringThreshold is the string-value size at or above which a shard stores
// the payload in an off-heap bigcache.BigCache instance instead of inline
// on the Entry.
const bigStringThreshold = 4 * 1024

// Shard is one independent partition of the cache.
type Shard struct {
	data map[string]*Entry
	big  *bigcache.BigCache

	// maxmemory eviction bookkeeping (store/maxmemory.go).
	evPolicy     policy.ShardPolicy[string, *Entry]
	evHooks      evictHooks
	evIndex      map[string]*evictNode
	evHead       *evictNode
	evTail       *evictNode
	evLen        int
	policyKind   string
	maxMemBudget int64
	memUsed      int64
	samples      int

	clock Clock
}

// Clock supplies the current time; overridable in tests.
type Clock interface{ Now() time.Time }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Options configures a new Shard.
type Options struct {
	MaxMemoryBudget int64  // this shard's share of process maxmemory (0 = unbounded)
	MaxMemoryPolicy string // "noeviction" | "allkeys-lru" | "allkeys-lfu" | "allkeys-random"
	MaxMemorySamples int
	Clock           Clock
}

// NewShard constructs an empty shard.
func NewShard(opt Options) *Shard {
	bc, _ := bigcache.New(context.Background(), bigcache.DefaultConfig(10*time.Minute))
	s := &Shard{
		data:         make(map[string]*Entry),
		big:          bc,
		evIndex:      make(map[string]*evictNode),
		policyKind:   opt.MaxMemoryPolicy,
		maxMemBudget: opt.MaxMemoryBudget,
		samples:      opt.MaxMemorySamples,
		clock:        opt.Clock,
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	s.evHooks = evictHooks{s: s}
	s.evPolicy = newPolicy(opt.MaxMemoryPolicy, s.evHooks)
	return s
}

// SetMaxMemoryBudget updates this shard's byte budget and eviction policy
// live, for use by Core.ResetConfig.
func (s *Shard) SetMaxMemoryBudget(budget int64, policyName string, samples int) {
	s.maxMemBudget = budget
	s.samples = samples
	if policyName != s.policyKind {
		s.policyKind = policyName
		s.evPolicy = newPolicy(policyName, s.evHooks)
		s.evIndex = make(map[string]*evictNode)
		s.evHead, s.evTail, s.evLen = nil, nil, 0
	}
	s.enforceMaxMemory()
}

func (s *Shard) now() int64 { return s.clock.Now().UnixNano() }

// lookup returns the live (non-expired) entry for key, lazily evicting it
// if its TTL has passed.
func (s *Shard) lookup(key string) (*Entry, bool) {
	e, ok := s.data[key]
	if !ok {
		return nil, false
	}
	if e.ExpireAt != 0 && s.now() > e.ExpireAt {
		s.deleteTyped(key)
		return nil, false
	}
	return e, true
}

// deleteTyped removes key unconditionally, releasing any bigcache overflow
// and updating memory accounting and eviction bookkeeping.
func (s *Shard) deleteTyped(key string) {
	e, ok := s.data[key]
	if !ok {
		return
	}
	delete(s.data, key)
	if s.big != nil {
		_ = s.big.Delete(key)
	}
	s.memUsed -= e.cost
	if s.memUsed < 0 {
		s.memUsed = 0
	}
	addUsedMemory(-e.cost)
	if n, ok := s.evIndex[key]; ok {
		s.evPolicy.OnRemove(n)
		s.evUnlink(n)
		delete(s.evIndex, key)
	}
}

// putEntry installs e, replacing any prior entry under the same key, and
// runs maxmemory admission/eviction accounting.
func (s *Shard) putEntry(e *Entry, cost int64) {
	if old, ok := s.data[e.Key]; ok {
		s.memUsed -= old.cost
		addUsedMemory(-old.cost)
	}
	e.cost = cost
	s.data[e.Key] = e
	s.memUsed += cost
	addUsedMemory(cost)
	s.evictOnAdmit(e)
}

// ---- generic (non-type-specific) commands ----

// Exists reports whether key is live in this shard.
func (s *Shard) Exists(key string) bool {
	_, ok := s.lookup(key)
	return ok
}

// Del removes key unconditionally, reporting whether it was present.
func (s *Shard) Del(key string) bool {
	if _, ok := s.lookup(key); !ok {
		return false
	}
	s.deleteTyped(key)
	return true
}

// Expire sets a relative TTL (seconds) on an existing key.
func (s *Shard) Expire(key string, ttlSeconds int64) error {
	e, ok := s.lookup(key)
	if !ok {
		return ErrNotFound
	}
	e.ExpireAt = s.now() + ttlSeconds*int64(time.Second)
	return nil
}

// Expireat sets an absolute UnixNano deadline on an existing key.
func (s *Shard) Expireat(key string, atUnixNano int64) error {
	e, ok := s.lookup(key)
	if !ok {
		return ErrNotFound
	}
	e.ExpireAt = atUnixNano
	return nil
}

// TTL returns the remaining seconds until expiry, rounded to the nearest
// second, 0 if the key has no TTL.
func (s *Shard) TTL(key string) (int64, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.ExpireAt == 0 {
		return 0, nil
	}
	remain := (e.ExpireAt - s.now() + int64(time.Second)/2) / int64(time.Second)
	if remain < 0 {
		remain = 0
	}
	return remain, nil
}

// Persist removes any TTL from key.
func (s *Shard) Persist(key string) error {
	e, ok := s.lookup(key)
	if !ok {
		return ErrNotFound
	}
	e.ExpireAt = 0
	return nil
}

// Type returns the Redis type name for key.
func (s *Shard) Type(key string) (string, error) {
	e, ok := s.lookup(key)
	if !ok {
		return "", ErrNotFound
	}
	return e.Typ.String(), nil
}

// RandomKey returns an arbitrary live key, or ErrNotFound if the shard is empty.
// Go's map iteration order is randomized per-run, which is sufficient here.
func (s *Shard) RandomKey() (string, error) {
	for k, e := range s.data {
		if e.ExpireAt != 0 && s.now() > e.ExpireAt {
			continue
		}
		return k, nil
	}
	return "", ErrNotFound
}

// DbSize returns the number of resident keys (including not-yet-lazily-expired ones).
func (s *Shard) DbSize() int64 { return int64(len(s.data)) }

// FlushDb removes every key from the shard.
func (s *Shard) FlushDb() {
	s.data = make(map[string]*Entry)
	if s.big != nil {
		_ = s.big.Reset()
	}
	s.memUsed = 0
	s.evIndex = make(map[string]*evictNode)
	s.evHead, s.evTail, s.evLen = nil, nil, 0
}

// ActiveExpireCycle sweeps the shard for expired keys, removing them.
// Invoked by the cron hook.
func (s *Shard) ActiveExpireCycle() {
	now := s.now()
	var expired []string
	for k, e := range s.data {
		if e.ExpireAt != 0 && now > e.ExpireAt {
			expired = append(expired, k)
		}
	}
	for _, k := range expired {
		s.deleteTyped(k)
	}
}
