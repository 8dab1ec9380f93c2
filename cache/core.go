// Package cache implements the sharded cache core: shard pool and
// routing, the per-datatype command layer, the partial-zset coherence
// protocol, and the cache-core lifecycle and configuration surface.
package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/rediscache/rcache/backing"
	"github.com/rediscache/rcache/log"
	"github.com/rediscache/rcache/reload"
	"github.com/rediscache/rcache/store"
)

// Status is the cache core's lifecycle state.
type Status uint8

const (
	StatusNone Status = iota
	StatusInit
	StatusOK
	StatusReset
	StatusDestroy
)

// Core is one sharded cache, fronting one slot of the backing store.
// The zero value is not usable; construct with New.
type Core struct {
	// rw guards the shard array's identity: Init/Reset/Destroy/ResetConfig
	// take it exclusively; every per-key operation takes it shared.
	rw sync.RWMutex

	status Status

	shards    []*store.Shard
	shardMu   []sync.Mutex
	cfg       Config
	itemsCap  int // cfg.CacheItemsPerKey, inflated by 20%

	backingStore backing.Store
	logger       log.Logger
	daemon       *reload.Daemon
}

var _ reload.Loader = (*Core)(nil)

// New constructs and initializes a Core with cfg. Equivalent to the
// zero-value-plus-Init pattern pika_cache.cc uses, but Go's idiom is a
// single constructor.
func New(cfg Config) (*Core, error) {
	c := &Core{}
	if err := c.Init(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Init (re)builds the shard array under the exclusive lock. Calling Init on
// an already-initialized core is equivalent to Reset.
//
// Stopping a prior daemon happens *before* the exclusive lock is taken:
// Daemon.Stop drains in-flight reload jobs, and a worker mid-job is inside
// Reload -> withShard -> c.rw.RLock() (reload_handlers.go). Holding c.rw
// exclusively while waiting for that RLock to be acquired would deadlock.
func (c *Core) Init(cfg Config) error {
	if cfg.CacheNum <= 0 {
		c.rw.Lock()
		c.status = StatusNone
		c.rw.Unlock()
		return errCorruption("cache_num must be > 0")
	}

	c.rw.Lock()
	oldDaemon := c.daemon
	c.daemon = nil
	c.rw.Unlock()
	if oldDaemon != nil {
		oldDaemon.Stop()
	}

	c.rw.Lock()
	defer c.rw.Unlock()

	c.cfg = cfg
	c.itemsCap = inflatedItemsPerKey(cfg.CacheItemsPerKey)
	c.backingStore = cfg.Store
	c.logger = cfg.Logger
	if c.logger == nil {
		c.logger = nopLogger
	}

	c.status = StatusInit
	c.shards = make([]*store.Shard, cfg.CacheNum)
	c.shardMu = make([]sync.Mutex, cfg.CacheNum)
	budget := int64(0)
	if cfg.MaxMemory > 0 {
		budget = cfg.MaxMemory / int64(cfg.CacheNum)
	}
	for i := range c.shards {
		c.shards[i] = store.NewShard(store.Options{
			MaxMemoryBudget:  budget,
			MaxMemoryPolicy:  cfg.MaxMemoryPolicy,
			MaxMemorySamples: cfg.MaxMemorySamples,
		})
	}

	c.daemon = reload.New(c, c.logger)
	c.daemon.Start()

	c.status = StatusOK
	return nil
}

// Reset is Destroy followed by Init with the same configuration, mirroring
// PikaCache::Reset.
func (c *Core) Reset() error {
	cfg := c.cfg
	if err := c.Destroy(); err != nil {
		return err
	}
	return c.Init(cfg)
}

// Destroy tears the shard array down. Callers must not issue operations
// concurrently with Destroy.
//
// As in Init, the daemon is stopped without holding c.rw exclusively: a
// worker draining the queue needs c.rw.RLock() to finish its in-flight
// Reload, and holding the writer across that Stop() call would deadlock.
// Marking the status StatusDestroy before releasing the lock still blocks
// any new per-key op from starting once the daemon detaches.
func (c *Core) Destroy() error {
	c.rw.Lock()
	c.status = StatusDestroy
	d := c.daemon
	c.daemon = nil
	c.rw.Unlock()

	if d != nil {
		d.Stop()
	}

	c.rw.Lock()
	c.shards = nil
	c.shardMu = nil
	c.status = StatusNone
	c.rw.Unlock()
	return nil
}

// ResetConfig rebinds cache_start_pos and cache_items_per_key live, and
// propagates maxmemory tunables to every shard.
func (c *Core) ResetConfig(cfg Config) error {
	c.rw.Lock()
	defer c.rw.Unlock()
	c.cfg.CacheStartPos = cfg.CacheStartPos
	c.cfg.CacheItemsPerKey = cfg.CacheItemsPerKey
	c.itemsCap = inflatedItemsPerKey(cfg.CacheItemsPerKey)
	c.cfg.MaxMemory = cfg.MaxMemory
	c.cfg.MaxMemoryPolicy = cfg.MaxMemoryPolicy
	c.cfg.MaxMemorySamples = cfg.MaxMemorySamples

	budget := int64(0)
	if cfg.MaxMemory > 0 && len(c.shards) > 0 {
		budget = cfg.MaxMemory / int64(len(c.shards))
	}
	for _, sh := range c.shards {
		sh.SetMaxMemoryBudget(budget, cfg.MaxMemoryPolicy, cfg.MaxMemorySamples)
	}
	return nil
}

// Info is a point-in-time snapshot of the cache core's counters, exposed
// to the cache manager and to the Prometheus collector adapter.
type Info struct {
	Status              Status
	KeysNum             int64
	UsedMemory          int64
	Hits                int64
	Misses              int64
	AsyncLoadKeysNum    int64
	WaittingLoadKeysNum int64
}

// Info iterates every shard under the exclusive rwlock, alongside
// Init/Reset/Destroy/ResetConfig, since it reads every shard's DbSize()
// without taking that shard's mutex — safe only because the exclusive
// lock already excludes every per-key op that would otherwise mutate a
// shard's map concurrently.
func (c *Core) Info() Info {
	c.rw.Lock()
	defer c.rw.Unlock()

	var keys int64
	for _, sh := range c.shards {
		keys += sh.DbSize()
	}
	hits, misses := store.GetHitAndMissNum()
	info := Info{
		Status:     c.status,
		KeysNum:    keys,
		UsedMemory: store.GetUsedMemory(),
		Hits:       hits,
		Misses:     misses,
	}
	if c.daemon != nil {
		info.AsyncLoadKeysNum = c.daemon.AsyncLoadKeysNum()
		info.WaittingLoadKeysNum = c.daemon.WaittingLoadKeysNum()
	}
	return info
}

// HitRatio returns hits/(hits+misses), 0 if there have been no lookups yet.
func (c *Core) HitRatio() float64 {
	hits, misses := store.GetHitAndMissNum()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// ClearHitRatio resets the process-wide hit/miss counters.
func (c *Core) ClearHitRatio() { store.ResetHitAndMissNum() }

// ProcessCronTask sweeps every shard for expired keys. Runs on the
// manager's cron thread, concurrently with request threads, so
// each shard's ActiveExpireCycle (which mutates the shard's map) still
// needs that shard's mutex even though the sweep itself only needs the
// core rwlock shared.
func (c *Core) ProcessCronTask() {
	c.rw.RLock()
	defer c.rw.RUnlock()
	for i, sh := range c.shards {
		c.shardMu[i].Lock()
		sh.ActiveExpireCycle()
		c.shardMu[i].Unlock()
	}
}

// shardFor returns the shard and its mutex for key, already routed via
// CacheIndex. Callers must hold c.rw (RLock) and then lock the returned
// mutex before touching the shard.
func (c *Core) shardFor(key string) (*store.Shard, *sync.Mutex) {
	i := CacheIndex(key, len(c.shards))
	return c.shards[i], &c.shardMu[i]
}

// withShard runs fn under the core rwlock (shared) and the owning shard's
// mutex, the pattern every per-key operation in this package follows
// (lock order: core rwlock -> shard mutex).
func (c *Core) withShard(key string, fn func(*store.Shard) error) error {
	c.rw.RLock()
	defer c.rw.RUnlock()
	if c.status != StatusOK {
		return errCorruption("cache core not initialized")
	}
	sh, mu := c.shardFor(key)
	mu.Lock()
	defer mu.Unlock()
	return fn(sh)
}

// enqueueReload pushes a reload job for key onto the daemon, never
// waiting for a reload to run: Enqueue only takes the daemon's short
// internal admission and queue locks.
func (c *Core) enqueueReload(typ reload.KeyType, key string) {
	if c.daemon == nil {
		return
	}
	c.daemon.Enqueue(reload.Job{Type: typ, Key: key})
}

// Reload implements reload.Loader: it is called by the daemon's worker
// goroutine, outside any shard mutex, to read the authoritative value and
// write it back in under that shard's mutex.
func (c *Core) Reload(ctx context.Context, job reload.Job) error {
	if c.backingStore == nil {
		return fmt.Errorf("cache: no backing store configured")
	}
	switch job.Type {
	case reload.KeyString:
		return c.reloadString(ctx, job.Key)
	case reload.KeyHash:
		return c.reloadHash(ctx, job.Key)
	case reload.KeyList:
		return c.reloadList(ctx, job.Key)
	case reload.KeySet:
		return c.reloadSet(ctx, job.Key)
	case reload.KeyZSet:
		return c.reloadZSet(ctx, job.Key)
	default:
		return fmt.Errorf("cache: unknown key type %v", job.Type)
	}
}
