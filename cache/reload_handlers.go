package cache

import (
	"context"

	"github.com/rediscache/rcache/backing"
	"github.com/rediscache/rcache/store"
)

// reload* read the authoritative value from the backing store, respecting
// cache_start_pos and cache_items_per_key for collections, then populate
// the shard via the WriteXToCache family with the backing store's
// reported TTL.

func (c *Core) reloadString(ctx context.Context, key string) error {
	v, ok, err := c.backingStore.GetString(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	ttl := c.backingTTL(ctx, key)
	return c.WriteStringXToCache(key, v, ttl)
}

func (c *Core) reloadHash(ctx context.Context, key string) error {
	v, ok, err := c.backingStore.GetHash(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	ttl := c.backingTTL(ctx, key)
	return c.WriteHashXToCache(key, v, ttl)
}

func (c *Core) reloadList(ctx context.Context, key string) error {
	v, ok, err := c.backingStore.GetList(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	ttl := c.backingTTL(ctx, key)
	return c.WriteListXToCache(key, v, ttl)
}

func (c *Core) reloadSet(ctx context.Context, key string) error {
	v, ok, err := c.backingStore.GetSet(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	ttl := c.backingTTL(ctx, key)
	return c.WriteSetXToCache(key, v, ttl)
}

// reloadZSet reads at most itemsCap members from the configured end of
// the authoritative zset, respecting cache_start_pos.
func (c *Core) reloadZSet(ctx context.Context, key string) error {
	var bz []backing.ZMember
	var err error
	if c.cfg.CacheStartPos == FromBegin {
		bz, err = c.backingStore.ZRangeFromBegin(ctx, key, c.itemsCap)
	} else {
		bz, err = c.backingStore.ZRangeFromEnd(ctx, key, c.itemsCap)
	}
	if err != nil {
		return err
	}
	if len(bz) == 0 {
		return nil
	}
	raw := make([]store.ScoreMember, len(bz))
	for i, z := range bz {
		raw[i] = store.ScoreMember{Member: z.Member, Score: z.Score}
	}

	ttl := c.backingTTL(ctx, key)
	return c.withShard(key, func(sh *store.Shard) error {
		switch resolveTTLAction(ttl) {
		case actionNXWithTTL:
			if !sh.Exists(key) {
				if _, err := sh.ZAdd(key, raw); err != nil {
					return errKeyNotInCache()
				}
				_ = sh.Expire(key, ttl)
			}
		case actionNXNoTTL:
			if !sh.Exists(key) {
				if _, err := sh.ZAdd(key, raw); err != nil {
					return errKeyNotInCache()
				}
			}
		case actionDel:
			sh.Del(key)
		}
		return nil
	})
}

// backingTTL looks up key's TTL in the backing store, returning TTLNone if
// the key has no expiry or the lookup failed (best-effort: a reload should
// not fail outright just because TTL inspection did).
func (c *Core) backingTTL(ctx context.Context, key string) int64 {
	ttl, ok, err := c.backingStore.TTL(ctx, key)
	if err != nil || !ok || ttl == 0 {
		return TTLNone
	}
	return ttl
}
