package cache

import "github.com/rediscache/rcache/store"

// Generic (non-type-specific) key commands, forwarded one-for-one to the
// owning shard. These supplement the cache-core surface alongside the
// per-type command files, which otherwise focus on zsets.

func (c *Core) Exists(key string) bool {
	var ok bool
	_ = c.withShard(key, func(sh *store.Shard) error {
		ok = sh.Exists(key)
		return nil
	})
	return ok
}

func (c *Core) Del(key string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if !sh.Del(key) {
			return errKeyNotInCache()
		}
		return nil
	})
}

func (c *Core) Expire(key string, ttlSeconds int64) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if err := sh.Expire(key, ttlSeconds); err != nil {
			return errKeyNotInCache()
		}
		return nil
	})
}

func (c *Core) Expireat(key string, atUnixNano int64) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if err := sh.Expireat(key, atUnixNano); err != nil {
			return errKeyNotInCache()
		}
		return nil
	})
}

func (c *Core) TTL(key string) (int64, error) {
	var ttl int64
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.TTL(key)
		if err != nil {
			return errKeyNotInCache()
		}
		ttl = v
		return nil
	})
	return ttl, err
}

func (c *Core) Persist(key string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if err := sh.Persist(key); err != nil {
			return errKeyNotInCache()
		}
		return nil
	})
}

func (c *Core) Type(key string) (string, error) {
	var typ string
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.Type(key)
		if err != nil {
			return errKeyNotInCache()
		}
		typ = v
		return nil
	})
	return typ, err
}

// RandomKey returns an arbitrary live key from an arbitrary shard. Unlike
// every other per-key operation, this one must pick its own shard rather
// than routing by key.
func (c *Core) RandomKey() (string, error) {
	c.rw.RLock()
	defer c.rw.RUnlock()
	if c.status != StatusOK {
		return "", errCorruption("cache core not initialized")
	}
	for i := range c.shards {
		c.shardMu[i].Lock()
		k, err := c.shards[i].RandomKey()
		c.shardMu[i].Unlock()
		if err == nil {
			return k, nil
		}
	}
	return "", errKeyNotInCache()
}

// DbSize sums the key count across every shard.
func (c *Core) DbSize() int64 {
	c.rw.RLock()
	defer c.rw.RUnlock()
	var n int64
	for i := range c.shards {
		c.shardMu[i].Lock()
		n += c.shards[i].DbSize()
		c.shardMu[i].Unlock()
	}
	return n
}

// FlushDb clears every shard.
func (c *Core) FlushDb() {
	c.rw.RLock()
	defer c.rw.RUnlock()
	for i := range c.shards {
		c.shardMu[i].Lock()
		c.shards[i].FlushDb()
		c.shardMu[i].Unlock()
	}
}
