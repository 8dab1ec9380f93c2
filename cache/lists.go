package cache

import "github.com/rediscache/rcache/store"

// lists are cached only as a whole (the bounded-window coverage protocol
// is zset-specific); a list key in cache is either the entire authoritative
// list or absent. Pushes/trims below are write-through; the command
// dispatcher is responsible for invalidating on anything it can't prove is
// still the whole list.

// RPush applies a write-through list push.
func (c *Core) RPush(key string, values []string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if err := sh.RPushXX(key, values); err != nil {
			return errKeyNotInCache()
		}
		return nil
	})
}

// LPush applies a write-through list push.
func (c *Core) LPush(key string, values []string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if err := sh.LPushXX(key, values); err != nil {
			return errKeyNotInCache()
		}
		return nil
	})
}

// WriteListXToCache is the populate-on-read path for lists.
func (c *Core) WriteListXToCache(key string, values []string, ttl int64) error {
	return c.withShard(key, func(sh *store.Shard) error {
		switch resolveTTLAction(ttl) {
		case actionNXWithTTL:
			if !sh.Exists(key) {
				_ = sh.RPush(key, values)
				_ = sh.Expire(key, ttl)
			}
		case actionNXNoTTL:
			if !sh.Exists(key) {
				_ = sh.RPush(key, values)
			}
		case actionDel:
			sh.Del(key)
		}
		return nil
	})
}

// LRange reads a cached list range.
func (c *Core) LRange(key string, start, stop int) ([]string, error) {
	var out []string
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.LRange(key, start, stop)
		if err != nil {
			store.RecordMiss()
			return errKeyNotInCache()
		}
		store.RecordHit()
		out = v
		return nil
	})
	return out, err
}

// LTrim applies a write-through trim.
func (c *Core) LTrim(key string, start, stop int) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if err := sh.LTrim(key, start, stop); err != nil {
			return errKeyNotInCache()
		}
		return nil
	})
}

// LLen returns the length of a cached list.
func (c *Core) LLen(key string) (int, error) {
	var n int
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.LLen(key)
		if err != nil {
			return errKeyNotInCache()
		}
		n = v
		return nil
	})
	return n, err
}
