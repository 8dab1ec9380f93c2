package cache

import "github.com/rediscache/rcache/store"

// HMSet applies a write-through hash write.
func (c *Core) HMSet(key string, fields map[string]string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		return sh.HSet(key, fields)
	})
}

// HSetIfKeyExist writes fields only if key already exists as a hash.
func (c *Core) HSetIfKeyExist(key string, fields map[string]string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if err := sh.HSetXX(key, fields); err != nil {
			return errKeyNotExist()
		}
		return nil
	})
}

// WriteHashXToCache is the populate-on-read path for hashes.
func (c *Core) WriteHashXToCache(key string, fields map[string]string, ttl int64) error {
	return c.withShard(key, func(sh *store.Shard) error {
		switch resolveTTLAction(ttl) {
		case actionNXWithTTL:
			if !sh.Exists(key) {
				_ = sh.HSet(key, fields)
				_ = sh.Expire(key, ttl)
			}
		case actionNXNoTTL:
			if !sh.Exists(key) {
				_ = sh.HSet(key, fields)
			}
		case actionDel:
			sh.Del(key)
		}
		return nil
	})
}

// HGet reads one field of a cached hash.
func (c *Core) HGet(key, field string) (string, error) {
	var out string
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.HGet(key, field)
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

// HGetall reads every field of a cached hash.
func (c *Core) HGetall(key string) (map[string]string, error) {
	var out map[string]string
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.HGetAll(key)
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

// HDel removes fields from a cached hash write-through.
func (c *Core) HDel(key string, fields []string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		_, err := sh.HDel(key, fields)
		if err != nil {
			return errKeyNotInCache()
		}
		return nil
	})
}

// HLen returns the number of fields in a cached hash.
func (c *Core) HLen(key string) (int, error) {
	var n int
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.HLen(key)
		if err != nil {
			return errKeyNotInCache()
		}
		n = v
		return nil
	})
	return n, err
}

// HExists reports whether a field exists in a cached hash.
func (c *Core) HExists(key, field string) (bool, error) {
	var ok bool
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.HExists(key, field)
		if err != nil {
			return errKeyNotInCache()
		}
		ok = v
		return nil
	})
	return ok, err
}
