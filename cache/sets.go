package cache

import "github.com/rediscache/rcache/store"

// SAddIfKeyExist writes members only if key already exists as a set —
// sets, like lists, are cached whole-or-nothing.
func (c *Core) SAddIfKeyExist(key string, members []string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if _, err := sh.SAddXX(key, members); err != nil {
			return errKeyNotExist()
		}
		return nil
	})
}

// WriteSetXToCache is the populate-on-read path for sets.
func (c *Core) WriteSetXToCache(key string, members []string, ttl int64) error {
	return c.withShard(key, func(sh *store.Shard) error {
		switch resolveTTLAction(ttl) {
		case actionNXWithTTL:
			if !sh.Exists(key) {
				_, _ = sh.SAdd(key, members)
				_ = sh.Expire(key, ttl)
			}
		case actionNXNoTTL:
			if !sh.Exists(key) {
				_, _ = sh.SAdd(key, members)
			}
		case actionDel:
			sh.Del(key)
		}
		return nil
	})
}

// SMembers reads every member of a cached set.
func (c *Core) SMembers(key string) ([]string, error) {
	var out []string
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.SMembers(key)
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

// SIsmember reports membership in a cached set.
func (c *Core) SIsmember(key, member string) (bool, error) {
	var ok bool
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.SIsMember(key, member)
		if err != nil {
			return errKeyNotInCache()
		}
		ok = v
		return nil
	})
	return ok, err
}

// SCard returns the number of members in a cached set.
func (c *Core) SCard(key string) (int, error) {
	var n int
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.SCard(key)
		if err != nil {
			return errKeyNotInCache()
		}
		n = v
		return nil
	})
	return n, err
}

// SRem removes members from a cached set write-through.
func (c *Core) SRem(key string, members []string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if _, err := sh.SRem(key, members); err != nil {
			return errKeyNotInCache()
		}
		return nil
	})
}
