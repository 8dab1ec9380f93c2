package cache

import (
	"github.com/rediscache/rcache/store"
)

// Set applies a write-through string write: the backing store has already
// accepted it, so the cache writes unconditionally.
func (c *Core) Set(key, value string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		sh.SetString(key, value)
		return nil
	})
}

// Setxx writes key only if it already exists as a string.
func (c *Core) Setxx(key, value string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if err := sh.SetStringXX(key, value); err != nil {
			return errKeyNotExist()
		}
		return nil
	})
}

// WriteStringXToCache is the populate-on-read path for strings:
// ttl>0 -> nx-write with TTL, ttl==TTLNone -> nx-write with no TTL,
// otherwise -> Del. Used by the command dispatcher after a backing-store
// read and by the reload daemon.
func (c *Core) WriteStringXToCache(key, value string, ttl int64) error {
	return c.withShard(key, func(sh *store.Shard) error {
		switch resolveTTLAction(ttl) {
		case actionNXWithTTL:
			if sh.SetStringNX(key, value) {
				_ = sh.Expire(key, ttl)
			}
		case actionNXNoTTL:
			sh.SetStringNX(key, value)
		case actionDel:
			sh.Del(key)
		}
		return nil
	})
}

// Get reads a cached string. A miss returns NotFound("key not in cache");
// the caller falls through to the backing store.
func (c *Core) Get(key string) (string, error) {
	var out string
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.GetString(key)
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

// MGet reads several string keys, returning values keyed by the keys
// actually resident in cache — the caller falls through to the backing
// store for the rest. Each key still goes through its own shard mutex;
// this is not a cross-shard atomic batch.
func (c *Core) MGet(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, err := c.Get(k); err == nil {
			out[k] = v
		}
	}
	return out
}

// MSet writes several string keys write-through.
func (c *Core) MSet(kv map[string]string) error {
	for k, v := range kv {
		if err := c.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// GetRange returns a substring of a cached string value.
func (c *Core) GetRange(key string, start, end int) (string, error) {
	var out string
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.GetRange(key, start, end)
		if err != nil {
			return errKeyNotInCache()
		}
		out = v
		return nil
	})
	return out, err
}

// SetRangexx is not a native shard primitive (there is no partial
// overwrite-in-place here); emulate it as read-modify-write under the
// shard's own xx guard.
func (c *Core) SetRangexx(key string, offset int, value string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		cur, err := sh.GetString(key)
		if err != nil {
			return errKeyNotExist()
		}
		buf := []byte(cur)
		need := offset + len(value)
		if need > len(buf) {
			grown := make([]byte, need)
			copy(grown, buf)
			buf = grown
		}
		copy(buf[offset:], value)
		sh.SetString(key, string(buf))
		return nil
	})
}

// Strlen returns the length of a cached string value.
func (c *Core) Strlen(key string) (int, error) {
	var n int
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.Strlen(key)
		if err != nil {
			return errKeyNotInCache()
		}
		n = v
		return nil
	})
	return n, err
}

// Appendxx appends to an existing string key only.
func (c *Core) Appendxx(key, value string) (int, error) {
	var n int
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.AppendXX(key, value)
		if err != nil {
			return errKeyNotExist()
		}
		n = v
		return nil
	})
	return n, err
}

// Incrbyfloatxx applies a float delta to an existing numeric string key only.
func (c *Core) Incrbyfloatxx(key string, delta float64) (float64, error) {
	var n float64
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.IncrbyfloatXX(key, delta)
		if err != nil {
			return errKeyNotExist()
		}
		n = v
		return nil
	})
	return n, err
}
