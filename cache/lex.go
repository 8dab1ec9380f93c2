package cache

import "github.com/rediscache/rcache/store"

// Lex-range commands can only be answered from cache when it holds the
// entire authoritative zset; any partial window answers NotFound("key
// not in cache") rather than risk a wrong subset.

func (c *Core) ZRangebylex(key, min, max string, minExcl, maxExcl, wholeSet bool, dbLen int) ([]string, error) {
	var out []string
	err := c.withShard(key, func(sh *store.Shard) error {
		zs, zerr := sh.ZGet(key)
		if zerr != nil || !wholeSet || zs.Card() != dbLen {
			store.RecordMiss()
			return errKeyNotInCache()
		}
		store.RecordHit()
		out = zs.RangeByLex(min, max, minExcl, maxExcl)
		return nil
	})
	return out, err
}

func (c *Core) ZRevrangebylex(key, min, max string, minExcl, maxExcl, wholeSet bool, dbLen int) ([]string, error) {
	out, err := c.ZRangebylex(key, min, max, minExcl, maxExcl, wholeSet, dbLen)
	if err != nil {
		return nil, err
	}
	rev := make([]string, len(out))
	for i, m := range out {
		rev[len(out)-1-i] = m
	}
	return rev, nil
}

func (c *Core) ZLexcount(key, min, max string, minExcl, maxExcl, wholeSet bool, dbLen int) (int, error) {
	out, err := c.ZRangebylex(key, min, max, minExcl, maxExcl, wholeSet, dbLen)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

func (c *Core) ZRemrangebylex(key, min, max string, minExcl, maxExcl, wholeSet bool, dbLen int) (int, error) {
	var removed int
	err := c.withShard(key, func(sh *store.Shard) error {
		zs, zerr := sh.ZGet(key)
		if zerr != nil || !wholeSet || zs.Card() != dbLen {
			return errKeyNotInCache()
		}
		members := zs.RangeByLex(min, max, minExcl, maxExcl)
		n, err := sh.ZRem(key, members)
		if err != nil {
			return errKeyNotInCache()
		}
		removed = n
		return nil
	})
	return removed, err
}
