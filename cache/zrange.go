package cache

import (
	"github.com/rediscache/rcache/reload"
	"github.com/rediscache/rcache/store"
)

// RangeResult is the three-way outcome of a coverage check.
type RangeResult uint8

const (
	RangeHit RangeResult = iota
	RangeMiss
	RangeError
)

// normalizeIndexRange applies Redis's negative-index-from-end convention
// to [start, stop] against length n, clamping into [0, n). ok is false if
// the normalized range is empty or reversed.
func normalizeIndexRange(start, stop, n int) (ns, ne int, ok bool) {
	if n == 0 {
		return 0, 0, false
	}
	if start < 0 {
		start = n + start
	}
	if stop < 0 {
		stop = n + stop
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n || stop < 0 {
		return 0, 0, false
	}
	return start, stop, true
}

// CheckCacheRange is the index-range coverage predicate for forward
// ZRange queries. Indices are given in the caller's raw (possibly negative) form; dbLen is
// the authoritative member count and cacheLen the currently cached window
// size. On RangeHit, cacheStart/cacheStop are already translated into
// cache-local coordinates.
func CheckCacheRange(cacheLen, dbLen, start, stop int, pos StartPos) (result RangeResult, cacheStart, cacheStop int) {
	outStart, outStop, ok := normalizeIndexRange(start, stop, dbLen)
	if !ok {
		return RangeError, 0, 0
	}
	if pos == FromBegin {
		if outStop < cacheLen {
			return RangeHit, outStart, outStop
		}
		return RangeMiss, 0, 0
	}
	// FromEnd: cached window is [dbLen-cacheLen, dbLen).
	offset := dbLen - cacheLen
	if outStart >= offset {
		return RangeHit, outStart - offset, outStop - offset
	}
	return RangeMiss, 0, 0
}

// CheckCacheRevRange is the reverse-index coverage predicate: requests are
// expressed counting from the highest-scoring member (reverse rank 0),
// converted to forward indices, checked the same way as CheckCacheRange,
// then translated back to reverse-cache coordinates.
//
// fwdStart/fwdStop are clamped directly into [0, dbLen-1] here, matching
// pika_cache.cc:1181-1182's start_index/stop_index clamp, rather than
// handed to CheckCacheRange: that function's normalizeIndexRange would
// reinterpret a still-negative fwdStart as a from-end index a second time,
// which is wrong since fwdStart/fwdStop are already forward indices.
func CheckCacheRevRange(cacheLen, dbLen, start, stop int, pos StartPos) (result RangeResult, cacheStart, cacheStop int) {
	if dbLen == 0 {
		return RangeError, 0, 0
	}
	if start < 0 {
		start = dbLen + start
	}
	if stop < 0 {
		stop = dbLen + stop
	}
	fwdStart := dbLen - stop - 1
	fwdStop := dbLen - start - 1
	if fwdStart < 0 {
		fwdStart = 0
	} else if fwdStart >= dbLen {
		fwdStart = dbLen - 1
	}
	if fwdStop < 0 {
		fwdStop = 0
	} else if fwdStop >= dbLen {
		fwdStop = dbLen - 1
	}
	if fwdStart > fwdStop {
		return RangeError, 0, 0
	}
	res, fCacheStart, fCacheStop := CheckCacheRange(cacheLen, dbLen, fwdStart, fwdStop, pos)
	if res != RangeHit {
		return res, 0, 0
	}
	return RangeHit, cacheLen - fCacheStop - 1, cacheLen - fCacheStart - 1
}

// CheckCacheRangeByScore is the score-range coverage predicate.
// cacheLen/itemsCap together determine cache_full.
func CheckCacheRangeByScore(cacheLen, itemsCap int, cacheMin, cacheMax float64, min, max float64, leftClose, rightClose bool, pos StartPos) RangeResult {
	cacheFull := cacheLen == itemsCap
	if cacheLen == 0 {
		return RangeMiss
	}
	if pos == FromBegin {
		var hit bool
		if cacheFull {
			hit = max < cacheMax
		} else {
			if rightClose {
				hit = max < cacheMax
			} else {
				hit = max <= cacheMax
			}
		}
		if !hit {
			return RangeMiss
		}
		if max < cacheMin {
			return RangeError
		}
		return RangeHit
	}
	// FromEnd: mirror with min/cacheMin/leftClose.
	var hit bool
	if cacheFull {
		hit = min > cacheMin
	} else {
		if leftClose {
			hit = min > cacheMin
		} else {
			hit = min >= cacheMin
		}
	}
	if !hit {
		return RangeMiss
	}
	if min > cacheMax {
		return RangeError
	}
	return RangeHit
}

// ---- command layer: ZRange / ZRevrange / ZRangebyscore / ZRank / ZRem* ----

// ZRange answers a forward index-range query, mirroring pika_cache.cc's
// ZRange (lines ~950-1050). On RangeMiss it enqueues a reload (every
// coverage miss reloads, not just ZRange) and returns NotFound("key not
// in cache").
func (c *Core) ZRange(key string, start, stop, dbLen int) ([]store.ScoreMember, error) {
	var out []store.ScoreMember
	err := c.withShard(key, func(sh *store.Shard) error {
		zs, zerr := sh.ZGet(key)
		if zerr != nil {
			store.RecordMiss()
			c.enqueueReload(reload.KeyZSet, key)
			return errKeyNotInCache()
		}
		res, cs, ce := CheckCacheRange(zs.Card(), dbLen, start, stop, c.cfg.CacheStartPos)
		switch res {
		case RangeError:
			return errRange()
		case RangeMiss:
			store.RecordMiss()
			c.enqueueReload(reload.KeyZSet, key)
			return errKeyNotInCache()
		default:
			store.RecordHit()
			out = zs.Range(cs, ce)
			return nil
		}
	})
	return out, err
}

// ZRevrange answers a reverse index-range query (mirrors ZRange).
func (c *Core) ZRevrange(key string, start, stop, dbLen int) ([]store.ScoreMember, error) {
	var out []store.ScoreMember
	err := c.withShard(key, func(sh *store.Shard) error {
		zs, zerr := sh.ZGet(key)
		if zerr != nil {
			store.RecordMiss()
			c.enqueueReload(reload.KeyZSet, key)
			return errKeyNotInCache()
		}
		res, cs, ce := CheckCacheRevRange(zs.Card(), dbLen, start, stop, c.cfg.CacheStartPos)
		switch res {
		case RangeError:
			return errRange()
		case RangeMiss:
			store.RecordMiss()
			c.enqueueReload(reload.KeyZSet, key)
			return errKeyNotInCache()
		default:
			store.RecordHit()
			out = zs.RevRange(cs, ce)
			return nil
		}
	})
	return out, err
}

// ZRangebyscore answers a score-range query. A RangeMiss here enqueues a
// reload exactly like ZRange does.
func (c *Core) ZRangebyscore(key string, min, max float64, minExcl, maxExcl bool) ([]store.ScoreMember, error) {
	var out []store.ScoreMember
	err := c.withShard(key, func(sh *store.Shard) error {
		zs, zerr := sh.ZGet(key)
		if zerr != nil {
			store.RecordMiss()
			c.enqueueReload(reload.KeyZSet, key)
			return errKeyNotInCache()
		}
		cmin, cmax, _ := zs.MinMax()
		res := CheckCacheRangeByScore(zs.Card(), c.itemsCap, cmin.Score, cmax.Score, min, max, !minExcl, !maxExcl, c.cfg.CacheStartPos)
		switch res {
		case RangeError:
			return errScoreRange()
		case RangeMiss:
			store.RecordMiss()
			c.enqueueReload(reload.KeyZSet, key)
			return errKeyNotInCache()
		default:
			store.RecordHit()
			out = zs.RangeByScore(min, max, minExcl, maxExcl)
			return nil
		}
	})
	return out, err
}

// ZCount answers a score-range cardinality query with the same coverage
// check as ZRangebyscore.
func (c *Core) ZCount(key string, min, max float64, minExcl, maxExcl bool) (int, error) {
	sms, err := c.ZRangebyscore(key, min, max, minExcl, maxExcl)
	if err != nil {
		return 0, err
	}
	return len(sms), nil
}

// ZScore returns the score of a cached member.
func (c *Core) ZScore(key, member string) (float64, error) {
	var score float64
	err := c.withShard(key, func(sh *store.Shard) error {
		zs, zerr := sh.ZGet(key)
		if zerr != nil {
			store.RecordMiss()
			return errKeyNotInCache()
		}
		s, ok := zs.Score(member)
		if !ok {
			store.RecordMiss()
			return errKeyNotInCache()
		}
		store.RecordHit()
		score = s
		return nil
	})
	return score, err
}

// ZRank returns a member's 0-based rank, translating for FROM_END windows
// per pika_cache.cc:1276-1300: a cached suffix window's local ranks don't
// equal backing-store ranks, so the offset dbLen-cacheLen must be added
// back in.
func (c *Core) ZRank(key, member string, dbLen int) (int, error) {
	var rank int
	err := c.withShard(key, func(sh *store.Shard) error {
		zs, zerr := sh.ZGet(key)
		if zerr != nil {
			return errKeyNotInCache()
		}
		r, ok := zs.Rank(member)
		if !ok {
			return errKeyNotInCache()
		}
		if c.cfg.CacheStartPos == FromEnd {
			r += dbLen - zs.Card()
		}
		rank = r
		return nil
	})
	return rank, err
}

// ZCard returns the number of members in a cached zset.
func (c *Core) ZCard(key string) (int, error) {
	var n int
	err := c.withShard(key, func(sh *store.Shard) error {
		v, err := sh.ZCard(key)
		if err != nil {
			return errKeyNotInCache()
		}
		n = v
		return nil
	})
	return n, err
}

// ZRem removes members from a cached zset write-through.
func (c *Core) ZRem(key string, members []string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if _, err := sh.ZRem(key, members); err != nil {
			return errKeyNotInCache()
		}
		return nil
	})
}

// ZRemrangebyrank removes members by rank, translating FROM_END ranks back
// to local coordinates the same way ZRank does, and accounting for
// eleDeleted (members the backing store already removed before the cache
// saw this call), per pika_cache.cc:1313-1369.
func (c *Core) ZRemrangebyrank(key string, start, stop, dbLen, eleDeleted int) (int, error) {
	var removed int
	err := c.withShard(key, func(sh *store.Shard) error {
		zs, zerr := sh.ZGet(key)
		if zerr != nil {
			return errKeyNotInCache()
		}
		cacheLen := zs.Card()
		// adjDbLen reconstructs the pre-deletion length (pika_cache.cc:1327
		// does db_len += ele_deleted) so start/stop normalize against the
		// length they were issued against, not the post-deletion one.
		adjDbLen := dbLen + eleDeleted
		ns, ne, ok := normalizeIndexRange(start, stop, adjDbLen)
		if !ok {
			return errRange()
		}
		if c.cfg.CacheStartPos == FromEnd {
			offset := adjDbLen - cacheLen
			ns -= offset
			ne -= offset
			// Two-sided clamp into [0, cacheLen-1] (pika_cache.cc:1351-1354):
			// the cached window is a suffix, so the translated bounds can
			// fall outside it even when the pre-deletion bounds were valid.
			if ns < 0 {
				ns = 0
			}
			if ne >= cacheLen {
				ne = cacheLen - 1
			}
			if ns > ne {
				return errRange()
			}
		}
		n, err := sh.ZRemRangeByRank(key, ns, ne)
		if err != nil {
			return errKeyNotInCache()
		}
		removed = n
		return nil
	})
	return removed, err
}

// ZRemrangebyscore removes members in a score range write-through.
func (c *Core) ZRemrangebyscore(key string, min, max float64, minExcl, maxExcl bool) (int, error) {
	var removed int
	err := c.withShard(key, func(sh *store.Shard) error {
		n, err := sh.ZRemRangeByScore(key, min, max, minExcl, maxExcl)
		if err != nil {
			return errKeyNotInCache()
		}
		removed = n
		return nil
	})
	return removed, err
}
