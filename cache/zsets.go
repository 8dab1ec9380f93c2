package cache

import (
	"math"

	"github.com/rediscache/rcache/reload"
	"github.com/rediscache/rcache/store"
)

// ZAdd applies a write-through zset write, then restores the size bound
// — a write-through add can grow past cache_items_per_key just like a
// bounded insertion can.
func (c *Core) ZAdd(key string, sms []store.ScoreMember) error {
	return c.withShard(key, func(sh *store.Shard) error {
		if _, err := sh.ZAdd(key, sms); err != nil {
			return errKeyNotInCache()
		}
		return c.cleanCacheKeyIfNeededLocked(sh, key)
	})
}

// ZAddIfKeyExist implements the bounded-insertion protocol, grounded
// verbatim on pika_cache.cc's ZAddIfKeyExist.
func (c *Core) ZAddIfKeyExist(key string, incoming []store.ScoreMember) error {
	return c.withShard(key, func(sh *store.Shard) error {
		zs, zerr := sh.ZGet(key)
		if zerr != nil {
			return errKeyNotExist()
		}
		deduped := dedupLastOccurrence(incoming)
		minIn, maxIn := minMaxScore(deduped)
		cacheMinSM, cacheMaxSM, ok := zs.MinMax()
		if !ok {
			// Cache holds the key but it is currently empty; anything fits.
			_, err := sh.ZAdd(key, deduped)
			if err != nil {
				return errKeyNotInCache()
			}
			return c.cleanCacheKeyIfNeededLocked(sh, key)
		}
		cacheMax, cacheMin := cacheMaxSM.Score, cacheMinSM.Score

		if c.cfg.CacheStartPos == FromBegin {
			if maxIn < cacheMax {
				if _, err := sh.ZAdd(key, deduped); err != nil {
					return errKeyNotInCache()
				}
				return c.cleanCacheKeyIfNeededLocked(sh, key)
			}
			var toAdd, toRemove []store.ScoreMember
			for _, sm := range deduped {
				if sm.Score <= cacheMax {
					toAdd = append(toAdd, sm)
				} else {
					toRemove = append(toRemove, sm)
				}
			}
			if len(toAdd) > 0 {
				if _, err := sh.ZAdd(key, toAdd); err != nil {
					return errKeyNotInCache()
				}
			}
			if _, err := sh.ZRemRangeByScore(key, cacheMax, math.Inf(1), true, false); err != nil && err != store.ErrNotFound {
				return errKeyNotInCache()
			}
			if len(toRemove) > 0 {
				members := make([]string, len(toRemove))
				for i, sm := range toRemove {
					members[i] = sm.Member
				}
				_, _ = sh.ZRem(key, members)
			}
			return c.cleanCacheKeyIfNeededLocked(sh, key)
		}

		// FromEnd: mirror, with cache_min/left side.
		if minIn > cacheMin {
			if _, err := sh.ZAdd(key, deduped); err != nil {
				return errKeyNotInCache()
			}
			return c.cleanCacheKeyIfNeededLocked(sh, key)
		}
		var toAdd, toRemove []store.ScoreMember
		for _, sm := range deduped {
			if sm.Score >= cacheMin {
				toAdd = append(toAdd, sm)
			} else {
				toRemove = append(toRemove, sm)
			}
		}
		if len(toAdd) > 0 {
			if _, err := sh.ZAdd(key, toAdd); err != nil {
				return errKeyNotInCache()
			}
		}
		if _, err := sh.ZRemRangeByScore(key, math.Inf(-1), cacheMin, false, true); err != nil && err != store.ErrNotFound {
			return errKeyNotInCache()
		}
		if len(toRemove) > 0 {
			members := make([]string, len(toRemove))
			for i, sm := range toRemove {
				members[i] = sm.Member
			}
			_, _ = sh.ZRem(key, members)
		}
		return c.cleanCacheKeyIfNeededLocked(sh, key)
	})
}

// dedupLastOccurrence keeps the last occurrence of each member, mirroring
// pika_cache.cc's reverse-scan/push-front dedup semantics.
func dedupLastOccurrence(sms []store.ScoreMember) []store.ScoreMember {
	seen := make(map[string]bool, len(sms))
	out := make([]store.ScoreMember, 0, len(sms))
	for i := len(sms) - 1; i >= 0; i-- {
		if seen[sms[i].Member] {
			continue
		}
		seen[sms[i].Member] = true
		out = append(out, sms[i])
	}
	return out
}

func minMaxScore(sms []store.ScoreMember) (min, max float64) {
	if len(sms) == 0 {
		return 0, 0
	}
	min, max = sms[0].Score, sms[0].Score
	for _, sm := range sms[1:] {
		if sm.Score < min {
			min = sm.Score
		}
		if sm.Score > max {
			max = sm.Score
		}
	}
	return min, max
}

// CleanCacheKeyIfNeeded restores the size bound after a mutation.
func (c *Core) CleanCacheKeyIfNeeded(key string) error {
	return c.withShard(key, func(sh *store.Shard) error {
		return c.cleanCacheKeyIfNeededLocked(sh, key)
	})
}

func (c *Core) cleanCacheKeyIfNeededLocked(sh *store.Shard, key string) error {
	if err := sh.CleanCacheKeyIfNeeded(key, c.itemsCap, c.cfg.CacheStartPos == FromBegin); err != nil && err != store.ErrNotFound {
		return errKeyNotInCache()
	}
	return nil
}

// ZIncrbyIfKeyExist applies the score-update decision table after the
// backing store has already applied the increment.
func (c *Core) ZIncrbyIfKeyExist(key, member string, newScore float64) error {
	return c.withShard(key, func(sh *store.Shard) error {
		zs, zerr := sh.ZGet(key)
		if zerr != nil {
			return errKeyNotExist()
		}
		cacheMinSM, cacheMaxSM, ok := zs.MinMax()
		if !ok {
			return nil
		}
		if c.cfg.CacheStartPos == FromBegin {
			switch {
			case newScore > cacheMaxSM.Score:
				_, _ = sh.ZRem(key, []string{member})
			case newScore == cacheMaxSM.Score:
				_, _ = sh.ZRem(key, []string{member})
				_, _ = sh.ZRemRangeByScore(key, cacheMaxSM.Score, cacheMaxSM.Score, false, false)
				c.enqueueReload(reload.KeyZSet, key)
			default:
				if _, err := sh.ZAdd(key, []store.ScoreMember{{Score: newScore, Member: member}}); err != nil {
					return errKeyNotInCache()
				}
				return c.cleanCacheKeyIfNeededLocked(sh, key)
			}
			return nil
		}
		switch {
		case newScore < cacheMinSM.Score:
			_, _ = sh.ZRem(key, []string{member})
		case newScore == cacheMinSM.Score:
			_, _ = sh.ZRem(key, []string{member})
			_, _ = sh.ZRemRangeByScore(key, cacheMinSM.Score, cacheMinSM.Score, false, false)
			c.enqueueReload(reload.KeyZSet, key)
		default:
			if _, err := sh.ZAdd(key, []store.ScoreMember{{Score: newScore, Member: member}}); err != nil {
				return errKeyNotInCache()
			}
			return c.cleanCacheKeyIfNeededLocked(sh, key)
		}
		return nil
	})
}

// ReloadCacheKeyIfNeeded is the repair trigger: given known or
// to-be-measured cache/backing-store lengths, decides whether the
// window has decayed enough to warrant a full rebuild.
func (c *Core) ReloadCacheKeyIfNeeded(key string, memLen, dbLen int) (bool, error) {
	if memLen < 0 {
		n, err := c.ZCard(key)
		if err != nil && !IsKeyNotInCache(err) {
			return false, err
		}
		memLen = n
	}
	if dbLen == 0 {
		return false, nil
	}
	needsReload := (dbLen < c.itemsCap && memLen*2 < dbLen) ||
		(dbLen >= c.itemsCap && memLen*2 < c.itemsCap)
	if !needsReload {
		return false, nil
	}
	_ = c.Del(key)
	c.enqueueReload(reload.KeyZSet, key)
	return true, nil
}
