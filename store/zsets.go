package store

// zset accessors. The coherence rules for *when* to serve a range from
// cache versus reload from the backing store live in the cache package's
// CheckCacheRange family — a Shard only ever holds and mutates whatever
// bounded window the cache layer decided to keep.

// ZGet returns the live zset for key, or nil if key is absent. Callers must
// not retain the pointer past the enclosing shard-lock critical section.
func (s *Shard) ZGet(key string) (*zset, error) {
	e, ok := s.lookup(key)
	if !ok {
		return nil, ErrNotFound
	}
	if e.Typ != TypeZSet {
		return nil, ErrWrongType
	}
	s.evictOnAccess(key)
	return e.ZSet, nil
}

// ZAdd inserts or replaces (score, member) pairs, creating key if absent.
// Returns the number of newly added (as opposed to updated) members.
func (s *Shard) ZAdd(key string, sms []ScoreMember) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		e = &Entry{Key: key, Typ: TypeZSet, ZSet: newZSet()}
	} else if e.Typ != TypeZSet {
		return 0, ErrWrongType
	}
	added := e.ZSet.Add(sms)
	s.putEntry(e, zsetCost(e.ZSet))
	return added, nil
}

// ZAddIfKeyExist adds sms only if key is already resident, mirroring
// pika_cache.cc's ZAddIfKeyExist: a miss here is a signal to the caller,
// not an error to surface.
func (s *Shard) ZAddIfKeyExist(key string, sms []ScoreMember) (int, bool, error) {
	if _, ok := s.lookup(key); !ok {
		return 0, false, nil
	}
	n, err := s.ZAdd(key, sms)
	return n, true, err
}

// ZIncrbyIfKeyExist bumps member's score by delta only if both key and
// member are already resident, returning the new score.
func (s *Shard) ZIncrbyIfKeyExist(key, member string, delta float64) (float64, bool, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, false, nil
	}
	if e.Typ != TypeZSet {
		return 0, false, ErrWrongType
	}
	cur, ok := e.ZSet.Score(member)
	if !ok {
		return 0, false, nil
	}
	next := cur + delta
	e.ZSet.Add([]ScoreMember{{Score: next, Member: member}})
	s.putEntry(e, zsetCost(e.ZSet))
	return next, true, nil
}

// ZRem removes members from key's zset, deleting key entirely if it empties.
func (s *Shard) ZRem(key string, members []string) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeZSet {
		return 0, ErrWrongType
	}
	removed := e.ZSet.Rem(members)
	if e.ZSet.Card() == 0 {
		s.deleteTyped(key)
	} else {
		s.putEntry(e, zsetCost(e.ZSet))
	}
	return removed, nil
}

// ZRemRangeByRank removes members whose ranks fall in [start, stop].
func (s *Shard) ZRemRangeByRank(key string, start, stop int) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeZSet {
		return 0, ErrWrongType
	}
	removed := e.ZSet.RemRangeByRank(start, stop)
	if e.ZSet.Card() == 0 {
		s.deleteTyped(key)
	} else {
		s.putEntry(e, zsetCost(e.ZSet))
	}
	return removed, nil
}

// ZRemRangeByScore removes members with score in [min, max] per closure flags.
func (s *Shard) ZRemRangeByScore(key string, min, max float64, minExcl, maxExcl bool) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeZSet {
		return 0, ErrWrongType
	}
	removed := e.ZSet.RemRangeByScore(min, max, minExcl, maxExcl)
	if e.ZSet.Card() == 0 {
		s.deleteTyped(key)
	} else {
		s.putEntry(e, zsetCost(e.ZSet))
	}
	return removed, nil
}

// ZCard returns the number of members in key's zset.
func (s *Shard) ZCard(key string) (int, error) {
	e, ok := s.lookup(key)
	if !ok {
		return 0, ErrNotFound
	}
	if e.Typ != TypeZSet {
		return 0, ErrWrongType
	}
	return e.ZSet.Card(), nil
}

// CleanCacheKeyIfNeeded trims key's zset down to keepCount members from the
// configured end, mirroring pika_cache.cc's CleanCacheKeyIfNeeded: after a
// bounded window grows past its cap, the far end is dropped rather than the
// whole key invalidated.
func (s *Shard) CleanCacheKeyIfNeeded(key string, keepCount int, fromBegin bool) error {
	e, ok := s.lookup(key)
	if !ok {
		return ErrNotFound
	}
	if e.Typ != TypeZSet {
		return ErrWrongType
	}
	n := e.ZSet.Card()
	if n <= keepCount {
		return nil
	}
	if fromBegin {
		e.ZSet.RemRangeByRank(keepCount, n-1)
	} else {
		e.ZSet.RemRangeByRank(0, n-keepCount-1)
	}
	s.putEntry(e, zsetCost(e.ZSet))
	return nil
}

func zsetCost(z *zset) int64 {
	var n int64
	for _, sm := range z.members {
		n += int64(len(sm.Member) + 8)
	}
	return n
}
