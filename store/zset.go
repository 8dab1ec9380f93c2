package store

import "sort"

// ScoreMember is one (score, member) pair of a sorted set.
type ScoreMember struct {
	Score  float64
	Member string
}

// zset holds a small, score-ordered sorted set: score ascending, member
// lexicographically ascending on ties, keeping a cached window
// score-monotonic the way a reload rebuilds it.
// cache_items_per_key bounds these windows to a few thousand
// members at most, so a flat sorted slice plus an index map outperforms a
// skiplist here and needs none of its rebalancing machinery.
type zset struct {
	members []ScoreMember     // sorted: score asc, member asc on ties
	index   map[string]int    // member -> position in members
}

func newZSet() *zset {
	return &zset{index: make(map[string]int)}
}

func less(a, b ScoreMember) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Member < b.Member
}

func (z *zset) rebuildIndex() {
	for i, sm := range z.members {
		z.index[sm.Member] = i
	}
}

// Add inserts or updates score/members, returning the number of newly
// added (as opposed to updated) members.
func (z *zset) Add(sms []ScoreMember) int {
	added := 0
	for _, sm := range sms {
		if pos, ok := z.index[sm.Member]; ok {
			z.members = append(z.members[:pos], z.members[pos+1:]...)
			delete(z.index, sm.Member)
			z.insertSorted(sm)
			z.rebuildIndex()
			continue
		}
		z.insertSorted(sm)
		z.rebuildIndex()
		added++
	}
	return added
}

func (z *zset) insertSorted(sm ScoreMember) {
	i := sort.Search(len(z.members), func(i int) bool { return less(sm, z.members[i]) })
	z.members = append(z.members, ScoreMember{})
	copy(z.members[i+1:], z.members[i:])
	z.members[i] = sm
}

func (z *zset) Card() int { return len(z.members) }

func (z *zset) Score(member string) (float64, bool) {
	if pos, ok := z.index[member]; ok {
		return z.members[pos].Score, true
	}
	return 0, false
}

func (z *zset) Rank(member string) (int, bool) {
	pos, ok := z.index[member]
	return pos, ok
}

func (z *zset) Rem(members []string) int {
	if len(members) == 0 || len(z.members) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(members))
	for _, m := range members {
		drop[m] = struct{}{}
	}
	kept := z.members[:0:0]
	removed := 0
	for _, sm := range z.members {
		if _, ok := drop[sm.Member]; ok {
			removed++
			continue
		}
		kept = append(kept, sm)
	}
	z.members = kept
	z.index = make(map[string]int, len(kept))
	z.rebuildIndex()
	return removed
}

// RemRangeByRank removes members whose 0-based ranks fall in [start, stop]
// inclusive, both already normalized and clamped by the caller.
func (z *zset) RemRangeByRank(start, stop int) int {
	if start > stop || start >= len(z.members) || stop < 0 {
		return 0
	}
	if start < 0 {
		start = 0
	}
	if stop >= len(z.members) {
		stop = len(z.members) - 1
	}
	removed := stop - start + 1
	z.members = append(z.members[:start], z.members[stop+1:]...)
	z.index = make(map[string]int, len(z.members))
	z.rebuildIndex()
	return removed
}

// RemRangeByScore removes members with min <= score <= max; minExcl/maxExcl
// make the corresponding bound exclusive.
func (z *zset) RemRangeByScore(min, max float64, minExcl, maxExcl bool) int {
	kept := z.members[:0:0]
	removed := 0
	for _, sm := range z.members {
		inLow := sm.Score > min || (!minExcl && sm.Score == min)
		inHigh := sm.Score < max || (!maxExcl && sm.Score == max)
		if inLow && inHigh {
			removed++
			continue
		}
		kept = append(kept, sm)
	}
	z.members = kept
	z.index = make(map[string]int, len(kept))
	z.rebuildIndex()
	return removed
}

// Range returns members at 0-based ranks [start, stop] inclusive, forward order.
func (z *zset) Range(start, stop int) []ScoreMember {
	if start > stop || start >= len(z.members) || stop < 0 || len(z.members) == 0 {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if stop >= len(z.members) {
		stop = len(z.members) - 1
	}
	out := make([]ScoreMember, stop-start+1)
	copy(out, z.members[start:stop+1])
	return out
}

// RevRange returns members at 0-based ranks [start, stop] inclusive counted
// from the tail (rank 0 == highest score), highest score first.
func (z *zset) RevRange(start, stop int) []ScoreMember {
	n := len(z.members)
	fwdStart, fwdStop := n-stop-1, n-start-1
	fwd := z.Range(fwdStart, fwdStop)
	out := make([]ScoreMember, len(fwd))
	for i, sm := range fwd {
		out[len(fwd)-1-i] = sm
	}
	return out
}

// RangeByScore returns members with min <= score <= max (closures per flags),
// in ascending score order.
func (z *zset) RangeByScore(min, max float64, minExcl, maxExcl bool) []ScoreMember {
	var out []ScoreMember
	for _, sm := range z.members {
		if minExcl && sm.Score <= min {
			continue
		}
		if !minExcl && sm.Score < min {
			continue
		}
		if maxExcl && sm.Score >= max {
			continue
		}
		if !maxExcl && sm.Score > max {
			continue
		}
		out = append(out, sm)
	}
	return out
}

func (z *zset) CountByScore(min, max float64, minExcl, maxExcl bool) int {
	return len(z.RangeByScore(min, max, minExcl, maxExcl))
}

// RangeByLex returns members within the [min, max] lexicographic bounds, each
// bound exclusive when its Excl flag is set and "-"/"+" meaning unbounded; callers
// should only invoke this when the cache holds the whole authoritative
// set.
func (z *zset) RangeByLex(min, max string, minExcl, maxExcl bool) []string {
	var out []string
	for _, sm := range z.members {
		if min != "-" {
			if minExcl && sm.Member <= min {
				continue
			}
			if !minExcl && sm.Member < min {
				continue
			}
		}
		if max != "+" {
			if maxExcl && sm.Member >= max {
				continue
			}
			if !maxExcl && sm.Member > max {
				continue
			}
		}
		out = append(out, sm.Member)
	}
	return out
}

// MinMax returns the lowest and highest scored members currently held.
func (z *zset) MinMax() (min, max ScoreMember, ok bool) {
	if len(z.members) == 0 {
		return ScoreMember{}, ScoreMember{}, false
	}
	return z.members[0], z.members[len(z.members)-1], true
}
