// Package random implements an approximate "allkeys-random" eviction policy.
package random

import (
	"math/rand"

	"github.com/rediscache/rcache/policy"
)

// randomPolicy never promotes on access, so the shard's intrusive list decays
// to pure insertion order rather than recency order. Eviction victims are
// chosen by Sample, which draws uniformly from the set of resident nodes —
// true random eviction needs O(1) random access that the shared
// PushFront/MoveToFront/Back/Remove hook contract can't provide, so this
// policy keeps its own slice of live nodes alongside the shard's list.
type randomPolicy[K comparable, V any] struct {
	h    policy.Hooks[K, V]
	keys []policy.Node[K, V]
	pos  map[policy.Node[K, V]]int
}

type randomFactory[K comparable, V any] struct{}

// New returns a Policy factory constructing per-shard random-eviction instances.
func New[K comparable, V any]() policy.Policy[K, V] { return randomFactory[K, V]{} }

func (randomFactory[K, V]) New(h policy.Hooks[K, V]) policy.ShardPolicy[K, V] {
	return &randomPolicy[K, V]{h: h, pos: make(map[policy.Node[K, V]]int)}
}

// OnAdd places the node at MRU in the shared list (kept for Len() bookkeeping)
// and records it for later sampling.
func (p *randomPolicy[K, V]) OnAdd(n policy.Node[K, V]) (evict policy.Node[K, V]) {
	p.h.PushFront(n)
	p.pos[n] = len(p.keys)
	p.keys = append(p.keys, n)
	return nil
}

// OnGet/OnUpdate are no-ops: promoting on access would bias survivorship
// toward recently used keys, defeating the point of random eviction.
func (p *randomPolicy[K, V]) OnGet(policy.Node[K, V])    {}
func (p *randomPolicy[K, V]) OnUpdate(policy.Node[K, V]) {}

// OnRemove swap-deletes n from the sample slice.
func (p *randomPolicy[K, V]) OnRemove(n policy.Node[K, V]) {
	i, ok := p.pos[n]
	if !ok {
		return
	}
	last := len(p.keys) - 1
	p.keys[i] = p.keys[last]
	p.pos[p.keys[i]] = i
	p.keys = p.keys[:last]
	delete(p.pos, n)
}

// Sample returns up to n distinct resident nodes chosen uniformly at random.
// Callers type-assert for this method since it isn't part of ShardPolicy.
func (p *randomPolicy[K, V]) Sample(n int) []policy.Node[K, V] {
	if n <= 0 || len(p.keys) == 0 {
		return nil
	}
	if n >= len(p.keys) {
		out := make([]policy.Node[K, V], len(p.keys))
		copy(out, p.keys)
		return out
	}
	out := make([]policy.Node[K, V], 0, n)
	seen := make(map[int]struct{}, n)
	for len(out) < n {
		i := rand.Intn(len(p.keys))
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, p.keys[i])
	}
	return out
}

// Sampler is implemented by policies that support Sample-based victim
// selection (currently only random).
type Sampler[K comparable, V any] interface {
	Sample(n int) []policy.Node[K, V]
}
