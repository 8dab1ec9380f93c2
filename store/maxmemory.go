package store

import (
	"github.com/rediscache/rcache/policy"
	"github.com/rediscache/rcache/policy/lru"
	"github.com/rediscache/rcache/policy/random"
	"github.com/rediscache/rcache/policy/twoq"
)

// evictNode is the intrusive list element threading an Entry through a
// shard's maxmemory eviction order. It exists separately from Entry (rather
// than embedding prev/next on Entry itself, as the teacher's node[K,V] did)
// so a Shard can run with no maxmemory policy at all and pay nothing for it.
type evictNode struct {
	key        string
	entry      *Entry
	prev, next *evictNode
}

func (n *evictNode) Key() string      { return n.key }
func (n *evictNode) Value() **Entry   { return &n.entry }

// evictHooks adapts a Shard's intrusive list to policy.Hooks.
type evictHooks struct{ s *Shard }

func (h evictHooks) PushFront(x policy.Node[string, *Entry]) { h.s.evPushFront(x.(*evictNode)) }
func (h evictHooks) MoveToFront(x policy.Node[string, *Entry]) {
	h.s.evMoveToFront(x.(*evictNode))
}
func (h evictHooks) Remove(x policy.Node[string, *Entry]) { h.s.evRemoveNode(x.(*evictNode)) }
func (h evictHooks) Back() policy.Node[string, *Entry] {
	if h.s.evTail == nil {
		return nil
	}
	return h.s.evTail
}
func (h evictHooks) Len() int { return h.s.evLen }

// newPolicy builds a per-shard eviction policy instance from a
// maxmemory_policy name, bound to hooks. "noeviction" (or anything
// unrecognized) disables eviction bookkeeping.
func newPolicy(name string, hooks policy.Hooks[string, *Entry]) policy.ShardPolicy[string, *Entry] {
	var factory policy.Policy[string, *Entry]
	switch name {
	case "allkeys-lru":
		factory = lru.New[string, *Entry]()
	case "allkeys-lfu":
		// The pack carries no literal LFU policy; 2Q's scan-resistant
		// admission queue approximates frequency-based retention well
		// enough to stand in (see DESIGN.md).
		factory = twoq.New[string, *Entry](8, 16)
	case "allkeys-random":
		factory = random.New[string, *Entry]()
	default:
		return nil
	}
	return factory.New(hooks)
}

// evictOnAdmit registers a freshly-written entry with the eviction policy
// and enforces the shard's maxmemory budget. Called by putEntry after it
// installs the entry and updates memUsed.
func (s *Shard) evictOnAdmit(e *Entry) {
	if s.evPolicy == nil {
		return
	}
	if n, ok := s.evIndex[e.Key]; ok {
		n.entry = e
		s.evPolicy.OnUpdate(n)
	} else {
		n := &evictNode{key: e.Key, entry: e}
		s.evIndex[e.Key] = n
		if ev := s.evPolicy.OnAdd(n); ev != nil {
			s.evictNode(ev.(*evictNode))
		}
	}
	s.enforceMaxMemory()
}

// evictOnAccess promotes e in the eviction policy on a read.
func (s *Shard) evictOnAccess(key string) {
	if s.evPolicy == nil {
		return
	}
	if n, ok := s.evIndex[key]; ok {
		s.evPolicy.OnGet(n)
	}
}

// evictOnRemove drops key from the eviction policy's bookkeeping without
// triggering a nested eviction (used when the caller is already deleting
// the key directly, e.g. Del or expiry).
func (s *Shard) evictOnRemove(key string) {
	if s.evPolicy == nil {
		return
	}
	if n, ok := s.evIndex[key]; ok {
		s.evPolicy.OnRemove(n)
		s.evUnlink(n)
		delete(s.evIndex, key)
	}
}

// evictNode removes the node from policy bookkeeping and deletes the
// underlying entry from the shard, mirroring the teacher's
// shard.evictNode (cache/shard.go).
func (s *Shard) evictNode(n *evictNode) {
	s.evPolicy.OnRemove(n)
	s.evUnlink(n)
	delete(s.evIndex, n.key)
	s.deleteTyped(n.key)
}

func (s *Shard) enforceMaxMemory() {
	if s.evPolicy == nil || s.maxMemBudget <= 0 {
		return
	}
	for s.memUsed > s.maxMemBudget {
		victim := s.pickVictim()
		if victim == nil {
			return
		}
		s.evictNode(victim)
	}
}

func (s *Shard) pickVictim() *evictNode {
	if s.policyKind == "allkeys-random" {
		if sampler, ok := s.evPolicy.(random.Sampler[string, *Entry]); ok {
			n := s.samples
			if n <= 0 {
				n = 5
			}
			cands := sampler.Sample(n)
			if len(cands) == 0 {
				return nil
			}
			return cands[0].(*evictNode)
		}
		return nil
	}
	back := s.evHooks.Back()
	if back == nil {
		return nil
	}
	return back.(*evictNode)
}

// ---- intrusive list primitives (mirror cache/shard.go's list ops) ----

func (s *Shard) evPushFront(n *evictNode) {
	n.prev = nil
	n.next = s.evHead
	if s.evHead != nil {
		s.evHead.prev = n
	}
	s.evHead = n
	if s.evTail == nil {
		s.evTail = n
	}
	s.evLen++
}

func (s *Shard) evMoveToFront(n *evictNode) {
	if n == s.evHead {
		return
	}
	s.evUnlinkNoCount(n)
	n.prev = nil
	n.next = s.evHead
	if s.evHead != nil {
		s.evHead.prev = n
	}
	s.evHead = n
	if s.evTail == nil {
		s.evTail = n
	}
}

func (s *Shard) evRemoveNode(n *evictNode) { s.evUnlink(n) }

func (s *Shard) evUnlink(n *evictNode) {
	s.evUnlinkNoCount(n)
	s.evLen--
}

func (s *Shard) evUnlinkNoCount(n *evictNode) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if s.evHead == n {
		s.evHead = n.next
	}
	if s.evTail == n {
		s.evTail = n.prev
	}
	n.prev, n.next = nil, nil
}
