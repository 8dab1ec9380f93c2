package cache

// TTLNone is the "no expiry requested" sentinel, matching pika_cache.cc's
// PIKA_TTL_NONE. It is distinct from zero/negative ttls, which mean
// "the caller is asking to delete the key from cache, not add it."
const TTLNone int64 = -1

// ttlAction is the three-way branch every WriteXToCache-shaped populate
// path makes:
//
//	ttl > 0        -> nx-write with that TTL
//	ttl == TTLNone -> nx-write with no TTL
//	otherwise      -> Del
type ttlAction uint8

const (
	actionNXWithTTL ttlAction = iota
	actionNXNoTTL
	actionDel
)

func resolveTTLAction(ttl int64) ttlAction {
	switch {
	case ttl > 0:
		return actionNXWithTTL
	case ttl == TTLNone:
		return actionNXNoTTL
	default:
		return actionDel
	}
}
