// Package reload implements the asynchronous repair pipeline: a single
// background worker draining an unbounded FIFO of "rebuild this key"
// requests, each satisfied by reading the authoritative value from the
// backing store and repopulating the owning shard.
package reload

// KeyType identifies which data type a reload job targets, so the daemon
// knows which backing.Store accessor and which WriteXToCache variant to use.
type KeyType uint8

const (
	KeyString KeyType = iota
	KeyHash
	KeyList
	KeySet
	KeyZSet
)

func (t KeyType) String() string {
	switch t {
	case KeyString:
		return "string"
	case KeyHash:
		return "hash"
	case KeyList:
		return "list"
	case KeySet:
		return "set"
	case KeyZSet:
		return "zset"
	default:
		return "unknown"
	}
}

// Job is one queued reload request.
type Job struct {
	Type KeyType
	Key  string
}
