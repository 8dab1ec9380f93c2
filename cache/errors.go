package cache

import "fmt"

// Kind classifies a cache-layer error the way pika_cache.h's status kinds
// do.
type Kind uint8

const (
	// KindNotFound covers every "not found"-shaped outcome: cache miss,
	// xx/nx guard failures, and malformed range queries.
	KindNotFound Kind = iota
	// KindCorruption is fatal: a shard failed to open or a core is unusable.
	KindCorruption
)

// Error is the error type every cache-core operation returns. Msg
// distinguishes the sub-cases enumerated under NotFound.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("cache: %s", e.Msg) }

func newErr(k Kind, msg string) *Error { return &Error{Kind: k, Msg: msg} }

// Sentinel constructors, named after pika_cache's status table so call
// sites read like the table itself.

func errKeyNotInCache() *Error { return newErr(KindNotFound, "key not in cache") }
func errKeyNotExist() *Error   { return newErr(KindNotFound, "key not exist") }
func errKeyExist() *Error      { return newErr(KindNotFound, "key exist") }
func errRange() *Error         { return newErr(KindNotFound, "error range") }
func errScoreRange() *Error    { return newErr(KindNotFound, "score range error") }

func errCorruption(msg string) *Error { return newErr(KindCorruption, msg) }

// IsKeyNotInCache reports whether err is the range-miss/cache-miss sentinel
// that tells a caller to fall through to the backing store.
func IsKeyNotInCache(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindNotFound && e.Msg == "key not in cache"
}

// IsCorruption reports whether err is fatal.
func IsCorruption(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindCorruption
}
