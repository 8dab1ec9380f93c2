package store

import "errors"

// ErrNotFound is returned by any Shard accessor when the key is absent or
// expired. Together with ErrWrongType it is the only error a Shard
// produces: the cache layer never inspects shard internals beyond these
// signals.
var ErrNotFound = errors.New("key not in cache")

// ErrWrongType is returned when an operation targets a key holding a
// different data type, mirroring Redis's WRONGTYPE behavior.
var ErrWrongType = errors.New("wrongtype: operation against a key holding the wrong kind of value")
