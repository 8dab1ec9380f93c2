package cache

import "github.com/rediscache/rcache/log"

// Logger and Fields alias the log package's contract so cache.Config can
// name them without every caller importing two packages for one interface.
type Logger = log.Logger
type Fields = log.Fields

var nopLogger Logger = log.NopLogger{}
