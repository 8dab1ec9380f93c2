// Package zap adapts go.uber.org/zap to the log.Logger contract.
package zap

import (
	"go.uber.org/zap"

	"github.com/rediscache/rcache/log"
)

// Logger wraps a *zap.Logger.
type Logger struct{ L *zap.Logger }

func (z Logger) Debug(msg string, f log.Fields) { z.L.Debug(msg, fields(f)...) }
func (z Logger) Info(msg string, f log.Fields)  { z.L.Info(msg, fields(f)...) }
func (z Logger) Warn(msg string, f log.Fields)  { z.L.Warn(msg, fields(f)...) }
func (z Logger) Error(msg string, f log.Fields) { z.L.Error(msg, fields(f)...) }

func fields(f log.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
