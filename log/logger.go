// Package log defines the minimal structured-logging contract used across
// the module, grounded on unkn0wn-root-cascache's Logger/Fields/NopLogger
// shape so callers can plug in zap (see log/zap) or any other backend.
package log

// Fields is a set of structured key/value pairs attached to a log line.
type Fields map[string]any

// Logger is the logging contract consumed by the reload daemon and cache
// manager. A nil Logger in configuration defaults to NopLogger{}.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)
}

// NopLogger discards everything. Used as the default when no Logger is configured.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
