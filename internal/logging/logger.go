// Package logging provides the structured logger threaded through every
// driver and the orchestrator.
package logging

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/kusaridev/skootrs/internal/model"
)

// Logger wraps a logr.Logger so callers depend on the stable logr interface
// rather than directly on zap.
type Logger struct {
	log logr.Logger
}

// New wraps an existing logr.Logger, falling back to DefaultLogger when
// base has no sink attached (e.g. the zero value of logr.Logger), since an
// uninitialized logger should never silently drop driver/orchestrator
// output.
func New(base logr.Logger) Logger {
	if base.GetSink() == nil {
		base = DefaultLogger()
	}
	return Logger{log: base}
}

// DefaultLogger builds a development-mode zap logger wrapped as a
// logr.Logger. It falls back to a no-op logger if zap construction fails,
// since a broken logger should never prevent the engine from running.
func DefaultLogger() logr.Logger {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return zapr.NewLogger(zap.NewNop())
	}
	return zapr.NewLogger(zl)
}

// WithValues returns a Logger that includes the given key/value pairs in
// every subsequent log entry.
func (l Logger) WithValues(keysAndValues ...interface{}) Logger {
	return Logger{log: l.log.WithValues(keysAndValues...)}
}

// WithName returns a Logger with name appended to the logger's name chain.
func (l Logger) WithName(name string) Logger {
	return Logger{log: l.log.WithName(name)}
}

// Info logs at the default info level.
func (l Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

// Debug logs at V(1), the convention this codebase uses for verbose detail.
func (l Logger) Debug(msg string, keysAndValues ...interface{}) {
	if v := l.log.V(1); v.Enabled() {
		v.Info(msg, keysAndValues...)
	}
}

// Error logs err alongside msg. When err is (or wraps) one of this engine's
// *model.Error values, its ErrorKind (Input, Auth, NotFound, IO, ...) is
// attached as a structured "errorKind" field ahead of keysAndValues, so a
// dashboard or log query can filter skootrs failures by the taxonomy in
// spec.md §7 without parsing the message text.
func (l Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	if kind := model.KindOf(err); kind != model.KindUnknown {
		fields := make([]interface{}, 0, len(keysAndValues)+2)
		fields = append(fields, "errorKind", kind.String())
		fields = append(fields, keysAndValues...)
		l.log.Error(err, msg, fields...)
		return
	}
	l.log.Error(err, msg, keysAndValues...)
}

// Logr exposes the underlying logr.Logger for collaborators that want to
// pass it to a library expecting that interface directly.
func (l Logger) Logr() logr.Logger {
	return l.log
}
