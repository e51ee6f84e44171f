package compositor

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// building attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger. SetLogger may race with renders on
// other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for the compositor and all its
// sub-packages. By default nothing is logged.
//
// Pass nil to restore the silent default.
//
// Levels:
//   - [slog.LevelDebug]: glyph atlas builds, target cache frames, pipeline variants
//   - [slog.LevelWarn]: unpopped clips, late backdrop filters, open passes at submit
//   - [slog.LevelError]: failed allocations, clip underflow, missing attachments
//
// Example:
//
//	compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Every package of the module logs
// through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
