// Package tracefn is the runtime support library called by code the
// tracefn tool generates. Instrumented function bodies emit one entry
// event and, on normal return, one exit event through this package; the
// host program decides where those events go by configuring slog (or
// installing its own logger with SetLogger).
package tracefn

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Field is one named value attached to an entry or exit event. Fields
// appear in the emitted record in the order they were passed, which is the
// declaration order of the parameters they came from.
type Field struct {
	Name  string
	Value any
}

// F builds a Field.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used for entry and exit events. Passing
// nil reverts to slog.Default. Safe to call concurrently with running
// instrumented functions.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func activeLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Entry emits the call event for fn with its argument fields.
func Entry(level Level, fn string, args ...Field) {
	l := activeLogger()
	ctx := context.Background()
	if !l.Enabled(ctx, level.Slog()) {
		return
	}
	attrs := make([]slog.Attr, 0, len(args)+1)
	attrs = append(attrs, slog.String("fn", fn))
	for _, f := range args {
		attrs = append(attrs, slog.Any(f.Name, f.Value))
	}
	l.LogAttrs(ctx, level.Slog(), "enter", attrs...)
}

// Exit emits the return event for fn, carrying the elapsed wall-clock time
// and, when the function returns values, one field per result.
func Exit(level Level, fn string, elapsed time.Duration, results ...Field) {
	l := activeLogger()
	ctx := context.Background()
	if !l.Enabled(ctx, level.Slog()) {
		return
	}
	attrs := make([]slog.Attr, 0, len(results)+2)
	attrs = append(attrs, slog.String("fn", fn))
	attrs = append(attrs, slog.Duration("duration", elapsed))
	for _, f := range results {
		attrs = append(attrs, slog.Any(f.Name, f.Value))
	}
	l.LogAttrs(ctx, level.Slog(), "exit", attrs...)
}
