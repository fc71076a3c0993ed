package tracefn

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureHandler records every slog record it receives, keeping attribute
// order.
type captureHandler struct {
	mu      sync.Mutex
	min     slog.Level
	records []capturedRecord
}

type capturedRecord struct {
	level slog.Level
	msg   string
	attrs []slog.Attr
}

func newCaptureHandler(min slog.Level) *captureHandler {
	return &captureHandler{min: min}
}

func (h *captureHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	var attrs []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, capturedRecord{level: r.Level, msg: r.Message, attrs: attrs})
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) all() []capturedRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]capturedRecord(nil), h.records...)
}

func attrNames(attrs []slog.Attr) []string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Key
	}
	return names
}

func withCapture(t *testing.T, min slog.Level) *captureHandler {
	t.Helper()
	handler := newCaptureHandler(min)
	SetLogger(slog.New(handler))
	t.Cleanup(func() { SetLogger(nil) })
	return handler
}

func TestEntryEmitsSingleRecord(t *testing.T) {
	handler := withCapture(t, LevelTrace.Slog())

	Entry(LevelTrace, "add", F("a", 2), F("b", 3))

	records := handler.all()
	require.Len(t, records, 1)
	assert.Equal(t, "enter", records[0].msg)
	assert.Equal(t, LevelTrace.Slog(), records[0].level)
	assert.Equal(t, []string{"fn", "a", "b"}, attrNames(records[0].attrs))
	assert.Equal(t, "add", records[0].attrs[0].Value.String())
	assert.Equal(t, int64(2), records[0].attrs[1].Value.Int64())
	assert.Equal(t, int64(3), records[0].attrs[2].Value.Int64())
}

func TestExitCarriesDurationAndResult(t *testing.T) {
	handler := withCapture(t, LevelTrace.Slog())

	Exit(LevelInfo, "add", 42*time.Millisecond, F("return", 5))

	records := handler.all()
	require.Len(t, records, 1)
	assert.Equal(t, "exit", records[0].msg)
	assert.Equal(t, LevelInfo.Slog(), records[0].level)
	assert.Equal(t, []string{"fn", "duration", "return"}, attrNames(records[0].attrs))
	assert.Equal(t, 42*time.Millisecond, records[0].attrs[1].Value.Duration())
	assert.Equal(t, int64(5), records[0].attrs[2].Value.Int64())
}

func TestExitWithoutResults(t *testing.T) {
	handler := withCapture(t, LevelTrace.Slog())

	Exit(LevelTrace, "noArgNoRet", time.Millisecond)

	records := handler.all()
	require.Len(t, records, 1)
	assert.Equal(t, []string{"fn", "duration"}, attrNames(records[0].attrs))
}

func TestEventsBelowHandlerLevelAreDropped(t *testing.T) {
	handler := withCapture(t, slog.LevelInfo)

	Entry(LevelTrace, "quiet")
	Exit(LevelDebug, "quiet", time.Millisecond)
	Entry(LevelInfo, "loud")

	records := handler.all()
	require.Len(t, records, 1)
	assert.Equal(t, "enter", records[0].msg)
}

func TestSetLoggerSwap(t *testing.T) {
	first := newCaptureHandler(LevelTrace.Slog())
	second := newCaptureHandler(LevelTrace.Slog())
	t.Cleanup(func() { SetLogger(nil) })

	SetLogger(slog.New(first))
	Entry(LevelInfo, "one")
	SetLogger(slog.New(second))
	Entry(LevelInfo, "two")

	require.Len(t, first.all(), 1)
	require.Len(t, second.all(), 1)
	assert.Equal(t, "one", first.all()[0].attrs[0].Value.String())
	assert.Equal(t, "two", second.all()[0].attrs[0].Value.String())
}

func TestConcurrentEmission(t *testing.T) {
	handler := withCapture(t, LevelTrace.Slog())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Entry(LevelTrace, "worker", F("n", n))
			Exit(LevelTrace, "worker", time.Microsecond, F("return", n))
		}(i)
	}
	wg.Wait()

	// one entry and one exit per invocation, nothing shared between them
	assert.Len(t, handler.all(), 40)
}
