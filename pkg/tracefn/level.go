package tracefn

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level is the severity at which entry and exit events are emitted.
// Values mirror log/slog severities so handlers can filter without any
// translation; trace sits one step below debug, the usual slog extension.
type Level int

const (
	LevelTrace Level = -8
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Slog returns the slog severity this level maps onto.
func (l Level) Slog() slog.Level {
	return slog.Level(l)
}

// ParseLevel converts a level name into a Level. Matching is
// case-insensitive and surrounding whitespace is ignored.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelTrace, fmt.Errorf("unknown level %q (expected one of %s)", s, strings.Join(LevelNames(), ", "))
	}
}

// LevelNames lists the accepted level names in ascending severity order.
func LevelNames() []string {
	return []string{"trace", "debug", "info", "warn", "error"}
}
