package daylog

import (
	"fmt"
	"strings"

	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
)

// Level is the severity attached to a log line.
type Level int

const (
	// LevelDebug is diagnostic detail.
	LevelDebug Level = iota
	// LevelWarning marks a recoverable problem.
	LevelWarning
	// LevelError marks a failed operation.
	LevelError
	// LevelCritical marks a failure the host cannot continue from.
	LevelCritical
)

// String returns the level name as it appears in log files.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "Debug"
	case LevelWarning:
		return "Warning"
	case LevelError:
		return "Error"
	case LevelCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Levels returns all levels in severity order.
func Levels() []Level {
	return []Level{LevelDebug, LevelWarning, LevelError, LevelCritical}
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive
// and accepts the short forms "warn" and "crit".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical", "crit":
		return LevelCritical, nil
	default:
		return LevelDebug, daylogerrors.ValidationError(daylogerrors.ErrCodeInvalidLevel,
			fmt.Sprintf("unknown log level %q", s)).
			WithSuggestion("use debug, warning, error or critical")
	}
}
