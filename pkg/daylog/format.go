package daylog

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// FileDateLayout is the time layout of a day file name (MM.dd.yy).
	FileDateLayout = "01.02.06"
	// FileExt is the extension given to day files.
	FileExt = ".txt"
	// ClockLayout is the time-of-day layout inside a line.
	ClockLayout = "15:04:05"
)

// FormatLine renders one log line without its terminator:
// the level left-aligned in 10 columns, the clock time, then the message.
func FormatLine(level Level, t time.Time, message string) string {
	return fmt.Sprintf("%-10s:  %s:  %s", level, t.Format(ClockLayout), message)
}

// FileNameFor returns the day file name for t, e.g. "06.15.24.txt".
func FileNameFor(t time.Time) string {
	return t.Format(FileDateLayout) + FileExt
}

// FileDate parses the date encoded in a file name. Any extension is ignored.
// The second result is false for names that are not day files.
func FileDate(name string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	d, err := time.ParseInLocation(FileDateLayout, base, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Entry is a parsed log line.
type Entry struct {
	Level   Level
	Time    time.Time // clock time on the day of the file it came from
	Message string
	Raw     string // original line
	Valid   bool   // whether the line matched the line format
}

var linePattern = regexp.MustCompile(`^(\S+) *:  (\d{2}:\d{2}:\d{2}):  (.*)$`)

// ParseLine parses a line written by FormatLine. day supplies the date for
// Entry.Time; pass the zero time if unknown. Lines that do not match keep
// only Raw.
func ParseLine(line string, day time.Time) Entry {
	entry := Entry{Raw: line}

	m := linePattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return entry
	}
	level, err := ParseLevel(m[1])
	if err != nil {
		return entry
	}
	clock, err := time.Parse(ClockLayout, m[2])
	if err != nil {
		return entry
	}

	loc := day.Location()
	entry.Level = level
	entry.Time = time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
	entry.Message = m[3]
	entry.Valid = true
	return entry
}
