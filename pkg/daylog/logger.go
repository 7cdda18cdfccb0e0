package daylog

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
)

// Logger appends lines to the current day file and enforces retention.
//
// A Logger serializes its own calls; it does not coordinate with other
// processes writing to the same directory.
type Logger struct {
	mu            sync.Mutex
	folderName    string
	location      string
	retentionDays int

	now  func() time.Time
	diag *slog.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock replaces time.Now. Tests use it to pin "today".
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithDiagnostics sets the sink for trace output and swallowed failures.
// By default diagnostics are discarded.
func WithDiagnostics(diag *slog.Logger) Option {
	return func(l *Logger) {
		if diag != nil {
			l.diag = diag
		}
	}
}

// New creates a Logger. Empty values in cfg take their defaults.
func New(cfg Config, opts ...Option) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Logger{
		folderName:    cfg.FolderName,
		location:      cfg.Directory,
		retentionDays: cfg.retention(),
		now:           time.Now,
		diag:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// FolderName returns the configured folder name, or the host app name.
func (l *Logger) FolderName() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.folderNameLocked()
}

// SetFolderName sets the folder name used for the default location.
func (l *Logger) SetFolderName(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.folderName = name
}

// Location returns the log directory.
func (l *Logger) Location() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locationLocked()
}

// SetLocation sets the log directory. An empty path restores the default.
func (l *Logger) SetLocation(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.location = dir
}

// RetentionDays returns how many days day files are kept.
func (l *Logger) RetentionDays() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.retentionDays
}

// SetRetentionDays sets the retention window. Negative values act as zero.
func (l *Logger) SetRetentionDays(days int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.retentionDays = days
}

// FileName returns today's file name.
func (l *Logger) FileName() string {
	return FileNameFor(l.now())
}

// FilePath returns the full path of today's file.
func (l *Logger) FilePath() string {
	return filepath.Join(l.Location(), l.FileName())
}

// ExpiryThreshold returns the date before which day files are deleted.
func (l *Logger) ExpiryThreshold() time.Time {
	return expiryThreshold(l.now(), l.RetentionDays())
}

func (l *Logger) folderNameLocked() string {
	if l.folderName != "" {
		return l.folderName
	}
	return AppName()
}

func (l *Logger) locationLocked() string {
	if l.location != "" {
		return l.location
	}
	return DefaultLogDir(l.folderNameLocked())
}

// Log writes message at level and never fails; errors are sent to the
// diagnostic logger only.
func (l *Logger) Log(message string, level Level) {
	if err := l.Write(message, level); err != nil {
		l.diag.Warn("log write failed", daylogerrors.LogAttrs(err)...)
	}
}

// Write runs a retention pass and appends one line to today's file.
// Nothing is written if the directory cannot be created.
func (l *Logger) Write(message string, level Level) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	dir := l.locationLocked()

	// Cleanup failures are reported by clean itself and never block the write.
	_, _ = l.clean(dir, now)

	line := FormatLine(level, now, message)
	l.diag.Debug(line)

	if err := ensureDir(dir); err != nil {
		return err
	}
	return appendLine(filepath.Join(dir, FileNameFor(now)), line)
}

func ensureDir(dir string) error {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return nil
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return daylogerrors.New(daylogerrors.ErrCodeDirCreate, "stat log directory", err).
			WithDetail("dir", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return daylogerrors.New(daylogerrors.ErrCodeDirCreate, "create log directory", err).
			WithDetail("dir", dir).
			WithSuggestion("point the log location at a writable directory")
	}
	return nil
}

// appendLine opens path in append mode, writes line plus a terminator and
// closes the file on every path.
func appendLine(path, line string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return daylogerrors.New(daylogerrors.ErrCodeFileOpen, "open log file", err).
			WithDetail("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = daylogerrors.New(daylogerrors.ErrCodeFileWrite, "close log file", cerr).
				WithDetail("path", path)
		}
	}()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return daylogerrors.New(daylogerrors.ErrCodeFileWrite, "write log file", err).
			WithDetail("path", path)
	}
	return nil
}
