package daylog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ViewerConfig configures the log viewer.
type ViewerConfig struct {
	MinLevel Level          // Drop entries below this level
	Pattern  *regexp.Regexp // Keep only lines matching this pattern
	NoColor  bool           // Disable colors
	Location *time.Location // Zone for file dates; time.Local when nil
}

// Viewer reads day files back.
type Viewer struct {
	config ViewerConfig
	out    io.Writer
}

// NewViewer creates a new log viewer.
func NewViewer(cfg ViewerConfig, out io.Writer) *Viewer {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Viewer{
		config: cfg,
		out:    out,
	}
}

// Cursor is a byte position in a day file.
type Cursor struct {
	Path   string
	Offset int64
}

// Tail reads the last n lines from a day file and returns matching entries.
func (v *Viewer) Tail(path string, n int) ([]Entry, error) {
	entries, _, err := v.TailCursor(path, n)
	return entries, err
}

// TailCursor is Tail that also returns the position just past the last
// complete line read, so Follow can continue without gaps. A trailing line
// without its terminator is left for the follower.
func (v *Viewer) TailCursor(path string, n int) ([]Entry, Cursor, error) {
	cur := Cursor{Path: filepath.Clean(path)}

	file, err := os.Open(path)
	if err != nil {
		return nil, cur, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	reader := bufio.NewReaderSize(file, 64*1024)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, cur, fmt.Errorf("failed to read log file: %w", err)
		}
		cur.Offset += int64(len(line))
		lines = append(lines, strings.TrimRight(line, "\r\n"))
	}

	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	day, _ := FileDate(path, v.config.Location)
	var entries []Entry
	for _, line := range lines {
		entry := ParseLine(line, day)
		if v.matchesFilter(entry) {
			entries = append(entries, entry)
		}
	}
	return entries, cur, nil
}

// FollowOptions controls where Follow starts and whether it changes files.
type FollowOptions struct {
	// From is the starting position. Zero means the end of the newest day file.
	From Cursor
	// Pinned keeps Follow on From.Path when newer day files appear.
	Pinned bool
}

// Follow watches dir and sends lines appended to the day file being
// followed. Unless pinned, it switches to a newer day file when one appears
// and reads it from the start. A followed file that is recreated is reread
// from the start. Blocks until ctx is cancelled.
func (v *Viewer) Follow(ctx context.Context, dir string, opts FollowOptions, entries chan<- Entry) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	t := &tailFile{}
	defer t.close()

	pinned := ""
	if opts.Pinned && opts.From.Path != "" {
		pinned = filepath.Clean(opts.From.Path)
	}

	if err := v.openStart(t, dir, opts.From, pinned != ""); err != nil {
		return err
	}
	if t.file != nil {
		// Lines written between the cursor and now.
		if err := v.drain(ctx, t, entries); err != nil {
			return nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			path := filepath.Clean(event.Name)
			if pinned != "" && path != pinned {
				continue
			}
			date, isDayFile := FileDate(path, v.config.Location)
			if !isDayFile && pinned == "" {
				continue
			}

			newer := pinned == "" && date.After(t.date)
			recreated := path == t.path && event.Has(fsnotify.Create)
			if t.file == nil || newer || recreated {
				t.close()
				if err := t.open(path, date, 0); err != nil {
					// Removed between the event and the open.
					continue
				}
			}
			if path != t.path {
				continue
			}
			if err := v.drain(ctx, t, entries); err != nil {
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
}

// openStart opens the file Follow begins with: from's file at its offset,
// else the newest day file at its end. If from's file is missing, a pinned
// follow waits for it to be created; otherwise it falls back to the newest
// day file.
func (v *Viewer) openStart(t *tailFile, dir string, from Cursor, pinned bool) error {
	if from.Path != "" {
		date, _ := FileDate(from.Path, v.config.Location)
		if err := t.open(from.Path, date, from.Offset); err == nil || pinned {
			return nil
		}
	}

	files, err := ListFiles(dir, v.config.Location)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}
	newest := files[len(files)-1]
	return t.open(newest.Path, newest.Date, -1)
}

// drain sends every complete line available in t. It returns ctx.Err() if
// the context ends while sending.
func (v *Viewer) drain(ctx context.Context, t *tailFile, entries chan<- Entry) error {
	for {
		chunk, err := t.reader.ReadString('\n')
		t.pending += chunk
		if err != nil {
			// io.EOF: wait for the next write event.
			return nil
		}

		line := strings.TrimRight(t.pending, "\r\n")
		t.pending = ""
		if line == "" {
			continue
		}

		entry := ParseLine(line, t.date)
		if !v.matchesFilter(entry) {
			continue
		}
		select {
		case entries <- entry:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// tailFile is the day file currently being followed.
type tailFile struct {
	path    string
	date    time.Time
	file    *os.File
	reader  *bufio.Reader
	pending string // partial line awaiting its terminator
}

// open opens path and positions it at offset; a negative offset means the
// end of the file.
func (t *tailFile) open(path string, date time.Time, offset int64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	whence := io.SeekStart
	if offset < 0 {
		offset, whence = 0, io.SeekEnd
	}
	if _, err := f.Seek(offset, whence); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to seek log file: %w", err)
	}
	t.path = filepath.Clean(path)
	t.date = date
	t.file = f
	t.reader = bufio.NewReader(f)
	t.pending = ""
	return nil
}

func (t *tailFile) close() {
	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
		t.reader = nil
	}
}

// FormatEntry formats an entry for display.
func (v *Viewer) FormatEntry(entry Entry) string {
	if !entry.Valid {
		return entry.Raw
	}

	level := fmt.Sprintf("%-8s", entry.Level)
	if !v.config.NoColor {
		level = styleLevel(entry.Level, level)
	}
	return fmt.Sprintf("%s %s %s", entry.Time.Format(ClockLayout), level, entry.Message)
}

// Print prints entries to the output.
func (v *Viewer) Print(entries []Entry) {
	for _, entry := range entries {
		_, _ = fmt.Fprintln(v.out, v.FormatEntry(entry))
	}
}

// matchesFilter checks if an entry matches the configured filters. Lines
// that are not in the log format only pass when no level filter is set.
func (v *Viewer) matchesFilter(entry Entry) bool {
	if v.config.MinLevel > LevelDebug {
		if !entry.Valid || entry.Level < v.config.MinLevel {
			return false
		}
	}
	if v.config.Pattern != nil && !v.config.Pattern.MatchString(entry.Raw) {
		return false
	}
	return true
}
