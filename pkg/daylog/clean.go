package daylog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
)

// CleanResult reports what a retention pass did.
type CleanResult struct {
	// Deleted lists the names of removed day files.
	Deleted []string
	// Kept counts day files still inside the retention window.
	Kept int
	// Skipped lists files whose names are not dates.
	Skipped []string
}

// Clean deletes day files dated before the expiry threshold. A missing
// directory is not an error. Files that fail to delete are reported in the
// returned error (joined) and do not stop the pass.
func (l *Logger) Clean() (CleanResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.clean(l.locationLocked(), l.now())
}

func (l *Logger) clean(dir string, now time.Time) (CleanResult, error) {
	var res CleanResult

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, nil
		}
		derr := daylogerrors.New(daylogerrors.ErrCodeDirRead, "read log directory", err).
			WithDetail("dir", dir)
		l.diag.Warn("retention cleanup skipped", daylogerrors.LogAttrs(derr)...)
		return res, derr
	}

	threshold := expiryThreshold(now, l.retentionDays)

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		date, ok := FileDate(name, now.Location())
		if !ok {
			res.Skipped = append(res.Skipped, name)
			l.diag.Debug("skipping non-log file", "file", name)
			continue
		}
		if !date.Before(threshold) {
			res.Kept++
			continue
		}

		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			derr := daylogerrors.New(daylogerrors.ErrCodeFileDelete, "remove expired log file", err).
				WithDetail("file", name)
			l.diag.Warn("retention cleanup failed", daylogerrors.LogAttrs(derr)...)
			errs = append(errs, derr)
			continue
		}
		res.Deleted = append(res.Deleted, name)
		l.diag.Debug("removed expired log file", "file", name)
	}

	return res, errors.Join(errs...)
}

// expiryThreshold returns local midnight of now minus days. Files dated
// strictly before it are expired.
func expiryThreshold(now time.Time, days int) time.Time {
	if days < 0 {
		days = 0
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -days)
}
