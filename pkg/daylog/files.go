package daylog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
)

// DayFile describes one day file in a log directory.
type DayFile struct {
	Name string
	Path string
	Date time.Time
	Size int64
}

// ListFiles returns the day files in dir, oldest first. Entries whose names
// are not dates are ignored. A missing directory yields no files.
func ListFiles(dir string, loc *time.Location) ([]DayFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, daylogerrors.New(daylogerrors.ErrCodeDirRead, "read log directory", err).
			WithDetail("dir", dir)
	}

	var files []DayFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		date, ok := FileDate(entry.Name(), loc)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, DayFile{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Date: date,
			Size: info.Size(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Date.Before(files[j].Date)
	})
	return files, nil
}

// Files lists the day files in the logger's directory.
func (l *Logger) Files() ([]DayFile, error) {
	return ListFiles(l.Location(), l.now().Location())
}
