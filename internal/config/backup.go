package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
)

const (
	// MaxBackups is how many user config backups are retained.
	MaxBackups = 3

	// BackupSuffix precedes the timestamp in backup file names.
	BackupSuffix = ".bak"

	backupStampLayout = "20060102-150405"
)

// BackupUserConfig copies the user config to config.yaml.bak.<timestamp>
// and prunes older backups. Returns "" when there is nothing to back up.
func BackupUserConfig() (string, error) {
	return backupUserConfigAt(time.Now())
}

func backupUserConfigAt(now time.Time) (string, error) {
	configPath := GetUserConfigPath()
	if !UserConfigExists() {
		return "", nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", daylogerrors.New(daylogerrors.ErrCodeFileOpen,
			"failed to read config for backup", err)
	}

	backupPath := fmt.Sprintf("%s%s.%s", configPath, BackupSuffix, now.Format(backupStampLayout))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", daylogerrors.New(daylogerrors.ErrCodeFileWrite,
			"failed to write config backup", err)
	}

	// Pruning is best-effort; the backup itself succeeded.
	_ = pruneBackups()

	return backupPath, nil
}

// ListUserConfigBackups returns user config backups, newest first.
func ListUserConfigBackups() ([]string, error) {
	configPath := GetUserConfigPath()
	dir := filepath.Dir(configPath)
	prefix := filepath.Base(configPath) + BackupSuffix + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, daylogerrors.New(daylogerrors.ErrCodeDirRead,
			"failed to list config directory", err)
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		backups = append(backups, filepath.Join(dir, entry.Name()))
	}

	// The timestamp suffix sorts lexically in time order.
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}

// pruneBackups removes all but the newest MaxBackups backups.
func pruneBackups() error {
	backups, err := ListUserConfigBackups()
	if err != nil {
		return err
	}
	if len(backups) <= MaxBackups {
		return nil
	}

	var errs []error
	for _, backup := range backups[MaxBackups:] {
		if err := os.Remove(backup); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return daylogerrors.New(daylogerrors.ErrCodeFileDelete,
			fmt.Sprintf("failed to remove %d old backups", len(errs)), errs[0])
	}
	return nil
}

// WriteUserConfig writes data to the user config path, creating its directory.
func WriteUserConfig(data []byte) (string, error) {
	path := GetUserConfigPath()
	if err := os.MkdirAll(GetUserConfigDir(), 0o755); err != nil {
		return "", daylogerrors.New(daylogerrors.ErrCodeDirCreate,
			"failed to create config directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", daylogerrors.New(daylogerrors.ErrCodeFileWrite,
			"failed to write user config", err)
	}
	return path, nil
}
