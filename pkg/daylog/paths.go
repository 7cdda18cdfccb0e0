package daylog

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultFolderName is used when the host executable name cannot be determined.
const DefaultFolderName = "daylog"

// LocalAppDataDir returns the per-user, non-roaming application data root:
//   - Windows: %LOCALAPPDATA% (or ~/AppData/Local)
//   - macOS: ~/Library/Application Support
//   - others: $XDG_DATA_HOME (or ~/.local/share)
//
// Falls back to the temp directory if the home directory is unavailable.
func LocalAppDataDir() string {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir
		}
		return homeJoin("AppData", "Local")
	case "darwin":
		return homeJoin("Library", "Application Support")
	default:
		if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
			return xdg
		}
		return homeJoin(".local", "share")
	}
}

func homeJoin(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(append([]string{home}, elem...)...)
}

// AppName returns the running executable's base name without its extension.
func AppName() string {
	exe, err := os.Executable()
	if err != nil || exe == "" {
		if len(os.Args) == 0 || os.Args[0] == "" {
			return DefaultFolderName
		}
		exe = os.Args[0]
	}
	base := filepath.Base(exe)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" && name != "." {
		return name
	}
	return DefaultFolderName
}

// DefaultLogDir returns <LocalAppDataDir>/<folderName>/logs.
func DefaultLogDir(folderName string) string {
	return filepath.Join(LocalAppDataDir(), folderName, "logs")
}
