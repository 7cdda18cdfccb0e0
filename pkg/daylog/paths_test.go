package daylog

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLocalAppDataDir(t *testing.T) {
	switch runtime.GOOS {
	case "windows":
		t.Setenv("LOCALAPPDATA", `C:\Users\me\AppData\Local`)
		if got := LocalAppDataDir(); got != `C:\Users\me\AppData\Local` {
			t.Errorf("LocalAppDataDir() = %s", got)
		}
	case "darwin":
		if got := LocalAppDataDir(); !strings.HasSuffix(got, filepath.Join("Library", "Application Support")) {
			t.Errorf("LocalAppDataDir() = %s", got)
		}
	default:
		t.Setenv("XDG_DATA_HOME", "/srv/data")
		if got := LocalAppDataDir(); got != "/srv/data" {
			t.Errorf("LocalAppDataDir() = %s, want /srv/data", got)
		}

		t.Setenv("XDG_DATA_HOME", "")
		if got := LocalAppDataDir(); !strings.HasSuffix(got, filepath.Join(".local", "share")) {
			t.Errorf("LocalAppDataDir() = %s, want suffix .local/share", got)
		}
	}
}

func TestAppName(t *testing.T) {
	name := AppName()
	if name == "" {
		t.Fatal("AppName returned empty string")
	}
	if strings.ContainsAny(name, `/\`) {
		t.Errorf("AppName should be a base name, got: %s", name)
	}
	if filepath.Ext(name) == ".exe" {
		t.Errorf("AppName should not keep the extension, got: %s", name)
	}
}

func TestDefaultLogDir(t *testing.T) {
	dir := DefaultLogDir("myapp")

	if filepath.Base(dir) != "logs" {
		t.Errorf("DefaultLogDir should end with logs, got: %s", dir)
	}
	if filepath.Base(filepath.Dir(dir)) != "myapp" {
		t.Errorf("DefaultLogDir should contain the folder name, got: %s", dir)
	}
}
