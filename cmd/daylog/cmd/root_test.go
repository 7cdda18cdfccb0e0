package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
	"github.com/Aman-CERP/daylog/pkg/daylog"
)

// syncBuffer is a bytes.Buffer safe for the follower goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// isolateEnv gives the test an empty user config, no DAYLOG_* variables and
// a working directory without project config.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"DAYLOG_FOLDER_NAME", "DAYLOG_DIRECTORY", "DAYLOG_RETENTION_DAYS", "DAYLOG_DIAG_LEVEL", "DAYLOG_DIAG_FORMAT"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func todayFile(dir string) string {
	return filepath.Join(dir, daylog.FileNameFor(time.Now()))
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func touchDayFile(t *testing.T, dir string, daysAgo int) string {
	t.Helper()
	name := daylog.FileNameFor(time.Now().AddDate(0, 0, -daysAgo))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("Debug     :  00:00:00:  old\n"), 0o644))
	return name
}

func TestRoot_Help(t *testing.T) {
	isolateEnv(t)

	out, _, err := runCLI(t, "", "--help")
	require.NoError(t, err)
	for _, sub := range []string{"write", "clean", "list", "path", "tail", "config", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestRoot_MissingConfigFile(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCLI(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "path")
	require.Error(t, err)
	assert.Equal(t, daylogerrors.ErrCodeConfigNotFound, daylogerrors.GetCode(err))
}

func TestRoot_NegativeRetentionRejected(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCLI(t, "", "--dir", t.TempDir(), "--retention=-1", "clean")
	require.Error(t, err)
	assert.Equal(t, daylogerrors.ErrCodeConfigInvalid, daylogerrors.GetCode(err))
}

func TestRoot_ConfigFileSetsDirectory(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "daylog.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  directory: "+dir+"\n"), 0o644))

	out, _, err := runCLI(t, "", "--config", cfgPath, "path")
	require.NoError(t, err)
	assert.Equal(t, dir+"\n"+todayFile(dir)+"\n", out)
}

func TestRoot_DirFlagOverridesEnv(t *testing.T) {
	isolateEnv(t)
	envDir, flagDir := t.TempDir(), t.TempDir()
	t.Setenv("DAYLOG_DIRECTORY", envDir)

	out, _, err := runCLI(t, "", "--dir", flagDir, "path", "--file")
	require.NoError(t, err)
	assert.Equal(t, todayFile(flagDir)+"\n", out)
}

func TestRoot_RelativeDirMadeAbsolute(t *testing.T) {
	isolateEnv(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	out, _, err := runCLI(t, "", "--dir", "logs", "path")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, filepath.Join(cwd, "logs")+"\n"), out)
}

func TestWrite_Args(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	_, _, err := runCLI(t, "", "--dir", dir, "write", "--level", "error", "disk", "full")
	require.NoError(t, err)

	lines := readLines(t, todayFile(dir))
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Error     :  "), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], ":  disk full"), lines[0])
}

func TestWrite_Stdin(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	_, _, err := runCLI(t, "first\n\n  \nsecond\r\n", "--dir", dir, "write", "--level", "warn")
	require.NoError(t, err)

	lines := readLines(t, todayFile(dir))
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], ":  first"))
	assert.True(t, strings.HasSuffix(lines[1], ":  second"))
	assert.True(t, strings.HasPrefix(lines[1], "Warning   :  "))
}

func TestWrite_InvalidLevel(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCLI(t, "", "--dir", t.TempDir(), "write", "--level", "loud", "x")
	require.Error(t, err)
	assert.Equal(t, daylogerrors.ErrCodeInvalidLevel, daylogerrors.GetCode(err))
}

func TestWrite_DebugEmitsDiagnostics(t *testing.T) {
	isolateEnv(t)

	_, stderr, err := runCLI(t, "", "--dir", t.TempDir(), "--debug", "write", "traced message")
	require.NoError(t, err)
	assert.Contains(t, stderr, "traced message")
}

func TestWrite_CleansExpiredFiles(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	old := touchDayFile(t, dir, 40)

	_, _, err := runCLI(t, "", "--dir", dir, "write", "hello")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, old))
	assert.FileExists(t, todayFile(dir))
}

func TestClean(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	old := touchDayFile(t, dir, 40)
	recent := touchDayFile(t, dir, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))

	out, _, err := runCLI(t, "", "--dir", dir, "clean")
	require.NoError(t, err)

	assert.Contains(t, out, old)
	assert.Contains(t, out, "Skipped notes.md")
	assert.Contains(t, out, "Deleted 1 files, kept 1")
	assert.NoFileExists(t, filepath.Join(dir, old))
	assert.FileExists(t, filepath.Join(dir, recent))
	assert.FileExists(t, filepath.Join(dir, "notes.md"))
}

func TestClean_ZeroRetentionKeepsOnlyToday(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	yesterday := touchDayFile(t, dir, 1)
	today := touchDayFile(t, dir, 0)

	_, _, err := runCLI(t, "", "--dir", dir, "--retention", "0", "clean")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, yesterday))
	assert.FileExists(t, filepath.Join(dir, today))
}

func TestClean_MissingDirectory(t *testing.T) {
	isolateEnv(t)
	dir := filepath.Join(t.TempDir(), "never-created")

	out, _, err := runCLI(t, "", "--dir", dir, "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to delete")
	assert.NoDirExists(t, dir)
}

func TestList(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	old := touchDayFile(t, dir, 40)
	today := touchDayFile(t, dir, 0)

	out, _, err := runCLI(t, "", "--dir", dir, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "DATE"))
	assert.Contains(t, lines[1], old)
	assert.True(t, strings.HasSuffix(lines[1], "expired"), lines[1])
	assert.Contains(t, lines[2], today)
	assert.NotContains(t, lines[2], "expired")
}

func TestList_Empty(t *testing.T) {
	isolateEnv(t)

	out, _, err := runCLI(t, "", "--dir", t.TempDir(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No day files")
}

func TestTail(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	for _, args := range [][]string{
		{"--level", "debug", "one"},
		{"--level", "error", "two"},
		{"--level", "warning", "three"},
	} {
		_, _, err := runCLI(t, "", append([]string{"--dir", dir, "write"}, args...)...)
		require.NoError(t, err)
	}

	out, _, err := runCLI(t, "", "--dir", dir, "tail", "-n", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.Contains(t, out, "three")
	assert.NotContains(t, out, "\x1b[", "no color when stdout is not a terminal")

	out, _, err = runCLI(t, "", "--dir", dir, "tail", "--level", "error")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "two")

	out, _, err = runCLI(t, "", "--dir", dir, "tail", "--filter", "^Warn")
	require.NoError(t, err)
	assert.Contains(t, out, "three")
	assert.NotContains(t, out, "two")
}

func TestTail_NewestFileWhenTodayMissing(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	touchDayFile(t, dir, 3)

	out, _, err := runCLI(t, "", "--dir", dir, "tail")
	require.NoError(t, err)
	assert.Contains(t, out, "old")
}

func TestTail_Errors(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCLI(t, "", "--dir", t.TempDir(), "tail")
	require.Error(t, err)
	assert.Equal(t, daylogerrors.ErrCodeFileOpen, daylogerrors.GetCode(err))

	_, _, err = runCLI(t, "", "--dir", t.TempDir(), "tail", "--filter", "([")
	require.Error(t, err)
	assert.Equal(t, daylogerrors.ErrCodeInvalidPattern, daylogerrors.GetCode(err))

	_, _, err = runCLI(t, "", "--dir", t.TempDir(), "tail", "--level", "verbose")
	require.Error(t, err)
	assert.Equal(t, daylogerrors.ErrCodeInvalidLevel, daylogerrors.GetCode(err))
}

func TestTail_Follow(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	l, err := daylog.New(daylog.Config{Directory: dir})
	require.NoError(t, err)
	require.NoError(t, l.Write("before", daylog.LevelDebug))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := NewRootCmd()
	stdout := &syncBuffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dir", dir, "tail", "-f", "-n", "0"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	assert.Eventually(t, func() bool {
		_ = l.Write("after", daylog.LevelCritical)
		return strings.Contains(stdout.String(), "after")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("tail -f did not stop after cancel")
	}
	assert.NotContains(t, stdout.String(), "before")
}

func TestRoot_InvalidErrorFormat(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCLI(t, "", "--error-format", "xml", "--dir", t.TempDir(), "path")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestReportError(t *testing.T) {
	err := daylogerrors.New(daylogerrors.ErrCodeFileOpen, "open log file", os.ErrPermission).
		WithDetail("path", "/var/log/x.txt")

	var text bytes.Buffer
	reportError(&text, err, "text")
	assert.Contains(t, text.String(), "Error: open log file")
	assert.Contains(t, text.String(), "Code: "+daylogerrors.ErrCodeFileOpen)

	var js bytes.Buffer
	reportError(&js, err, "json")
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, daylogerrors.ErrCodeFileOpen, decoded["code"])
	assert.Equal(t, "IO", decoded["category"])
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"config", daylogerrors.ConfigError("bad", nil), 2},
		{"validation", daylogerrors.ValidationError(daylogerrors.ErrCodeInvalidLevel, "bad level"), 2},
		{"io", daylogerrors.New(daylogerrors.ErrCodeFileWrite, "write", nil), 1},
		{"plain", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestWrite_JSONDiagnostics(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DAYLOG_DIAG_FORMAT", "json")

	_, stderr, err := runCLI(t, "", "--dir", t.TempDir(), "--debug", "write", "structured")
	require.NoError(t, err)

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record), line)
		if msg, _ := record["msg"].(string); strings.HasSuffix(msg, ":  structured") {
			found = true
			assert.Equal(t, "DEBUG", record["level"])
		}
	}
	assert.True(t, found, stderr)
}

func TestTail_FollowFileStaysOnThatFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	older := filepath.Join(dir, touchDayFile(t, dir, 3))

	l, err := daylog.New(daylog.Config{Directory: dir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := NewRootCmd()
	stdout := &syncBuffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dir", dir, "tail", "--file", older, "-f", "-n", "0"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	assert.Eventually(t, func() bool {
		_ = l.Write("today line", daylog.LevelDebug)
		f, err := os.OpenFile(older, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return false
		}
		_, _ = f.WriteString("Error     :  12:00:00:  older line\n")
		_ = f.Close()
		return strings.Contains(stdout.String(), "older line")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("tail -f did not stop after cancel")
	}
	assert.NotContains(t, stdout.String(), "today line")
}
