// Package config loads daylog host configuration from YAML files and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
	"github.com/Aman-CERP/daylog/internal/logging"
	"github.com/Aman-CERP/daylog/pkg/daylog"
)

// Config is the top-level configuration.
type Config struct {
	Log         LogConfig         `yaml:"log" json:"log"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics" json:"diagnostics"`
}

// LogConfig configures where day files go and how long they are kept.
type LogConfig struct {
	// FolderName is the directory under the local app data root.
	// Empty means the host executable name.
	FolderName string `yaml:"folder_name,omitempty" json:"folder_name,omitempty"`

	// Directory is an absolute log directory; it overrides FolderName.
	Directory string `yaml:"directory,omitempty" json:"directory,omitempty"`

	// RetentionDays is a pointer so an explicit 0 (keep only today) survives merging.
	RetentionDays *int `yaml:"retention_days,omitempty" json:"retention_days,omitempty"`
}

// DiagnosticsConfig configures the diagnostic slog output.
type DiagnosticsConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // text or json
	Stderr bool   `yaml:"stderr" json:"stderr"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	retention := daylog.DefaultRetentionDays
	return &Config{
		Log: LogConfig{
			RetentionDays: &retention,
		},
		Diagnostics: DiagnosticsConfig{
			Level:  "warn",
			Format: "text",
			Stderr: false,
		},
	}
}

// Retention returns the configured retention in days.
func (c *Config) Retention() int {
	if c.Log.RetentionDays == nil {
		return daylog.DefaultRetentionDays
	}
	return *c.Log.RetentionDays
}

// SetRetention sets the retention in days.
func (c *Config) SetRetention(days int) {
	c.Log.RetentionDays = &days
}

// DaylogConfig converts to the library configuration.
func (c *Config) DaylogConfig() daylog.Config {
	return daylog.Config{
		FolderName:    c.Log.FolderName,
		Directory:     c.Log.Directory,
		RetentionDays: daylog.Days(c.Retention()),
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/daylog/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/daylog/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "daylog", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "daylog", "config.yaml")
	}
	return filepath.Join(home, ".config", "daylog", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// ProjectConfigPath returns the project config file in dir, preferring
// .daylog.yaml over .daylog.yml. Empty if neither exists.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{".daylog.yaml", ".daylog.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// Load loads configuration for the given directory.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/daylog/config.yaml)
//  3. Project config (.daylog.yaml in dir)
//  4. Environment variables (DAYLOG_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if path := GetUserConfigPath(); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if path := ProjectConfigPath(dir); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads defaults, then path, then environment overrides. Used for
// an explicit --config file, which replaces the user and project files.
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()

	if !fileExists(path) {
		return nil, daylogerrors.New(daylogerrors.ErrCodeConfigNotFound,
			"config file not found: "+path, nil)
	}
	if err := cfg.loadYAML(path); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile returns defaults merged with path alone, without environment
// overrides or validation.
func ReadFile(path string) (*Config, error) {
	cfg := NewConfig()
	if err := cfg.loadYAML(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return daylogerrors.ConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return daylogerrors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges values set in other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Log.FolderName != "" {
		c.Log.FolderName = other.Log.FolderName
	}
	if other.Log.Directory != "" {
		c.Log.Directory = other.Log.Directory
	}
	if other.Log.RetentionDays != nil {
		days := *other.Log.RetentionDays
		c.Log.RetentionDays = &days
	}

	if other.Diagnostics.Level != "" {
		c.Diagnostics.Level = other.Diagnostics.Level
	}
	if other.Diagnostics.Format != "" {
		c.Diagnostics.Format = other.Diagnostics.Format
	}
	if other.Diagnostics.Stderr {
		c.Diagnostics.Stderr = true
	}
}

// applyEnvOverrides applies DAYLOG_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DAYLOG_FOLDER_NAME"); v != "" {
		c.Log.FolderName = v
	}
	if v := os.Getenv("DAYLOG_DIRECTORY"); v != "" {
		c.Log.Directory = v
	}
	if v := os.Getenv("DAYLOG_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.SetRetention(days)
		}
	}
	if v := os.Getenv("DAYLOG_DIAG_LEVEL"); v != "" {
		c.Diagnostics.Level = v
		c.Diagnostics.Stderr = true
	}
	if v := os.Getenv("DAYLOG_DIAG_FORMAT"); v != "" {
		c.Diagnostics.Format = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Retention() < 0 {
		return daylogerrors.ConfigError(
			fmt.Sprintf("log.retention_days must be >= 0, got %d", c.Retention()), nil)
	}
	if c.Log.Directory != "" && !filepath.IsAbs(c.Log.Directory) {
		return daylogerrors.ConfigError(
			fmt.Sprintf("log.directory must be an absolute path, got %s", c.Log.Directory), nil).
			WithSuggestion("use a full path such as /var/tmp/myapp/logs")
	}
	if strings.ContainsAny(c.Log.FolderName, `/\`) {
		return daylogerrors.ConfigError(
			fmt.Sprintf("log.folder_name must be a single path element, got %s", c.Log.FolderName), nil)
	}
	if !logging.ValidLevel(c.Diagnostics.Level) {
		return daylogerrors.ConfigError(
			fmt.Sprintf("diagnostics.level must be debug, info, warn or error, got %s", c.Diagnostics.Level), nil)
	}
	if !logging.ValidFormat(c.Diagnostics.Format) {
		return daylogerrors.ConfigError(
			fmt.Sprintf("diagnostics.format must be text or json, got %s", c.Diagnostics.Format), nil)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// fileExists checks if a regular file exists.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
