package daylog

import (
	"fmt"

	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
)

// DefaultRetentionDays is how long day files are kept unless configured.
const DefaultRetentionDays = 30

// Config contains logger configuration. Empty fields resolve lazily:
// FolderName to AppName() and Directory to DefaultLogDir(FolderName).
type Config struct {
	// FolderName is the directory name under the local app data root.
	FolderName string
	// Directory is the absolute log directory. It overrides FolderName.
	Directory string
	// RetentionDays is how many days a file is kept; 0 keeps only today.
	// Nil selects DefaultRetentionDays.
	RetentionDays *int
}

// Days returns a pointer to n, for Config.RetentionDays.
func Days(n int) *int {
	return &n
}

// DefaultConfig returns the configuration used when the host sets nothing.
func DefaultConfig() Config {
	return Config{RetentionDays: Days(DefaultRetentionDays)}
}

// retention returns the configured retention or the default.
func (c Config) retention() int {
	if c.RetentionDays == nil {
		return DefaultRetentionDays
	}
	return *c.RetentionDays
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if days := c.retention(); days < 0 {
		return daylogerrors.ConfigError(
			fmt.Sprintf("retention days must be >= 0, got %d", days), nil)
	}
	return nil
}
