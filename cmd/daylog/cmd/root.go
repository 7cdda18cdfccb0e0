// Package cmd provides the CLI commands for daylog.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/daylog/internal/config"
	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
	"github.com/Aman-CERP/daylog/internal/logging"
	"github.com/Aman-CERP/daylog/internal/output"
	"github.com/Aman-CERP/daylog/pkg/daylog"
	"github.com/Aman-CERP/daylog/pkg/version"
)

// rootOptions holds persistent flags and the configuration resolved from them.
type rootOptions struct {
	configPath  string
	dir         string
	folder      string
	retention   int
	debug       bool
	errorFormat string

	cfg  *config.Config
	diag *slog.Logger
}

// NewRootCmd creates the root command for the daylog CLI.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "daylog",
		Short: "Write and inspect daily log files",
		Long: `daylog appends leveled, timestamped lines to one file per day
(MM.dd.yy.txt) under the local application data directory, and deletes
day files older than the retention window.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/daylog/config.yaml)
  3. Project config (.daylog.yaml)
  4. Environment variables (DAYLOG_*)
  5. Command flags`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.SetVersionTemplate("daylog version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (replaces user and project config)")
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "Log directory")
	cmd.PersistentFlags().StringVar(&opts.folder, "folder", "", "Folder name under the local app data directory")
	cmd.PersistentFlags().IntVar(&opts.retention, "retention", daylog.DefaultRetentionDays, "Days to keep day files")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Print diagnostics to stderr")
	cmd.PersistentFlags().StringVar(&opts.errorFormat, "error-format", "text", "Error output format: text or json")

	cmd.AddCommand(newWriteCmd(opts))
	cmd.AddCommand(newCleanCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newPathCmd(opts))
	cmd.AddCommand(newTailCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd, opts
}

// Execute runs the root command and reports a failure on stderr in the
// --error-format format.
func Execute() error {
	cmd, opts := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		reportError(cmd.ErrOrStderr(), err, opts.errorFormat)
	}
	return err
}

// ExitCode maps an error to a process exit status: 0 for nil, 2 for
// configuration and validation errors, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch daylogerrors.GetCategory(err) {
	case daylogerrors.CategoryConfig, daylogerrors.CategoryValidation:
		return 2
	default:
		return 1
	}
}

// reportError writes err as JSON when format is "json", else as CLI text.
func reportError(w io.Writer, err error, format string) {
	if strings.EqualFold(format, "json") {
		if data, jerr := daylogerrors.FormatJSON(err); jerr == nil {
			_, _ = fmt.Fprintf(w, "%s\n", data)
			return
		}
	}
	_, _ = fmt.Fprint(w, daylogerrors.FormatForCLI(err))
}

// loadConfig loads the explicit --config file, or the layered configuration
// for the working directory.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, daylogerrors.InternalError("failed to get current directory", err)
	}
	return config.Load(cwd)
}

// resolve loads configuration, applies flags and builds the diagnostic logger.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	if f := strings.ToLower(o.errorFormat); f != "text" && f != "json" {
		return daylogerrors.ValidationError(daylogerrors.ErrCodeConfigInvalid,
			fmt.Sprintf("--error-format must be text or json, got %s", o.errorFormat))
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		dir, err := filepath.Abs(o.dir)
		if err != nil {
			return daylogerrors.ConfigError("invalid --dir", err)
		}
		cfg.Log.Directory = dir
	}
	if flags.Changed("folder") {
		cfg.Log.FolderName = o.folder
	}
	if flags.Changed("retention") {
		cfg.SetRetention(o.retention)
	}
	if o.debug {
		cfg.Diagnostics.Level = "debug"
		cfg.Diagnostics.Stderr = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.diag = logging.Discard()
	if cfg.Diagnostics.Stderr {
		lc := logging.DefaultConfig()
		if o.debug {
			lc = logging.DebugConfig()
		} else {
			lc.Level = cfg.Diagnostics.Level
		}
		lc.Output = cmd.ErrOrStderr()
		lc.JSON = strings.EqualFold(cfg.Diagnostics.Format, "json")
		o.diag = logging.Setup(lc)
	}
	return nil
}

// logger builds a daylog.Logger from the resolved configuration.
func (o *rootOptions) logger() (*daylog.Logger, error) {
	if o.cfg == nil {
		return nil, daylogerrors.InternalError("configuration not resolved", nil)
	}
	l, err := daylog.New(o.cfg.DaylogConfig(), daylog.WithDiagnostics(o.diag))
	if err != nil {
		return nil, err
	}
	o.diag.Debug("logger ready",
		slog.String("dir", l.Location()),
		slog.Int("retention_days", l.RetentionDays()))
	return l, nil
}

// newOutput returns a Writer on the command's stdout, colored on terminals.
func newOutput(cmd *cobra.Command) *output.Writer {
	return output.NewColor(cmd.OutOrStdout(), isTerminal(cmd.OutOrStdout()))
}

// printf writes to the command's stdout. Write errors are ignored for console output.
func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
