package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/daylog/configs"
	"github.com/Aman-CERP/daylog/internal/config"
	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage the user configuration file and inspect the effective settings.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/daylog/config.yaml)
  3. Project config (.daylog.yaml)
  4. Environment variables (DAYLOG_*)`,
		Example: `  # Create user config from template
  daylog config init

  # Show effective configuration
  daylog config show

  # Print user config file path
  daylog config path`,
		// Config commands must work when the current configuration is broken.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force, project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file from the template",
		Long: `Create the user configuration file at ~/.config/daylog/config.yaml
(or $XDG_CONFIG_HOME/daylog/config.yaml). With --project, create .daylog.yaml
in the current directory instead.

With --force an existing user config is backed up before it is replaced.`,
		Example: `  daylog config init
  daylog config init --force
  daylog config init --project`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				return runConfigInitProject(cmd, force)
			}
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing configuration")
	cmd.Flags().BoolVar(&project, "project", false, "Create .daylog.yaml in the current directory")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	out := newOutput(cmd)
	configPath := config.GetUserConfigPath()

	if config.UserConfigExists() {
		if !force {
			out.Warning("User configuration already exists")
			out.Statusf("", "Location: %s", configPath)
			out.Status("", "Use --force to replace it (a backup is kept)")
			return nil
		}
		backupPath, err := config.BackupUserConfig()
		if err != nil {
			return err
		}
		out.Statusf("", "Backup: %s", backupPath)
	}

	path, err := config.WriteUserConfig([]byte(configs.UserConfigTemplate))
	if err != nil {
		return err
	}

	out.Success("Created user configuration")
	out.Statusf("", "Location: %s", path)
	return nil
}

func runConfigInitProject(cmd *cobra.Command, force bool) error {
	out := newOutput(cmd)

	cwd, err := os.Getwd()
	if err != nil {
		return daylogerrors.InternalError("failed to get current directory", err)
	}
	path := filepath.Join(cwd, ".daylog.yaml")

	if _, err := os.Stat(path); err == nil && !force {
		out.Warning("Project configuration already exists")
		out.Statusf("", "Location: %s", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(configs.ProjectConfigTemplate), 0o644); err != nil {
		return daylogerrors.New(daylogerrors.ErrCodeFileWrite, "failed to write project config", err)
	}

	out.Success("Created project configuration")
	out.Statusf("", "Location: %s", path)
	return nil
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		source     string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show configuration",
		Long: `Show the effective configuration after merging all sources, or a
single source with --source.`,
		Example: `  daylog config show
  daylog config show --json
  daylog config show --source user`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, opts, jsonOutput, source)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, user, project, defaults")

	return cmd
}

func runConfigShow(cmd *cobra.Command, opts *rootOptions, jsonOutput bool, source string) error {
	out := newOutput(cmd)

	var (
		cfg        *config.Config
		sourceDesc string
		err        error
	)

	switch source {
	case "merged":
		cfg, err = opts.loadConfig()
		if err != nil {
			return err
		}
		sourceDesc = "merged (defaults + user + project + env)"
		if opts.configPath != "" {
			sourceDesc = fmt.Sprintf("merged (defaults + %s + env)", opts.configPath)
		}

	case "user":
		path := config.GetUserConfigPath()
		if !config.UserConfigExists() {
			out.Warning("No user configuration file found")
			out.Statusf("", "Expected at: %s", path)
			out.Status("", "Run 'daylog config init' to create one")
			return nil
		}
		if cfg, err = config.ReadFile(path); err != nil {
			return err
		}
		sourceDesc = fmt.Sprintf("user (%s)", path)

	case "project":
		cwd, err := os.Getwd()
		if err != nil {
			return daylogerrors.InternalError("failed to get current directory", err)
		}
		path := config.ProjectConfigPath(cwd)
		if path == "" {
			out.Warning("No project configuration file found")
			out.Statusf("", "Expected at: %s", filepath.Join(cwd, ".daylog.yaml"))
			return nil
		}
		if cfg, err = config.ReadFile(path); err != nil {
			return err
		}
		sourceDesc = fmt.Sprintf("project (%s)", path)

	case "defaults":
		cfg = config.NewConfig()
		sourceDesc = "defaults (hardcoded)"

	default:
		return daylogerrors.ValidationError(daylogerrors.ErrCodeConfigInvalid,
			fmt.Sprintf("invalid source: %s (use: merged, user, project, defaults)", source))
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return daylogerrors.InternalError("failed to marshal config", err)
	}
	out.Statusf("#", "source: %s", sourceDesc)
	out.Newline()
	printf(cmd, "%s", data)
	return nil
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printf(cmd, "%s\n", config.GetUserConfigPath())
			return nil
		},
	}
}
