package cmd

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
	"github.com/Aman-CERP/daylog/pkg/daylog"
)

func newWriteCmd(opts *rootOptions) *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "write [message...]",
		Short: "Append a message to today's log file",
		Long: `Append a message to today's day file. The arguments are joined with
spaces. Without arguments, each non-empty line read from stdin is written as
its own entry.

Every write first deletes day files older than the retention window.`,
		Example: `  daylog write "service started"
  daylog write --level error "disk full"
  journalctl -n 20 | daylog write --level warning`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, opts, level, args)
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "debug", "Level: debug, warning, error, critical")

	return cmd
}

func runWrite(cmd *cobra.Command, opts *rootOptions, levelName string, args []string) error {
	level, err := daylog.ParseLevel(levelName)
	if err != nil {
		return err
	}

	l, err := opts.logger()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return l.Write(strings.Join(args, " "), level)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := l.Write(line, level); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return daylogerrors.InternalError("failed to read stdin", err)
	}
	return nil
}
