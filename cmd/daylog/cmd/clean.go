package cmd

import (
	"github.com/spf13/cobra"
)

func newCleanCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete day files older than the retention window",
		Long: `Run a retention pass over the log directory. Day files dated before
midnight today minus the retention days are deleted. Files whose names are not
dates are left alone.`,
		Example: `  daylog clean
  daylog clean --retention 7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClean(cmd, opts)
		},
	}
}

func runClean(cmd *cobra.Command, opts *rootOptions) error {
	out := newOutput(cmd)

	l, err := opts.logger()
	if err != nil {
		return err
	}

	result, err := l.Clean()
	for _, name := range result.Deleted {
		out.Status("-", name)
	}
	for _, name := range result.Skipped {
		out.Warningf("Skipped %s (not a day file)", name)
	}
	if err != nil {
		return err
	}

	if len(result.Deleted) == 0 {
		out.Successf("Nothing to delete in %s (%d kept)", l.Location(), result.Kept)
		return nil
	}
	out.Successf("Deleted %d files, kept %d", len(result.Deleted), result.Kept)
	return nil
}
