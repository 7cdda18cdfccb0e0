package cmd

import (
	"github.com/spf13/cobra"
)

func newPathCmd(opts *rootOptions) *cobra.Command {
	var fileOnly bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the log directory and today's file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := opts.logger()
			if err != nil {
				return err
			}
			if fileOnly {
				printf(cmd, "%s\n", l.FilePath())
				return nil
			}
			printf(cmd, "%s\n%s\n", l.Location(), l.FilePath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&fileOnly, "file", false, "Print only today's file path")

	return cmd
}
