package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List day files in the log directory",
		Long: `List day files oldest first with their date and size. Files the next
retention pass would delete are marked "expired".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}
}

func runList(cmd *cobra.Command, opts *rootOptions) error {
	out := newOutput(cmd)

	l, err := opts.logger()
	if err != nil {
		return err
	}

	files, err := l.Files()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		out.Warningf("No day files in %s", l.Location())
		return nil
	}

	threshold := l.ExpiryThreshold()
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		status := ""
		if f.Date.Before(threshold) {
			status = "expired"
		}
		rows = append(rows, []string{
			f.Date.Format("2006-01-02"),
			strconv.FormatInt(f.Size, 10),
			f.Name,
			status,
		})
	}
	out.Table([]string{"DATE", "SIZE", "FILE", "STATUS"}, rows)
	return nil
}
