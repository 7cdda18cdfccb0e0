package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	daylogerrors "github.com/Aman-CERP/daylog/internal/errors"
	"github.com/Aman-CERP/daylog/pkg/daylog"
)

type tailOptions struct {
	lines   int
	follow  bool
	level   string
	filter  string
	noColor bool
	file    string
}

func newTailCmd(opts *rootOptions) *cobra.Command {
	var topts tailOptions

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show the last lines of the current day file",
		Long: `Show the last lines of today's day file, or of the newest day file when
today has none. Use -f to keep printing lines as they are written; following
switches to the next day's file when it appears.`,
		Example: `  daylog tail
  daylog tail -n 100
  daylog tail -f --level warning
  daylog tail --filter "disk|network"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTail(cmd, opts, topts)
		},
	}

	cmd.Flags().IntVarP(&topts.lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().BoolVarP(&topts.follow, "follow", "f", false, "Follow new lines (like tail -f)")
	cmd.Flags().StringVar(&topts.level, "level", "", "Minimum level: debug, warning, error, critical")
	cmd.Flags().StringVar(&topts.filter, "filter", "", "Keep lines matching this regular expression")
	cmd.Flags().BoolVar(&topts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&topts.file, "file", "", "Day file to read instead of the current one")

	return cmd
}

func runTail(cmd *cobra.Command, opts *rootOptions, topts tailOptions) error {
	vcfg := daylog.ViewerConfig{
		NoColor: topts.noColor || !isTerminal(cmd.OutOrStdout()),
	}
	if topts.level != "" {
		level, err := daylog.ParseLevel(topts.level)
		if err != nil {
			return err
		}
		vcfg.MinLevel = level
	}
	if topts.filter != "" {
		pattern, err := regexp.Compile(topts.filter)
		if err != nil {
			return daylogerrors.ValidationError(daylogerrors.ErrCodeInvalidPattern,
				"invalid filter pattern: "+err.Error())
		}
		vcfg.Pattern = pattern
	}

	l, err := opts.logger()
	if err != nil {
		return err
	}
	viewer := daylog.NewViewer(vcfg, cmd.OutOrStdout())

	dir := l.Location()
	path := topts.file
	if path != "" {
		dir = filepath.Dir(path)
	} else {
		path, err = currentFile(l)
		if err != nil {
			return err
		}
	}

	var fopts daylog.FollowOptions
	if path != "" {
		entries, cur, err := viewer.TailCursor(path, topts.lines)
		if err != nil {
			return daylogerrors.New(daylogerrors.ErrCodeFileOpen, "failed to read day file", err).
				WithDetail("file", path)
		}
		viewer.Print(entries)
		fopts = daylog.FollowOptions{From: cur, Pinned: topts.file != ""}
	} else if !topts.follow {
		return daylogerrors.New(daylogerrors.ErrCodeFileOpen, "no day files in "+dir, nil).
			WithSuggestion("write an entry first: daylog write \"hello\"")
	}

	if !topts.follow {
		return nil
	}
	return follow(cmd.Context(), viewer, dir, fopts, cmd.OutOrStdout())
}

// currentFile returns today's file if it exists, else the newest day file,
// else "".
func currentFile(l *daylog.Logger) (string, error) {
	if _, err := os.Stat(l.FilePath()); err == nil {
		return l.FilePath(), nil
	}
	files, err := l.Files()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", nil
	}
	return files[len(files)-1].Path, nil
}

// follow streams new entries from dir until interrupted, starting at opts.
// The watcher and the printer run in one errgroup so either failing stops
// both.
func follow(ctx context.Context, viewer *daylog.Viewer, dir string, opts daylog.FollowOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return daylogerrors.New(daylogerrors.ErrCodeDirCreate, "failed to create log directory", err).
			WithDetail("dir", dir)
	}

	entries := make(chan daylog.Entry, 100)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(entries)
		return viewer.Follow(gctx, dir, opts, entries)
	})
	g.Go(func() error {
		for entry := range entries {
			if _, err := io.WriteString(out, viewer.FormatEntry(entry)+"\n"); err != nil {
				return daylogerrors.InternalError("failed to write output", err)
			}
		}
		return nil
	})

	return g.Wait()
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
