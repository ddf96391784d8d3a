package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/lagplot/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	ID       string
	Digest   string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded with "lagplot render --history", newest first.

The database path comes from --history or history_path in the config, and the
database must already exist. --id shows a single run. --digest lists every run
whose bad sequence has the given digest, oldest first, which shows whether a
set of LCG parameters reproduced the same output.

Examples:
  lagplot history --history ~/.lagplot/history.db
  lagplot history --history ./history.db --limit 5 --format json
  lagplot history --history ./history.db --digest 3f1c...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "history", "", "path to the SQLite history database")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 for all)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show the run with this ID")
	cmd.Flags().StringVar(&opts.Digest, "digest", "", "list runs whose bad sequence has this digest")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	if opts.ID != "" && opts.Digest != "" {
		return NewExitError(ExitCommandError, "--id and --digest cannot be used together")
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("history") {
		cfg.HistoryPath = opts.Database
	}
	if err := cfg.ExpandPaths(); err != nil {
		return WrapExitError(ExitCommandError, "invalid path", err)
	}
	if cfg.HistoryPath == "" {
		return NewExitError(ExitCommandError, "no history database: pass --history or set history_path")
	}
	// store.Open would create a missing database; a reader should not.
	if _, err := os.Stat(cfg.HistoryPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewExitError(ExitCommandError, fmt.Sprintf("history database %s does not exist", cfg.HistoryPath))
		}
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}

	st, err := store.Open(cfg.HistoryPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	var runs []store.Run
	switch {
	case opts.ID != "":
		run, err := st.Get(ctx, opts.ID)
		if errors.Is(err, store.ErrNotFound) {
			return WrapExitError(ExitCommandError, fmt.Sprintf("no run with id %q", opts.ID), err)
		}
		if err != nil {
			return WrapExitError(ExitFailure, "failed to read run", err)
		}
		runs = []store.Run{run}
	case opts.Digest != "":
		runs, err = st.FindByBadDigest(ctx, opts.Digest)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to find runs", err)
		}
	default:
		runs, err = st.List(ctx, opts.Limit)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to list runs", err)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(runs)
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		printer.Fprintf(w, "No runs recorded in %s\n", cfg.HistoryPath)
		return nil
	}
	for _, r := range runs {
		writeRun(w, r)
	}
	return nil
}

// writeRun prints one run as three lines. Parameters and seeds are printed
// without separators so they can be pasted back into render flags.
func writeRun(w io.Writer, r store.Run) {
	u := func(v uint64) string { return strconv.FormatUint(v, 10) }

	printer.Fprintf(w, "%d  %s  %s\n", r.Seq, r.ID, r.CreatedAt.Format(time.RFC3339))
	printer.Fprintf(w, "    %d points  lcg m=%s a=%s c=%s x0=%s  %s seed=%s\n",
		r.PointCount, u(r.LCG.Modulus), u(r.LCG.Multiplier), u(r.LCG.Increment), u(r.LCG.Seed),
		r.GoodSource, u(r.GoodSeed))
	printer.Fprintf(w, "    %s (%d bytes)  bad %s\n", r.OutputPath, r.OutputBytes, shortDigest(r.BadDigest))
}

// shortDigest abbreviates a hex digest for display.
func shortDigest(d string) string {
	const n = 12
	if len(d) <= n {
		return d
	}
	return d[:n]
}
