package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/querygrid/internal/history"
	"github.com/roach88/querygrid/internal/tablefile"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit    int
	Equation string
}

// HistoryResult lists recorded conversions: newest first, or oldest first
// when filtered by equation.
type HistoryResult struct {
	Equation string           `json:"equation,omitempty"`
	Hash     string           `json:"hash,omitempty"`
	Records  []history.Record `json:"records"`
}

// String renders one line per record.
func (r *HistoryResult) String() string {
	if len(r.Records) == 0 {
		if r.Equation != "" {
			return fmt.Sprintf("No conversions recorded for %s.", r.Equation)
		}
		return "No conversions recorded."
	}

	var b strings.Builder
	if r.Equation != "" {
		fmt.Fprintf(&b, "%d conversion(s) of %s (hash=%s):\n", len(r.Records), r.Equation, shortHash(r.Hash))
	} else {
		fmt.Fprintf(&b, "%d conversion(s):\n", len(r.Records))
	}
	for _, rec := range r.Records {
		fmt.Fprintf(&b, "  #%d  %s  %-17s  %s  groups=%d terms=%d  hash=%s\n",
			rec.Seq,
			rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			rec.Direction,
			rec.InputPath,
			rec.GroupCount,
			rec.TermCount,
			shortHash(rec.EquationHash),
		)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversions",
		Long: `List conversions recorded in the history database, newest first.

Conversions are recorded when --history-db (or history_db in the config file)
names a SQLite file. Equal hashes mean the conversions produced the same
equation.

With --equation, only conversions of the equation in that file are listed,
oldest first. Pretty-printed and single-line forms of an equation match.`,
		Example: `  querygrid history --history-db ~/.querygrid.db --limit 5
  querygrid history --history-db ~/.querygrid.db --equation search.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of records (0 for all)")
	cmd.Flags().StringVar(&opts.Equation, "equation", "", "list only conversions of the equation in this file")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	cfg := opts.config()

	if cfg.HistoryDB == "" {
		return outputUsageError(formatter, "no history database configured (use --history-db)")
	}

	st, err := openHistory(cfg.HistoryDB)
	if err != nil {
		return outputConversionError(formatter, cfg.HistoryDB, err)
	}
	defer closeHistory(st)

	ctx := commandContext(cmd)
	if opts.Equation == "" {
		records, err := st.List(ctx, opts.Limit)
		if err != nil {
			return outputConversionError(formatter, cfg.HistoryDB, &historyError{err: err})
		}
		return formatter.Success(&HistoryResult{Records: records})
	}

	eq, err := tablefile.ReadEquation(opts.Equation)
	if err != nil {
		return outputConversionError(formatter, opts.Equation, err)
	}

	hash := history.EquationHash(eq)
	records, err := st.FindByHash(ctx, hash)
	if err != nil {
		return outputConversionError(formatter, cfg.HistoryDB, &historyError{err: err})
	}
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[len(records)-opts.Limit:]
	}

	return formatter.Success(&HistoryResult{Equation: opts.Equation, Hash: hash, Records: records})
}
