package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/roach88/querygrid/internal/equation"
	"github.com/roach88/querygrid/internal/grid"
	"github.com/roach88/querygrid/internal/history"
	"github.com/roach88/querygrid/internal/tablefile"
)

// TableToEquationOptions holds flags for the table-to-equation command.
type TableToEquationOptions struct {
	*RootOptions
	Batch         bool
	GroupOperator string
	TermOperator  string
	Pretty        bool
	MaxLineLength int
	Sheet         string
}

// TableToEquationResult is the success payload of one conversion.
type TableToEquationResult struct {
	Input     string     `json:"input"`
	Rows      int        `json:"rows"`
	Columns   int        `json:"columns"`
	Stats     grid.Stats `json:"stats"`
	Equation  string     `json:"equation"`
	Output    string     `json:"output"`
	HistoryID string     `json:"history_id,omitempty"`
}

// String renders the text summary.
func (r *TableToEquationResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ Built equation from %s (%d rows x %d columns)\n\n", r.Input, r.Rows, r.Columns)
	fmt.Fprintln(&b, "Summary:")
	fmt.Fprintf(&b, "  Groups (columns): %d\n", r.Stats.GroupCount)
	fmt.Fprintf(&b, "  Max terms per group: %d\n", r.Stats.MaxTerms)
	writeGroupCounts(&b, r.Stats)
	fmt.Fprintf(&b, "  Total terms: %d\n\n", r.Stats.TotalTerms)
	fmt.Fprintf(&b, "Equation (%d characters):\n%s\n\n", utf8.RuneCountInString(r.Equation), previewEquation(r.Equation))
	writeOutputs(&b, []string{r.Output})
	return strings.TrimSuffix(b.String(), "\n")
}

// NewTableToEquationCommand creates the table-to-equation command.
func NewTableToEquationCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TableToEquationOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "table-to-equation <file> [output_prefix]",
		Short: "Convert a CSV, Excel or YAML table to an equation file",
		Long: `Convert a table into a search equation.

Each column becomes an AND-group of its non-empty cells joined with OR. Terms
containing spaces are quoted, single-term groups are written without
parentheses, and empty columns are skipped. The equation is written to
<prefix>.txt in the output directory, where prefix defaults to
<input name>_equation.

An empty table (no column with a term) is an error and writes nothing.`,
		Example: `  querygrid table-to-equation search_table.csv
  querygrid table-to-equation terms.xlsx --sheet Terms --pretty --max-line 80
  querygrid table-to-equation terms.csv --group-op AND --term-op OR`,
		Args:          conversionArgs(&opts.Batch),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTableToEquation(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Batch, "batch", false, "treat every argument as an input file")
	cmd.Flags().StringVar(&opts.GroupOperator, "group-op", equation.DefaultGroupOperator, "operator between groups (columns)")
	cmd.Flags().StringVar(&opts.TermOperator, "term-op", equation.DefaultTermOperator, "operator between terms (rows)")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "wrap the equation at \" AND \" boundaries (no effect with another --group-op)")
	cmd.Flags().IntVar(&opts.MaxLineLength, "max-line", equation.DefaultMaxLineLength, "length above which --pretty wraps")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "workbook sheet to read (default first sheet)")

	return cmd
}

func runTableToEquation(opts *TableToEquationOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	cfg := *opts.config()

	flags := cmd.Flags()
	if flags.Changed("group-op") {
		cfg.GroupOperator = opts.GroupOperator
	}
	if flags.Changed("term-op") {
		cfg.TermOperator = opts.TermOperator
	}
	if flags.Changed("pretty") {
		cfg.Pretty = opts.Pretty
	}
	if flags.Changed("max-line") {
		cfg.MaxLineLength = opts.MaxLineLength
	}
	if flags.Changed("sheet") {
		cfg.SheetName = opts.Sheet
	}
	if cfg.MaxLineLength <= 0 {
		return outputUsageError(formatter, fmt.Sprintf("--max-line must be positive, got %d", cfg.MaxLineLength))
	}
	if strings.TrimSpace(cfg.GroupOperator) == "" || strings.TrimSpace(cfg.TermOperator) == "" {
		return outputUsageError(formatter, "operators must not be blank")
	}
	if cfg.Pretty && cfg.GroupOperator != equation.DefaultGroupOperator {
		slog.Warn("pretty printing only wraps at AND boundaries; output stays on one line",
			"group_operator", cfg.GroupOperator)
	}

	st, err := openHistory(cfg.HistoryDB)
	if err != nil {
		return outputConversionError(formatter, cfg.HistoryDB, err)
	}
	defer closeHistory(st)

	ctx := commandContext(cmd)
	return runConversions(ctx, formatter, args, opts.Batch, func(ctx context.Context, input, prefix string) (any, error) {
		g, err := tablefile.ReadTable(input, tablefile.ReadOptions{Sheet: cfg.SheetName})
		if err != nil {
			return nil, err
		}
		formatter.VerboseLog("Table: %d rows x %d columns", g.RowCount(), g.ColumnCount())

		eq, err := equation.Serialize(g, cfg.Operators())
		if err != nil {
			return nil, err
		}

		text := eq
		if cfg.Pretty {
			text = equation.FormatPretty(eq, cfg.MaxLineLength)
		}

		name := tablefile.OutputPrefix(input, prefix, "_equation") + ".txt"
		if err := tablefile.WriteOutputs(cfg.OutputDir, []tablefile.Output{{Path: name, Data: []byte(text)}}); err != nil {
			return nil, &writeError{err: err}
		}

		stats := grid.ComputeStats(g)
		slog.Debug("table converted", "input", input, "groups", stats.GroupCount, "length", utf8.RuneCountInString(eq))

		id := recordHistory(ctx, st, history.NewRecord(history.TableToEquation, input, eq, stats.GroupCount, stats.TotalTerms))

		return &TableToEquationResult{
			Input:     input,
			Rows:      g.RowCount(),
			Columns:   g.ColumnCount(),
			Stats:     stats,
			Equation:  eq,
			Output:    filepath.Join(cfg.OutputDir, name),
			HistoryID: id,
		}, nil
	})
}

// outputUsageError reports an invalid flag combination.
func outputUsageError(formatter *OutputFormatter, message string) error {
	_ = formatter.Error(ErrCodeUsage, message, nil)
	return NewExitError(ExitCommandError, ErrCodeUsage+": "+message)
}
