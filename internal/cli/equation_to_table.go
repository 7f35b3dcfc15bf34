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

// EquationToTableOptions holds flags for the equation-to-table command.
type EquationToTableOptions struct {
	*RootOptions
	Batch     bool
	BareTerms bool
	YAML      bool
}

// EquationToTableResult is the success payload of one conversion.
type EquationToTableResult struct {
	Input          string     `json:"input"`
	EquationLength int        `json:"equation_length"`
	Stats          grid.Stats `json:"stats"`
	Outputs        []string   `json:"outputs"`
	HistoryID      string     `json:"history_id,omitempty"`
}

// String renders the text summary.
func (r *EquationToTableResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ Parsed %s (%d characters)\n\n", r.Input, r.EquationLength)
	fmt.Fprintln(&b, "Summary:")
	fmt.Fprintf(&b, "  AND groups: %d\n", r.Stats.GroupCount)
	fmt.Fprintf(&b, "  Max OR terms per group: %d\n", r.Stats.MaxTerms)
	writeGroupCounts(&b, r.Stats)
	fmt.Fprintln(&b)
	writeOutputs(&b, r.Outputs)
	return strings.TrimSuffix(b.String(), "\n")
}

// NewEquationToTableCommand creates the equation-to-table command.
func NewEquationToTableCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EquationToTableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "equation-to-table <file> [output_prefix]",
		Short: "Convert an equation file to CSV and Excel tables",
		Long: `Convert a search equation into a table.

Every parenthesized group becomes a column named AND_Group_<n>; every OR-term
becomes a cell. Columns are padded to the longest group. The table is written
as <prefix>.csv and <prefix>.xlsx in the output directory, where prefix
defaults to <input name>_table.

Terms outside parentheses are dropped unless --bare-terms is given.`,
		Example: `  querygrid equation-to-table search.txt
  querygrid equation-to-table search.txt my_output --yaml
  querygrid equation-to-table --batch q1.txt q2.txt`,
		Args:          conversionArgs(&opts.Batch),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEquationToTable(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Batch, "batch", false, "treat every argument as an input file")
	cmd.Flags().BoolVar(&opts.BareTerms, "bare-terms", false, "keep terms outside parentheses as single-term groups")
	cmd.Flags().BoolVar(&opts.YAML, "yaml", false, "also write <prefix>.yaml")

	return cmd
}

func runEquationToTable(opts *EquationToTableOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	cfg := opts.config()

	bareTerms := cfg.BareTerms
	if cmd.Flags().Changed("bare-terms") {
		bareTerms = opts.BareTerms
	}

	st, err := openHistory(cfg.HistoryDB)
	if err != nil {
		return outputConversionError(formatter, cfg.HistoryDB, err)
	}
	defer closeHistory(st)

	ctx := commandContext(cmd)
	return runConversions(ctx, formatter, args, opts.Batch, func(ctx context.Context, input, prefix string) (any, error) {
		eq, err := tablefile.ReadEquation(input)
		if err != nil {
			return nil, err
		}
		formatter.VerboseLog("Read equation from %s (%d characters)", input, utf8.RuneCountInString(eq))

		g, err := equation.ParseWithOptions(eq, equation.ParseOptions{BareTerms: bareTerms})
		if err != nil {
			return nil, err
		}
		formatter.VerboseLog("Table: %d rows x %d columns", g.RowCount(), g.ColumnCount())

		formats := []tablefile.Format{tablefile.FormatCSV, tablefile.FormatXLSX}
		if opts.YAML {
			formats = append(formats, tablefile.FormatYAML)
		}

		prefix = tablefile.OutputPrefix(input, prefix, "_table")
		outputs := make([]tablefile.Output, 0, len(formats))
		paths := make([]string, 0, len(formats))
		for _, format := range formats {
			data, err := tablefile.RenderTable(g, format)
			if err != nil {
				return nil, &writeError{err: fmt.Errorf("render %s: %w", format, err)}
			}
			name := prefix + format.Extension()
			outputs = append(outputs, tablefile.Output{Path: name, Data: data})
			paths = append(paths, filepath.Join(cfg.OutputDir, name))
		}

		if err := tablefile.WriteOutputs(cfg.OutputDir, outputs); err != nil {
			return nil, &writeError{err: err}
		}

		stats := grid.ComputeStats(g)
		slog.Debug("equation converted", "input", input, "groups", stats.GroupCount, "terms", stats.TotalTerms)

		id := recordHistory(ctx, st, history.NewRecord(history.EquationToTable, input, eq, stats.GroupCount, stats.TotalTerms))

		return &EquationToTableResult{
			Input:          input,
			EquationLength: utf8.RuneCountInString(eq),
			Stats:          stats,
			Outputs:        paths,
			HistoryID:      id,
		}, nil
	})
}
