package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/querygrid/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	OutputDir  string
	HistoryDB  string

	// Config is loaded by the root command before any subcommand runs.
	// Subcommands built directly (in tests) fall back to config.Default.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the querygrid CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "querygrid",
		Short: "querygrid - search equation <-> table converter",
		Long: `Convert boolean search equations to editable tables and back.

Tables have one column per AND-group and one cell per OR-term:

  (cat OR dog) AND (bark OR "loud noise")

  AND_Group_1,AND_Group_2
  cat,bark
  dog,loud noise

Tables are read from .csv, .tsv, .xlsx and .yaml files. Equations are plain
text files.`,
		Example: `  querygrid equation-to-table search.txt
  querygrid equation-to-table search.txt my_output
  querygrid table-to-equation search_table.csv --pretty
  querygrid table-to-equation --batch a.csv b.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return NewExitError(ExitCommandError, "a command is required")
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default "+config.DefaultPath+" if present)")
	cmd.PersistentFlags().StringVar(&opts.OutputDir, "output-dir", config.DefaultOutputDir, "directory for converted files")
	cmd.PersistentFlags().StringVar(&opts.HistoryDB, "history-db", "", "SQLite file recording each conversion (disabled when empty)")

	cmd.AddCommand(NewEquationToTableCommand(opts))
	cmd.AddCommand(NewTableToEquationCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// setup validates global flags, installs the logger and loads the config.
func setup(cmd *cobra.Command, opts *RootOptions) error {
	if !isValidFormat(opts.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeConfig+": failed to load config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") || cfg.OutputDir == "" {
		cfg.OutputDir = opts.OutputDir
	}
	if flags.Changed("history-db") {
		cfg.HistoryDB = opts.HistoryDB
	}
	opts.Config = cfg

	slog.Debug("config loaded", "path", opts.ConfigPath, "output_dir", cfg.OutputDir, "history_db", cfg.HistoryDB)
	return nil
}

// config returns the loaded configuration, or defaults plus the global flags
// when the root command did not run.
func (o *RootOptions) config() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	cfg := config.Default()
	if o.OutputDir != "" {
		cfg.OutputDir = o.OutputDir
	}
	cfg.HistoryDB = o.HistoryDB
	return cfg
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
