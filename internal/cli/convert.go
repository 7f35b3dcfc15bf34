package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/querygrid/internal/equation"
	"github.com/roach88/querygrid/internal/history"
	"github.com/roach88/querygrid/internal/tablefile"
)

// convertFunc converts one input file and returns the success payload.
type convertFunc func(ctx context.Context, input, prefix string) (any, error)

// writeError marks a failure while writing outputs.
type writeError struct {
	err error
}

func (e *writeError) Error() string { return e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

// historyError marks a failure while opening or writing the history database.
type historyError struct {
	err error
}

func (e *historyError) Error() string { return e.err.Error() }
func (e *historyError) Unwrap() error { return e.err }

// newFormatter builds the formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// conversionArgs validates positional arguments: "<file> [output_prefix]",
// or one or more files with --batch.
func conversionArgs(batch *bool) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return NewExitError(ExitCommandError, ErrCodeUsage+": an input file is required")
		}
		if !*batch && len(args) > 2 {
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: expected <file> [output_prefix], got %d arguments (use --batch for several files)", ErrCodeUsage, len(args)))
		}
		return nil
	}
}

// runConversions applies convert to one input, or to every input in batch
// mode. In batch mode a failing file is reported and the next file is
// processed; the returned error reports how many files failed.
func runConversions(ctx context.Context, formatter *OutputFormatter, args []string, batch bool, convert convertFunc) error {
	if !batch {
		prefix := ""
		if len(args) > 1 {
			prefix = args[1]
		}
		result, err := convert(ctx, args[0], prefix)
		if err != nil {
			return outputConversionError(formatter, args[0], err)
		}
		return formatter.Success(result)
	}

	failed := 0
	for _, input := range args {
		result, err := convert(ctx, input, "")
		if err != nil {
			failed++
			_ = outputConversionError(formatter, input, err)
			continue
		}
		if err := formatter.Success(result); err != nil {
			return err
		}
	}

	if failed > 0 {
		slog.Warn("batch finished with failures", "failed", failed, "total", len(args))
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d file(s) failed", failed, len(args)))
	}
	return nil
}

// outputConversionError reports err for input and maps it to an ExitError.
func outputConversionError(formatter *OutputFormatter, input string, err error) error {
	code, exit := classifyError(err)
	slog.Error("conversion failed", "input", input, "code", code, "error", err)
	_ = formatter.Error(code, fmt.Sprintf("%s: %v", input, err), nil)
	return WrapExitError(exit, code+": "+input, err)
}

// classifyError maps an error to a CLI error code and exit code.
func classifyError(err error) (string, int) {
	var we *writeError
	var he *historyError
	switch {
	case equation.IsMalformedEquation(err):
		return ErrCodeMalformedEquation, ExitFailure
	case equation.IsEmptyResult(err):
		return ErrCodeEmptyResult, ExitFailure
	case tablefile.IsInputNotFound(err):
		return ErrCodeNotFound, ExitCommandError
	case tablefile.IsUnsupportedFormat(err):
		return ErrCodeUnsupported, ExitCommandError
	case errors.As(err, &we):
		return ErrCodeWriteFailed, ExitCommandError
	case errors.As(err, &he):
		return ErrCodeHistory, ExitCommandError
	default:
		return ErrCodeReadFailed, ExitFailure
	}
}

// openHistory opens the configured history database, or returns nil when
// history is disabled.
func openHistory(path string) (*history.Store, error) {
	if path == "" {
		return nil, nil
	}
	st, err := history.Open(path)
	if err != nil {
		return nil, &historyError{err: err}
	}
	slog.Debug("history database ready", "path", path)
	return st, nil
}

// recordHistory appends rec when st is non-nil and returns the record ID.
// A failed append is logged; the conversion outputs are already on disk.
func recordHistory(ctx context.Context, st *history.Store, rec history.Record) string {
	if st == nil {
		return ""
	}
	saved, err := st.Append(ctx, rec)
	if err != nil {
		slog.Warn("failed to record conversion", "input", rec.InputPath, "error", err)
		return ""
	}
	return saved.ID
}

// closeHistory closes st if it is open.
func closeHistory(st *history.Store) {
	if st == nil {
		return
	}
	if err := st.Close(); err != nil {
		slog.Error("error closing history database", "error", err)
	}
}

// commandContext returns the command's context, or Background when the
// command runs without one (tests calling RunE directly).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
