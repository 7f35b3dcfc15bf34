package tablefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/querygrid/internal/grid"
)

// ReadOptions controls table reading.
type ReadOptions struct {
	// Sheet selects a workbook sheet by name. Empty means the first sheet.
	Sheet string
}

// Output is one rendered file waiting to be written.
type Output struct {
	Path string
	Data []byte
}

// ReadTable reads a table file, dispatching on its extension.
//
// Returns InputNotFoundError if path does not exist and
// UnsupportedFormatError if the extension is not a table format.
func ReadTable(path string, opts ReadOptions) (*grid.Grid, error) {
	if err := checkExists(path); err != nil {
		return nil, err
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	var g *grid.Grid
	switch format {
	case FormatCSV:
		g, err = ReadDelimited(f, ',')
	case FormatTSV:
		g, err = ReadDelimited(f, '\t')
	case FormatXLSX:
		g, err = ReadXLSX(f, opts.Sheet)
	case FormatYAML:
		g, err = ReadYAML(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("table read", "path", path, "format", format, "rows", g.RowCount(), "columns", g.ColumnCount())
	return g, nil
}

// RenderTable encodes g in the given format.
func RenderTable(g *grid.Grid, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case FormatCSV:
		err = WriteDelimited(&buf, g, ',')
	case FormatTSV:
		err = WriteDelimited(&buf, g, '\t')
	case FormatXLSX:
		err = WriteXLSX(&buf, g)
	case FormatYAML:
		err = WriteYAML(&buf, g)
	default:
		return nil, &UnsupportedFormatError{Extension: format.Extension()}
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadEquation reads an equation text file. The content is NFC normalized
// and trimmed; a byte order mark is dropped.
func ReadEquation(path string) (string, error) {
	if err := checkExists(path); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open equation: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return "", fmt.Errorf("read equation: %w", err)
	}

	equation := strings.TrimSpace(norm.NFC.String(string(data)))
	slog.Debug("equation read", "path", path, "length", len(equation))
	return equation, nil
}

// WriteOutputs creates dir and writes every output into it.
// If any write fails, files already written by this call are removed.
func WriteOutputs(dir string, outputs []Output) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	written := make([]string, 0, len(outputs))
	for _, out := range outputs {
		path := filepath.Join(dir, out.Path)
		if err := os.WriteFile(path, out.Data, 0o644); err != nil {
			for _, p := range written {
				if rmErr := os.Remove(p); rmErr != nil {
					slog.Warn("cleanup after failed write", "path", p, "error", rmErr)
				}
			}
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		slog.Debug("output written", "path", path, "bytes", len(out.Data))
	}
	return nil
}

// OutputPrefix returns prefix, or the input file stem followed by suffix
// when prefix is empty.
func OutputPrefix(inputPath, prefix, suffix string) string {
	if prefix != "" {
		return prefix
	}
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix
}

func checkExists(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &InputNotFoundError{Path: path}
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
