package tablefile

import (
	"path/filepath"
	"strings"
)

// Format identifies a table file encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatYAML Format = "yaml"
)

// Extension returns the canonical file extension, with the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// DetectFormat maps a path's extension to a Format.
// Legacy .xls workbooks are rejected with a hint to resave as .xlsx.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xls":
		return "", &UnsupportedFormatError{Path: path, Extension: ext, Hint: "legacy Excel 97-2003 workbooks must be saved as .xlsx"}
	default:
		return "", &UnsupportedFormatError{Path: path, Extension: ext}
	}
}
