package tablefile

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/querygrid/internal/grid"
)

// DefaultSheetName is the sheet written by WriteXLSX.
const DefaultSheetName = "Sheet1"

// ReadXLSX reads a table from a workbook. An empty sheet selects the first
// sheet of the workbook.
func ReadXLSX(r io.Reader, sheet string) (*grid.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &grid.Grid{}, nil
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("sheet %q not found (available: %v)", sheet, sheets)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &grid.Grid{}, nil
	}

	header := rows[0]
	width := len(header)
	for _, row := range rows[1:] {
		width = max(width, len(row))
	}

	g := &grid.Grid{Columns: make([]grid.Column, width)}
	for i := range g.Columns {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		g.Columns[i] = grid.Column{Name: columnName(name, i), Cells: make([]grid.Cell, len(rows)-1)}
	}

	for r, row := range rows[1:] {
		for c, value := range row {
			g.Columns[c].Cells[r] = grid.Text(norm.NFC.String(value))
		}
	}

	return g, nil
}

// WriteXLSX writes g to a single-sheet workbook.
func WriteXLSX(w io.Writer, g *grid.Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	for c, name := range g.Header() {
		if err := setCell(f, c+1, 1, name); err != nil {
			return err
		}
	}
	for r, row := range g.Rows() {
		for c, value := range row {
			if value == "" {
				continue
			}
			if err := setCell(f, c+1, r+2, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value string) error {
	addr, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell address: %w", err)
	}
	if err := f.SetCellStr(DefaultSheetName, addr, value); err != nil {
		return fmt.Errorf("set cell %s: %w", addr, err)
	}
	return nil
}
