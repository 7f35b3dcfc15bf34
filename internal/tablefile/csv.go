package tablefile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/querygrid/internal/grid"
)

// ReadDelimited reads a delimited table. The first record is the header.
// A UTF-8 or UTF-16 byte order mark selects the decoding; without one the
// input is read as UTF-8.
func ReadDelimited(r io.Reader, comma rune) (*grid.Grid, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &grid.Grid{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	g := &grid.Grid{Columns: make([]grid.Column, len(header))}
	for i, name := range header {
		g.Columns[i] = grid.Column{Name: columnName(name, i)}
	}

	for row := 0; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}

		for i, value := range record {
			if i >= len(g.Columns) {
				g.Columns = append(g.Columns, grid.Column{Name: columnName("", i)})
			}
			col := &g.Columns[i]
			for len(col.Cells) < row {
				col.Cells = append(col.Cells, grid.Absent)
			}
			col.Cells = append(col.Cells, grid.Text(norm.NFC.String(value)))
		}
	}

	g.Pad()
	return g, nil
}

// WriteDelimited writes the header and every row of g.
func WriteDelimited(w io.Writer, g *grid.Grid, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	if err := cw.Write(g.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(g.Rows()); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// columnName falls back to the positional group name for blank headers.
func columnName(name string, i int) string {
	name = norm.NFC.String(name)
	if name == "" {
		return grid.GroupName(i + 1)
	}
	return name
}
