package grid

import "fmt"

// GroupNamePrefix is the prefix of positional column names.
const GroupNamePrefix = "AND_Group_"

// GroupName returns the positional name of the i-th group (1-indexed).
func GroupName(i int) string {
	return fmt.Sprintf("%s%d", GroupNamePrefix, i)
}

// Column is one AND-group: a name and its OR-term cells in row order.
type Column struct {
	Name  string
	Cells []Cell
}

// Terms returns the non-absent cell values of the column in row order.
func (c Column) Terms() []string {
	terms := make([]string, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.IsAbsent() {
			terms = append(terms, cell.Value())
		}
	}
	return terms
}

// Grid is the rectangular table shared by both conversion directions.
type Grid struct {
	Columns []Column
}

// FromGroups builds a padded Grid from per-group term lists.
// Column i is named GroupName(i+1); every column is right-padded with Absent
// up to the longest group.
func FromGroups(groups [][]string) *Grid {
	rows := 0
	for _, terms := range groups {
		if len(terms) > rows {
			rows = len(terms)
		}
	}

	g := &Grid{Columns: make([]Column, len(groups))}
	for i, terms := range groups {
		cells := make([]Cell, rows)
		for j, term := range terms {
			cells[j] = Text(term)
		}
		g.Columns[i] = Column{Name: GroupName(i + 1), Cells: cells}
	}
	return g
}

// RowCount returns the length of the longest column.
func (g *Grid) RowCount() int {
	rows := 0
	for _, col := range g.Columns {
		if len(col.Cells) > rows {
			rows = len(col.Cells)
		}
	}
	return rows
}

// ColumnCount returns the number of columns.
func (g *Grid) ColumnCount() int {
	return len(g.Columns)
}

// Pad right-pads every column with Absent cells up to RowCount.
// Adapters call it after reading ragged input.
func (g *Grid) Pad() {
	rows := g.RowCount()
	for i := range g.Columns {
		for len(g.Columns[i].Cells) < rows {
			g.Columns[i].Cells = append(g.Columns[i].Cells, Absent)
		}
	}
}

// Rows returns the table row by row as strings, Absent rendered as "".
// The result always has RowCount rows of ColumnCount values.
func (g *Grid) Rows() [][]string {
	rows := make([][]string, g.RowCount())
	for r := range rows {
		row := make([]string, len(g.Columns))
		for c, col := range g.Columns {
			if r < len(col.Cells) {
				row[c] = col.Cells[r].Value()
			}
		}
		rows[r] = row
	}
	return rows
}

// Header returns the column names in order.
func (g *Grid) Header() []string {
	names := make([]string, len(g.Columns))
	for i, col := range g.Columns {
		names[i] = col.Name
	}
	return names
}
