package grid

// Cell is a single table slot: either a text term or absent.
//
// Empty text and absent are equivalent. Use Text to build a cell from raw
// tabular input; it maps "" to Absent so the zero-length case has one
// representation.
type Cell struct {
	value   string
	present bool
}

// Absent is the cell used for padding and for blank spreadsheet cells.
var Absent = Cell{}

// Text returns a cell holding s, or Absent when s is empty.
func Text(s string) Cell {
	if s == "" {
		return Absent
	}
	return Cell{value: s, present: true}
}

// IsAbsent reports whether the cell holds no term.
func (c Cell) IsAbsent() bool {
	return !c.present
}

// Value returns the raw text of the cell ("" for Absent).
func (c Cell) Value() string {
	return c.value
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return c.value
}
