package equation

import (
	"strings"
	"unicode/utf8"

	"github.com/roach88/querygrid/internal/grid"
)

// DefaultMaxLineLength is the width above which FormatPretty wraps.
const DefaultMaxLineLength = 100

// Operators names the joiners used by Serialize.
// Empty fields fall back to DefaultGroupOperator and DefaultTermOperator.
type Operators struct {
	Group string
	Term  string
}

// DefaultOperators returns AND between groups and OR between terms.
func DefaultOperators() Operators {
	return Operators{Group: DefaultGroupOperator, Term: DefaultTermOperator}
}

func (o Operators) withDefaults() Operators {
	if o.Group == "" {
		o.Group = DefaultGroupOperator
	}
	if o.Term == "" {
		o.Term = DefaultTermOperator
	}
	return o
}

// Serialize converts a Grid into an equation.
//
// Columns are visited in table order. Each cell goes through Clean and absent
// results are dropped. A column with no term is skipped, a column with one
// term contributes the bare term, and a column with several terms contributes
// "(t1 OR t2 ...)" in row order. Groups are joined with " AND ".
//
// Returns EmptyEquationResultError, together with the empty string, if no
// column has a term.
func Serialize(g *grid.Grid, ops Operators) (string, error) {
	ops = ops.withDefaults()

	groups := make([]string, 0, g.ColumnCount())
	for _, col := range g.Columns {
		if group, ok := serializeColumn(col, ops.Term); ok {
			groups = append(groups, group)
		}
	}

	if len(groups) == 0 {
		return "", &EmptyEquationResultError{Columns: g.ColumnCount()}
	}

	return strings.Join(groups, " "+ops.Group+" "), nil
}

func serializeColumn(col grid.Column, termOp string) (string, bool) {
	terms := make([]string, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if cleaned := CleanCell(cell); !cleaned.IsAbsent() {
			terms = append(terms, cleaned.Value())
		}
	}

	switch len(terms) {
	case 0:
		return "", false
	case 1:
		return terms[0], true
	default:
		return "(" + strings.Join(terms, " "+termOp+" ") + ")", true
	}
}

// FormatPretty wraps an equation at its " AND " boundaries.
//
// If the equation has more than maxLineLength characters, every AND-part goes on its
// own line and every line after the first starts with "AND ". Otherwise the
// equation is returned unchanged. A single group longer than the limit stays
// on one line. A non-positive maxLineLength selects DefaultMaxLineLength.
func FormatPretty(equation string, maxLineLength int) string {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	if utf8.RuneCountInString(equation) <= maxLineLength {
		return equation
	}

	sep := " " + DefaultGroupOperator + " "
	parts := strings.Split(equation, sep)
	for i := 1; i < len(parts); i++ {
		parts[i] = DefaultGroupOperator + " " + parts[i]
	}
	return strings.Join(parts, "\n")
}
