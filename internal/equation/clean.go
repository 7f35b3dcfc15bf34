package equation

import (
	"strings"
	"unicode"

	"github.com/roach88/querygrid/internal/grid"
)

// Clean normalizes one raw table value into an equation term.
//
// Blank input becomes grid.Absent. Otherwise the value is trimmed and, if it
// contains whitespace and is not already wrapped in double quotes, quoted.
// Clean is idempotent: Clean(Clean(x).Value()) == Clean(x).
func Clean(raw string) grid.Cell {
	term := strings.TrimSpace(raw)
	if term == "" {
		return grid.Absent
	}

	if strings.IndexFunc(term, unicode.IsSpace) >= 0 && !isDoubleQuoted(term) {
		term = `"` + term + `"`
	}

	return grid.Text(term)
}

// CleanCell applies Clean to an existing cell.
func CleanCell(c grid.Cell) grid.Cell {
	if c.IsAbsent() {
		return grid.Absent
	}
	return Clean(c.Value())
}

func isDoubleQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// unquote strips surrounding whitespace and one matching pair of single or
// double quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
