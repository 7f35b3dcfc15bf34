package equation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/roach88/querygrid/internal/grid"
)

const (
	// DefaultGroupOperator joins AND-groups.
	DefaultGroupOperator = "AND"

	// DefaultTermOperator joins OR-terms inside a group.
	DefaultTermOperator = "OR"
)

// groupPattern matches a parenthesized substring with no nested parentheses.
var groupPattern = regexp.MustCompile(`\([^()]+\)`)

// ParseOptions controls how Parse treats text outside parentheses.
type ParseOptions struct {
	// BareTerms keeps text found outside parenthesized groups. Each such
	// segment is split on " AND " and every piece becomes its own group, in
	// order of appearance. When false, ungrouped text is dropped.
	BareTerms bool
}

// Parse converts an equation into a Grid with the default options.
//
// Every innermost parenthesized group becomes one column named AND_Group_<i>
// in order of appearance, holding its " OR "-separated terms with surrounding
// whitespace and one layer of quotes removed. Columns are padded with absent
// cells to the longest group.
//
// Returns MalformedEquationError if the equation is blank or contains no
// group.
func Parse(equation string) (*grid.Grid, error) {
	return ParseWithOptions(equation, ParseOptions{})
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(equation string, opts ParseOptions) (*grid.Grid, error) {
	equation = strings.TrimSpace(equation)
	if equation == "" {
		return nil, &MalformedEquationError{Reason: "empty equation"}
	}

	var groups [][]string
	appendGroup := func(body string) {
		if terms := splitTerms(body); len(terms) > 0 {
			groups = append(groups, terms)
		}
	}

	pos := 0
	for _, loc := range groupPattern.FindAllStringIndex(equation, -1) {
		if opts.BareTerms {
			for _, seg := range bareSegments(equation[pos:loc[0]]) {
				appendGroup(seg)
			}
		}
		appendGroup(equation[loc[0]+1 : loc[1]-1])
		pos = loc[1]
	}
	if opts.BareTerms {
		for _, seg := range bareSegments(equation[pos:]) {
			appendGroup(seg)
		}
	}

	if len(groups) == 0 {
		reason := "no parenthesized group found"
		if opts.BareTerms {
			reason = "no term found"
		}
		return nil, &MalformedEquationError{Reason: reason, Length: utf8.RuneCountInString(equation)}
	}

	return grid.FromGroups(groups), nil
}

// splitTerms splits a group body on the term operator and unquotes each term.
// Blank terms are discarded.
func splitTerms(body string) []string {
	pieces := strings.Split(body, " "+DefaultTermOperator+" ")
	terms := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if term := unquote(piece); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// bareSegments splits text found between groups on the group operator.
// Dangling operators left at the edges of the text are ignored.
func bareSegments(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, DefaultGroupOperator+" ")
	text = strings.TrimSuffix(text, " "+DefaultGroupOperator)
	if text == "" || text == DefaultGroupOperator {
		return nil
	}

	var segments []string
	for _, seg := range strings.Split(text, " "+DefaultGroupOperator+" ") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
