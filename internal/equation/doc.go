// Package equation converts between search equations and grids.
//
// An equation is a flat conjunction of disjunctions:
//
//	(t1 OR t2 OR t3) AND (t4 OR t5) AND t6
//
// Parse extracts every innermost parenthesized group as one AND-group and
// splits it on " OR ". Serialize walks the grid columns in order, cleans every
// cell with Clean, and joins the surviving groups. FormatPretty line-wraps a
// serialized equation at its AND boundaries.
//
// # Limitations
//
//   - Nested parentheses are not supported. Only groups that contain no
//     parentheses are extracted, so a nested expression mis-parses.
//   - Terms outside parentheses are dropped unless ParseOptions.BareTerms is set.
//   - Quoting is re-derived from whitespace on Serialize, so
//     Parse(Serialize(g)) preserves term content but not the exact source text.
//
// All functions are pure. They never log and never touch the file system.
package equation
