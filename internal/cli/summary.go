package cli

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/roach88/querygrid/internal/grid"
)

// previewLength is how much of a generated equation text output shows.
const previewLength = 200

// previewEquation shortens eq to previewLength characters for console
// output.
func previewEquation(eq string) string {
	if utf8.RuneCountInString(eq) <= previewLength {
		return eq
	}
	return string([]rune(eq)[:previewLength]) + "..."
}

// writeGroupCounts prints one line per column with its term count.
func writeGroupCounts(w io.Writer, stats grid.Stats) {
	fmt.Fprintln(w, "  Terms per group:")
	for _, g := range stats.Groups {
		suffix := "terms"
		if g.Terms == 1 {
			suffix = "term"
		}
		fmt.Fprintf(w, "    %s: %d %s\n", g.Name, g.Terms, suffix)
	}
}

// writeOutputs prints the written file paths.
func writeOutputs(w io.Writer, paths []string) {
	fmt.Fprintln(w, "Written:")
	for _, p := range paths {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
