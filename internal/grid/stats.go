package grid

import "strings"

// GroupStats is the term count of a single column.
type GroupStats struct {
	Name  string `json:"name"`
	Terms int    `json:"terms"`
}

// Stats summarizes a Grid for console and JSON output.
type Stats struct {
	GroupCount int          `json:"group_count"`
	MaxTerms   int          `json:"max_terms"`
	TotalTerms int          `json:"total_terms"`
	Groups     []GroupStats `json:"groups"`
}

// ComputeStats counts the non-blank terms of every column.
// MaxTerms is the table row count, matching what a spreadsheet shows.
func ComputeStats(g *Grid) Stats {
	stats := Stats{
		GroupCount: g.ColumnCount(),
		MaxTerms:   g.RowCount(),
		Groups:     make([]GroupStats, 0, g.ColumnCount()),
	}

	for _, col := range g.Columns {
		n := 0
		for _, cell := range col.Cells {
			if strings.TrimSpace(cell.Value()) != "" {
				n++
			}
		}
		stats.TotalTerms += n
		stats.Groups = append(stats.Groups, GroupStats{Name: col.Name, Terms: n})
	}

	return stats
}
