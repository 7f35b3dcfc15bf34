package tablefile

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/querygrid/internal/grid"
)

// yamlTable is the on-disk YAML shape. Padding is implicit: only terms are
// listed and readers pad to the longest group.
//
//	groups:
//	  - name: AND_Group_1
//	    terms: [cat, dog]
//	  - name: AND_Group_2
//	    terms: [bark, loud noise]
type yamlTable struct {
	Groups []yamlGroup `yaml:"groups"`
}

type yamlGroup struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// ReadYAML reads a table written by WriteYAML or by hand.
func ReadYAML(r io.Reader) (*grid.Grid, error) {
	var doc yamlTable
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &grid.Grid{}, nil
		}
		return nil, fmt.Errorf("decode yaml table: %w", err)
	}

	g := &grid.Grid{Columns: make([]grid.Column, len(doc.Groups))}
	for i, group := range doc.Groups {
		cells := make([]grid.Cell, len(group.Terms))
		for j, term := range group.Terms {
			cells[j] = grid.Text(norm.NFC.String(term))
		}
		g.Columns[i] = grid.Column{Name: columnName(group.Name, i), Cells: cells}
	}

	g.Pad()
	return g, nil
}

// WriteYAML writes the non-absent terms of every column.
func WriteYAML(w io.Writer, g *grid.Grid) error {
	doc := yamlTable{Groups: make([]yamlGroup, len(g.Columns))}
	for i, col := range g.Columns {
		doc.Groups[i] = yamlGroup{Name: col.Name, Terms: col.Terms()}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml table: %w", err)
	}
	return enc.Close()
}
