package equation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/querygrid/internal/grid"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want grid.Cell
	}{
		{"empty", "", grid.Absent},
		{"whitespace only", "  \t ", grid.Absent},
		{"single word", "cat", grid.Text("cat")},
		{"trimmed", "  cat  ", grid.Text("cat")},
		{"phrase quoted", "loud noise", grid.Text(`"loud noise"`)},
		{"phrase trimmed then quoted", "  loud noise ", grid.Text(`"loud noise"`)},
		{"already quoted", `"loud noise"`, grid.Text(`"loud noise"`)},
		{"quoted single word kept", `"cat"`, grid.Text(`"cat"`)},
		{"tab is whitespace", "loud\tnoise", grid.Text("\"loud\tnoise\"")},
		{"half quoted", `"loud noise`, grid.Text(`""loud noise"`)},
		{"single quotes are not double quotes", `'loud noise'`, grid.Text(`"'loud noise'"`)},
		{"wildcard", "child*", grid.Text("child*")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.raw))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"", " ", "cat", " cat ", "loud noise", `"loud noise"`, `"loud noise`,
		`loud noise"`, `"`, `""`, `" "`, "a  b", "'x y'", "\tmachine learning\n",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once.Value())
		assert.Equal(t, once, twice, "Clean not idempotent for %q", in)
	}
}

func TestCleanCell(t *testing.T) {
	assert.Equal(t, grid.Absent, CleanCell(grid.Absent))
	assert.Equal(t, grid.Text(`"a b"`), CleanCell(grid.Text("a b")))
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "loud noise", unquote(`"loud noise"`))
	assert.Equal(t, "loud noise", unquote(`  'loud noise' `))
	assert.Equal(t, `"mixed'`, unquote(`"mixed'`))
	assert.Equal(t, `"`, unquote(`"`))
	assert.Equal(t, "", unquote(`""`))
}
