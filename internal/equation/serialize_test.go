package equation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/querygrid/internal/grid"
)

func column(name string, values ...string) grid.Column {
	cells := make([]grid.Cell, len(values))
	for i, v := range values {
		cells[i] = grid.Text(v)
	}
	return grid.Column{Name: name, Cells: cells}
}

func TestSerialize_TwoGroups(t *testing.T) {
	g := &grid.Grid{Columns: []grid.Column{
		column("AND_Group_1", "cat", "dog"),
		column("AND_Group_2", "bark", "loud noise"),
	}}

	eq, err := Serialize(g, DefaultOperators())
	require.NoError(t, err)
	assert.Equal(t, `(cat OR dog) AND (bark OR "loud noise")`, eq)
}

func TestSerialize_SingleTermNotParenthesized(t *testing.T) {
	g := &grid.Grid{Columns: []grid.Column{column("AND_Group_1", "only_term")}}

	eq, err := Serialize(g, DefaultOperators())
	require.NoError(t, err)
	assert.Equal(t, "only_term", eq)
}

func TestSerialize_SingleTermAmongPadding(t *testing.T) {
	g := &grid.Grid{Columns: []grid.Column{
		column("A", "a", "b"),
		column("B", "", "covid", "  "),
	}}

	eq, err := Serialize(g, DefaultOperators())
	require.NoError(t, err)
	assert.Equal(t, "(a OR b) AND covid", eq)
}

func TestSerialize_EmptyColumnOmitted(t *testing.T) {
	g := &grid.Grid{Columns: []grid.Column{
		column("A", "a", "b"),
		{Name: "B", Cells: []grid.Cell{grid.Absent, grid.Absent}},
		column("C", "c", "d"),
	}}

	eq, err := Serialize(g, DefaultOperators())
	require.NoError(t, err)
	assert.Equal(t, "(a OR b) AND (c OR d)", eq)
	assert.NotContains(t, eq, "()")
}

func TestSerialize_AllEmpty(t *testing.T) {
	g := &grid.Grid{Columns: []grid.Column{
		{Name: "A", Cells: []grid.Cell{grid.Absent}},
		column("B", "   ", ""),
	}}

	eq, err := Serialize(g, DefaultOperators())
	assert.Equal(t, "", eq)
	require.Error(t, err)
	assert.True(t, IsEmptyResult(err))

	var ee *EmptyEquationResultError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.Columns)
}

func TestSerialize_NoColumns(t *testing.T) {
	_, err := Serialize(&grid.Grid{}, DefaultOperators())
	assert.True(t, IsEmptyResult(err))
}

func TestSerialize_CustomOperators(t *testing.T) {
	g := &grid.Grid{Columns: []grid.Column{
		column("A", "a", "b"),
		column("B", "c"),
	}}

	eq, err := Serialize(g, Operators{Group: "NEAR", Term: "|"})
	require.NoError(t, err)
	assert.Equal(t, "(a | b) NEAR c", eq)
}

func TestSerialize_ZeroOperatorsUseDefaults(t *testing.T) {
	g := &grid.Grid{Columns: []grid.Column{column("A", "a", "b"), column("B", "c")}}

	eq, err := Serialize(g, Operators{})
	require.NoError(t, err)
	assert.Equal(t, "(a OR b) AND c", eq)
}

func TestSerialize_PreservesRowOrder(t *testing.T) {
	g := &grid.Grid{Columns: []grid.Column{column("A", "zeta", "", "alpha", "mu")}}

	eq, err := Serialize(g, DefaultOperators())
	require.NoError(t, err)
	assert.Equal(t, "(zeta OR alpha OR mu)", eq)
}

func TestRoundTrip_TermsPreserved(t *testing.T) {
	grids := []*grid.Grid{
		{Columns: []grid.Column{
			column("AND_Group_1", "cat", "dog"),
			column("AND_Group_2", "bark", "loud noise"),
		}},
		{Columns: []grid.Column{
			column("AND_Group_1", "machine learning", "", "AI"),
			column("AND_Group_2", "", "", ""),
			column("AND_Group_3", "health*", "clinic"),
		}},
		{Columns: []grid.Column{
			column("AND_Group_1", "  spaced  ", "x"),
			column("AND_Group_2", `"already quoted"`, "y"),
		}},
	}

	for _, g := range grids {
		eq, err := Serialize(g, DefaultOperators())
		require.NoError(t, err)

		// Single-term columns are emitted bare, so parse them back as bare terms.
		back, err := ParseWithOptions(eq, ParseOptions{BareTerms: true})
		require.NoError(t, err)

		var want [][]string
		for _, col := range g.Columns {
			var terms []string
			for _, term := range col.Terms() {
				if cleaned := Clean(term); !cleaned.IsAbsent() {
					terms = append(terms, unquote(cleaned.Value()))
				}
			}
			if len(terms) > 0 {
				want = append(want, terms)
			}
		}

		require.Equal(t, len(want), back.ColumnCount(), "equation %q", eq)
		for i := range want {
			assert.Equal(t, want[i], back.Columns[i].Terms())
		}
	}
}

func TestRoundTrip_Equation(t *testing.T) {
	in := `(cat OR dog) AND (bark OR "loud noise")`

	g, err := Parse(in)
	require.NoError(t, err)

	out, err := Serialize(g, DefaultOperators())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFormatPretty_Wraps(t *testing.T) {
	got := FormatPretty("(a OR b) AND (c OR d) AND (e OR f)", 10)
	assert.Equal(t, "(a OR b)\nAND (c OR d)\nAND (e OR f)", got)
	assert.Equal(t, []string{"(a OR b)", "AND (c OR d)", "AND (e OR f)"}, strings.Split(got, "\n"))
}

func TestFormatPretty_ShortUnchanged(t *testing.T) {
	eq := "(a OR b) AND (c OR d)"
	assert.Equal(t, eq, FormatPretty(eq, 100))
	assert.Equal(t, eq, FormatPretty(eq, len(eq)))
}

func TestFormatPretty_CountsCharacters(t *testing.T) {
	// 58 characters, 100 bytes
	eq := "(" + strings.Repeat("\u00f1", 14) + ") AND (" + strings.Repeat("\u00e9", 14) + ") AND (" + strings.Repeat("\u00f3", 14) + ")"
	require.Equal(t, 58, utf8.RuneCountInString(eq))

	assert.Equal(t, eq, FormatPretty(eq, 60))
	assert.Equal(t, eq, FormatPretty(eq, 58))
	assert.Equal(t, 3, strings.Count(FormatPretty(eq, 57), "\n")+1)
}

func TestFormatPretty_DefaultLength(t *testing.T) {
	eq := "(a OR b) AND c"
	assert.Equal(t, eq, FormatPretty(eq, 0))
}

func TestFormatPretty_LongGroupStaysOnOneLine(t *testing.T) {
	eq := "(alpha OR beta OR gamma OR delta OR epsilon)"
	assert.Equal(t, eq, FormatPretty(eq, 10))
}

func TestFormatPretty_Golden(t *testing.T) {
	g := &grid.Grid{Columns: []grid.Column{
		column("AND_Group_1", "systematic review", "meta-analysis", "scoping review"),
		column("AND_Group_2", "machine learning", "deep learning", "artificial intelligence"),
		column("AND_Group_3", "diagnosis", "screening"),
		column("AND_Group_4", "primary care"),
	}}

	eq, err := Serialize(g, DefaultOperators())
	require.NoError(t, err)

	gold := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gold.Assert(t, "pretty_systematic_review", []byte(FormatPretty(eq, DefaultMaxLineLength)))
}
