package query

import (
	"testing"

	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/kerntool/core/kerning"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoFont(t *testing.T) *kerning.Font {
	f, err := kerning.Builder{
		Name:   "Demo",
		Glyphs: []string{"A", "Aacute", "V", "W", "O", "D", "Q", "H", "n", "o", "period"},
		Groups: kerning.Groups{
			"public.kern1.O": {"O", "D", "Q"},
			"public.kern1.A": {"A", "Aacute"},
			"public.kern2.O": {"O", "Q"},
			"public.kern2.A": {"A", "Aacute"},
			"public.kern2.V": {"V", "W"},
		},
		ReferenceGroups: kerning.ReferenceGroups{
			"round": {"public.kern1.O", "public.kern2.O"},
		},
		Kerning: map[kerning.Pair]float64{
			kerning.P("public.kern1.A", "public.kern2.V"): -60,
			kerning.P("Aacute", "public.kern2.V"):         -40,
			kerning.P("public.kern1.O", "public.kern2.A"): -20,
			kerning.P("V", "period"):                      -80,
			kerning.P("H", "O"):                           5,
		},
	}.Build()
	require.NoError(t, err)
	return f
}

func TestValidateGlyphList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	p := kerning.DefaultPrefixes()
	none := GlyphListOptions{}
	all := GlyphListOptions{AllowGroups: true, AllowReferenceGroups: true}
	assert.False(t, IsValidGlyphList("", all, p))
	assert.False(t, IsValidGlyphList("   ", all, p))
	assert.True(t, IsValidGlyphList("A or B", none, p))
	assert.False(t, IsValidGlyphList("A or [O]", none, p))
	assert.False(t, IsValidGlyphList("{O}", none, p))
	assert.True(t, IsValidGlyphList("A or [O]", GlyphListOptions{AllowGroups: true}, p))
	assert.False(t, IsValidGlyphList("(round)", GlyphListOptions{AllowGroups: true}, p))
	assert.True(t, IsValidGlyphList("(round)", GlyphListOptions{AllowReferenceGroups: true}, p))
	assert.False(t, IsValidGlyphList("all", all, p))
	assert.False(t, IsValidGlyphList("A A", all, p))
	err := ValidateGlyphList("not A", all, p)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestValidateKerningPair(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	p := kerning.DefaultPrefixes()
	all := PairOptions{AllowGroups: true, AllowVariables: true}
	assert.True(t, IsValidKerningPair("A, V", PairOptions{}, p))
	assert.True(t, IsValidKerningPair("A", PairOptions{}, p))
	assert.True(t, IsValidKerningPair("(round), V", PairOptions{}, p))
	assert.False(t, IsValidKerningPair("[A], [V]", PairOptions{}, p))
	assert.True(t, IsValidKerningPair("[A], [V]", PairOptions{AllowGroups: true}, p))
	assert.False(t, IsValidKerningPair("exception, all", PairOptions{AllowGroups: true}, p))
	assert.True(t, IsValidKerningPair("exception, all", all, p))
	assert.False(t, IsValidKerningPair("", all, p))
	assert.False(t, IsValidKerningPair("A, V not", all, p))
	//
	err := ValidateKerningPair("a, a, a", all, p)
	assert.Equal(t, core.ESPLIT, core.Code(err))
	err = ValidateKerningPair("(public.kern1.O), V", all, p)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func searchGlyphs(t *testing.T, expr string, groups kerning.GroupSource) []string {
	f := demoFont(t)
	tokens, err := Tokenize(expr, f.Prefixes())
	require.NoError(t, err)
	return SearchGlyphList(tokens, f.GlyphOrder(), groups).Strings()
}

func TestSearchGlyphList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	f := demoFont(t)
	cases := map[string][]string{
		"A or V":           {"A", "V"},
		"*acute":           {"Aacute"},
		"A* not A":         {"Aacute"},
		"[O]":              {"D", "O", "Q"},
		"[A":               {"A", "Aacute"},
		"O]":               {"D", "O", "Q"},
		"[V":               {"V", "W"},
		"V]":               {},
		"{D}":              {"D", "O", "Q"},
		"{D":               {},
		"{W":               {"V", "W"},
		"(round)":          {"D", "O", "Q"},
		"(nothing)":        {},
		"[O] not Q":        {"D", "O"},
		"[O] and {Q":       {"O", "Q"},
		"missing or H":     {"H"},
		"[*]":              {"A", "Aacute", "D", "O", "Q", "V", "W"},
		"? not [*] not o":  {"H", "n"},
		"n or o and [O]":   {},
		"n or o or period": {"n", "o", "period"},
	}
	for expr, expected := range cases {
		assert.Equal(t, expected, searchGlyphs(t, expr, f), "expression %q", expr)
	}
	// without groups, group tokens select nothing
	assert.Equal(t, []string{"A"}, searchGlyphs(t, "A", nil))
	assert.Equal(t, []string{}, searchGlyphs(t, "[O]", nil))
	// no tokens, no glyphs
	assert.Equal(t, []string{}, SearchGlyphList(nil, f.GlyphOrder(), f).Strings())
}

func TestSearchGlyphsInFontOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	f := demoFont(t)
	glyphs, err := SearchGlyphs("[O] or [V", f)
	require.NoError(t, err)
	assert.Equal(t, []string{"V", "W", "O", "D", "Q"}, glyphs)
	_, err = SearchGlyphs("exception", f)
	assert.Error(t, err)
}

func evalSide(t *testing.T, f *kerning.Font, expr string, s kerning.Side) []string {
	tokens, err := Tokenize(expr, f.Prefixes())
	require.NoError(t, err)
	return EvaluatePairSide(tokens, s, f.Pairs(), f).Strings()
}

func TestEvaluatePairSide(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	f := demoFont(t)
	assert.Equal(t, []string{"Aacute"}, evalSide(t, f, "exception", kerning.Side1))
	assert.Equal(t, []string{"O"}, evalSide(t, f, "exception", kerning.Side2))
	assert.Len(t, evalSide(t, f, "group", kerning.Side1), 5)
	assert.Len(t, evalSide(t, f, "glyph", kerning.Side2), 11)
	assert.Len(t, evalSide(t, f, "all", kerning.Side1), 16)
	assert.Equal(t, []string{"public.kern1.A"}, evalSide(t, f, "[A]", kerning.Side1))
	assert.Equal(t, []string{"public.kern2.A"}, evalSide(t, f, "[A]", kerning.Side2))
	assert.Equal(t, []string{"public.kern2.A"}, evalSide(t, f, "[A", kerning.Side1))
	assert.Equal(t, []string{"public.kern1.A"}, evalSide(t, f, "{Aacute}", kerning.Side1))
	assert.Equal(t, []string{"public.kern2.V"}, evalSide(t, f, "{W}", kerning.Side2))
	assert.Equal(t, []string{}, evalSide(t, f, "{W}", kerning.Side1))
	assert.Equal(t, []string{"public.kern1.O", "public.kern2.O"}, evalSide(t, f, "(round)", kerning.Side1))
	assert.Equal(t, []string{"A", "public.kern1.A"}, evalSide(t, f, "A or [A]", kerning.Side1))
	assert.Equal(t, []string{}, evalSide(t, f, "[nothing] or {nothing}", kerning.Side1))
}

func TestFilterPairs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	f := demoFont(t)
	pairs := f.Pairs()
	cases := map[string][]kerning.Pair{
		"[A], [V]":       {kerning.P("public.kern1.A", "public.kern2.V")},
		"exception, all": {kerning.P("Aacute", "public.kern2.V")},
		"all, exception": {kerning.P("H", "O")},
		"group": {
			kerning.P("public.kern1.A", "public.kern2.V"),
			kerning.P("public.kern1.O", "public.kern2.A"),
		},
		"glyph": {kerning.P("H", "O"), kerning.P("V", "period")},
		"{Aacute} or Aacute, {W}": {
			kerning.P("Aacute", "public.kern2.V"),
			kerning.P("public.kern1.A", "public.kern2.V"),
		},
		"(round), all": {kerning.P("public.kern1.O", "public.kern2.A")},
		"V, period":    {kerning.P("V", "period")},
		"all not V, all not [V": {
			kerning.P("H", "O"),
			kerning.P("public.kern1.O", "public.kern2.A"),
		},
	}
	for expr, expected := range cases {
		selected, err := FilterPairs(expr, pairs, f)
		require.NoError(t, err, expr)
		assert.Equal(t, expected, selected, "expression %q", expr)
	}
	_, err := FilterPairs("a, b, c", pairs, f)
	assert.Equal(t, core.ESPLIT, core.Code(err))
	_, err = FilterPairs("a a", pairs, f)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestNameSetOrdered(t *testing.T) {
	s := NewNameSet("c", "x", "a")
	assert.Equal(t, []string{"a", "c", "x"}, s.Strings())
	assert.Equal(t, []string{"c", "a", "x"}, s.Ordered([]string{"c", "b", "a"}))
	var zero NameSet
	assert.Equal(t, 0, zero.Len())
	assert.False(t, zero.Contains("a"))
}

func TestNameSetZeroValueAdd(t *testing.T) {
	var s NameSet
	s.Add("b", "a", "b")
	assert.Equal(t, []string{"a", "b"}, s.Strings())
	assert.True(t, s.Contains("a"))
	u := s.Union(NewNameSet("c"))
	assert.Equal(t, 3, u.Len())
	assert.Equal(t, 2, s.Len())
}
