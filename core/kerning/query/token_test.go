package query

import (
	"testing"

	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/kerntool/core/kerning"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, expr string) []Token {
	tokens, err := Tokenize(expr, kerning.DefaultPrefixes())
	require.NoError(t, err, "expression %q", expr)
	return tokens
}

func assertInvalid(t *testing.T, expr string) {
	_, err := Tokenize(expr, kerning.DefaultPrefixes())
	if assert.Error(t, err, "expected %q to fail", expr) {
		assert.Equal(t, core.EINVALID, core.Code(err), "expression %q", expr)
	}
}

func TestTokenizeGlyphName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	for _, g := range []string{"a", "A.sc", "uni0410", "f_f_i", "a*", "?.alt", "a(", "a[b"} {
		tokens := tokenize(t, g)
		assert.Equal(t, []Token{{Type: GlyphName, Pattern: g}}, tokens, "glyph %q", g)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	assert.Empty(t, tokenize(t, ""))
	assert.Empty(t, tokenize(t, "   "))
}

func TestTokenizeBracketTruthTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	cases := []struct {
		expr   string
		typ    TokenType
		prefix kerning.Side
	}{
		{"[a]", GroupName, kerning.NoSide},
		{"a]", GroupName, kerning.Side1},
		{"[a", GroupName, kerning.Side2},
		{"{a}", GroupLookup, kerning.NoSide},
		{"a}", GroupLookup, kerning.Side1},
		{"{a", GroupLookup, kerning.Side2},
		{"(a)", ReferenceGroupName, kerning.NoSide},
	}
	for _, c := range cases {
		tokens := tokenize(t, c.expr)
		require.Len(t, tokens, 1, c.expr)
		assert.Equal(t, c.typ, tokens[0].Type, c.expr)
		assert.Equal(t, "a", tokens[0].Pattern, c.expr)
		assert.Equal(t, c.prefix, tokens[0].GroupPrefix, c.expr)
		assert.Equal(t, NoOperator, tokens[0].Operator, c.expr)
		assert.Equal(t, c.expr, tokens[0].String())
	}
	// neither bracket present is a glyph name
	assert.Equal(t, GlyphName, tokenize(t, "a")[0].Type)
}

func TestTokenizeBadBrackets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	for _, expr := range []string{
		"[]", "[", "]", "{}", "{", "}", "()", "(", ")",
		"(a", "a)",
		"[a}", "[a)", "{a]", "{a)", "(a]", "(a}",
		"(public.kern1.O)", "(public.kernX)",
	} {
		assertInvalid(t, expr)
	}
}

func TestTokenizeVariables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	tokens := tokenize(t, "exception or all and group not glyph")
	require.Len(t, tokens, 4)
	for i, v := range []string{"exception", "all", "group", "glyph"} {
		assert.Equal(t, Variable, tokens[i].Type)
		assert.Equal(t, v, tokens[i].Pattern)
	}
	assert.Equal(t, []Operator{NoOperator, Or, And, Not},
		[]Operator{tokens[0].Operator, tokens[1].Operator, tokens[2].Operator, tokens[3].Operator})
}

func TestTokenizeOperators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	for expr, op := range map[string]Operator{"a not a": Not, "a or a": Or, "a and a": And} {
		tokens := tokenize(t, expr)
		require.Len(t, tokens, 2, expr)
		assert.Equal(t, NoOperator, tokens[0].Operator)
		assert.Equal(t, op, tokens[1].Operator, expr)
		assert.Equal(t, "a", tokens[1].Pattern)
	}
	for _, expr := range []string{
		"not a", "or a", "and a",
		"a not", "a or", "a and",
		"a not not a", "a or and a", "a and or a",
		"a a", "a or b c",
	} {
		assertInvalid(t, expr)
	}
}

func TestTokenizeParenthesesProtectSpaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	tokens := tokenize(t, "(round shapes)  or  a]")
	require.Len(t, tokens, 2)
	assert.Equal(t, Token{Type: ReferenceGroupName, Pattern: "round shapes"}, tokens[0])
	assert.Equal(t, Token{Operator: Or, Type: GroupName, Pattern: "a", GroupPrefix: kerning.Side1}, tokens[1])
	assert.Equal(t, "or a]", tokens[1].String())
}

func TestSplitPair(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.query")
	defer teardown()
	//
	cases := []struct {
		expr         string
		side1, side2 string
		n            int
	}{
		{"a, b", "a", "b", 2},
		{"a", "a", "a", 1},
		{"  a or b  ", "a or b", "a or b", 1},
		{"a, a, a", "", "", 0},
		{"(x, y), b", "(x, y)", "b", 2},
		{"(x, y)", "(x, y)", "(x, y)", 1},
		{"a,", "", "", 0},
		{", b", "", "", 0},
		{"(a, b", "", "", 0},
		{"a), b", "", "", 0},
	}
	for _, c := range cases {
		s1, s2, n := SplitPair(c.expr)
		assert.Equal(t, c.n, n, c.expr)
		assert.Equal(t, c.side1, s1, c.expr)
		assert.Equal(t, c.side2, s2, c.expr)
	}
	_, _, err := SplitPairE("a, a, a")
	assert.Equal(t, core.ESPLIT, core.Code(err))
}
