package fontsource

import (
	"testing"

	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/kerntool/core/kerning"
	"github.com/npillmayer/kerntool/core/kerning/query"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.fonts")
	defer teardown()
	//
	f, err := Parse(goregular.TTF, Repertoire{{'A', 'Z'}})
	require.NoError(t, err)
	assert.NotEmpty(t, f.Name)
	assert.Equal(t, "", f.Filepath)
	glyphs := f.GlyphOrder()
	require.NotEmpty(t, glyphs)
	a, ok := f.GlyphForRune('A')
	require.True(t, ok)
	assert.Contains(t, glyphs, a)
	_, ok = f.GlyphForRune('a')
	assert.False(t, ok, "'a' is not in the repertoire")
	// binary fonts have no groups, so every pair is a glyph pair
	assert.Empty(t, f.GroupNames())
	for _, pair := range f.Pairs() {
		t1, t2 := f.PairType(pair)
		assert.Equal(t, kerning.GlyphPair, t1)
		assert.Equal(t, kerning.GlyphPair, t2)
		v, _ := f.Value(pair)
		assert.NotZero(t, v)
	}
}

func TestGlyphNamesAreUnique(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.fonts")
	defer teardown()
	//
	f := Fallback()
	seen := make(map[string]bool)
	for _, g := range f.GlyphOrder() {
		assert.False(t, seen[g], "duplicate glyph name %q", g)
		seen[g] = true
	}
	assert.Equal(t, "internal", f.Filepath)
	assert.Same(t, f, Fallback())
}

func TestQueryBinaryFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.fonts")
	defer teardown()
	//
	f := Fallback()
	a, _ := f.GlyphForRune('A')
	v, _ := f.GlyphForRune('V')
	glyphs, err := query.SearchGlyphs(a+" or "+v, f)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, v}, glyphs)
	selected, err := query.FilterPairs("glyph, glyph", f.Pairs(), f)
	require.NoError(t, err)
	assert.Equal(t, f.Pairs(), selected)
}

func TestParseGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.fonts")
	defer teardown()
	//
	_, err := Parse([]byte("no font"), nil)
	assert.Equal(t, core.EFORMAT, core.Code(err))
	_, err = Load("does/not/exist.ttf", nil)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestLocate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kerning.fonts")
	defer teardown()
	//
	path, err := Locate("fontsource.go")
	require.NoError(t, err)
	assert.Equal(t, "fontsource.go", path)
	_, err = Locate("No-Such-Font-Anywhere-4711")
	assert.Equal(t, core.EMISSING, core.Code(err))
}
