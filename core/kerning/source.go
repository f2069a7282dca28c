package kerning

import (
	"sort"

	"github.com/npillmayer/kerntool/core"
)

// GlyphSource enumerates glyph names in font order.
type GlyphSource interface {
	GlyphOrder() []string
}

// GroupSource gives access to kerning groups and reference groups.
// Lookups of unknown names return ok = false.
type GroupSource interface {
	Prefixes() Prefixes
	GroupNames() []string
	Group(name string) (members []string, ok bool)
	GroupOf(glyph string, s Side) (group string, ok bool)
	ReferenceGroup(name string) (groups []string, ok bool)
}

// KerningSource gives access to kerning pairs and values.
type KerningSource interface {
	Pairs() []Pair
	PairType(pair Pair) (PairType, PairType)
	Value(pair Pair) (float64, bool)
}

// DataSource is the read-only view of a font which the query evaluator
// and the transformation rules work on.
type DataSource interface {
	GlyphSource
	GroupSource
	KerningSource
}

// CharacterMap maps Unicode code points to glyph names.
type CharacterMap interface {
	GlyphForRune(r rune) (string, bool)
}

// Font is an in-memory snapshot of the kerning-relevant parts of a font.
// It implements DataSource and CharacterMap. A Font must not be changed
// after it has been handed out to clients; use Builder to construct one.
type Font struct {
	Name            string
	glyphs          []string
	groups          Groups
	referenceGroups ReferenceGroups
	kerning         map[Pair]float64
	cmap            map[rune]string
	prefixes        Prefixes
	glyphGroups     [3]map[string]string // indexed by Side
}

var _ DataSource = (*Font)(nil)
var _ CharacterMap = (*Font)(nil)

// Builder collects the parts of a Font.
type Builder struct {
	Name            string
	Glyphs          []string
	Groups          Groups
	ReferenceGroups ReferenceGroups
	Kerning         map[Pair]float64
	CMap            map[rune]string
	Prefixes        Prefixes
}

// Build checks the group invariants and creates a Font. If b.Prefixes is
// unset, the default prefixes are used.
func (b Builder) Build() (*Font, error) {
	f := &Font{
		Name:            b.Name,
		glyphs:          append([]string(nil), b.Glyphs...),
		groups:          make(Groups, len(b.Groups)),
		referenceGroups: make(ReferenceGroups, len(b.ReferenceGroups)),
		kerning:         make(map[Pair]float64, len(b.Kerning)),
		cmap:            make(map[rune]string, len(b.CMap)),
		prefixes:        b.Prefixes,
	}
	if f.prefixes == (Prefixes{}) {
		f.prefixes = DefaultPrefixes()
	}
	for name, members := range b.Groups {
		f.groups[name] = append([]string(nil), members...)
	}
	for name, groups := range b.ReferenceGroups {
		if f.prefixes.IsReserved(name) {
			return nil, core.Error(core.EINVALID,
				"reference group name %q must not start with %q", name, f.prefixes.Reserved)
		}
		f.referenceGroups[name] = append([]string(nil), groups...)
	}
	for pair, value := range b.Kerning {
		f.kerning[pair] = value
	}
	for r, glyph := range b.CMap {
		f.cmap[r] = glyph
	}
	var err error
	for _, s := range []Side{Side1, Side2} {
		if f.glyphGroups[s], err = GlyphGroupMap(f.groups, s, f.prefixes); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("font %q: %d glyphs, %d groups, %d pairs", f.Name, len(f.glyphs),
		len(f.groups), len(f.kerning))
	return f, nil
}

// GlyphOrder is part of interface GlyphSource.
func (f *Font) GlyphOrder() []string {
	return f.glyphs
}

// Prefixes is part of interface GroupSource.
func (f *Font) Prefixes() Prefixes {
	return f.prefixes
}

// GroupNames is part of interface GroupSource.
func (f *Font) GroupNames() []string {
	return f.groups.Names()
}

// Group is part of interface GroupSource.
func (f *Font) Group(name string) ([]string, bool) {
	members, ok := f.groups[name]
	return members, ok
}

// GroupOf is part of interface GroupSource.
func (f *Font) GroupOf(glyph string, s Side) (string, bool) {
	if s != Side1 && s != Side2 {
		return "", false
	}
	g, ok := f.glyphGroups[s][glyph]
	return g, ok
}

// ReferenceGroup is part of interface GroupSource.
func (f *Font) ReferenceGroup(name string) ([]string, bool) {
	groups, ok := f.referenceGroups[name]
	return groups, ok
}

// ReferenceGroupNames returns the sorted names of all reference groups.
func (f *Font) ReferenceGroupNames() []string {
	names := make([]string, 0, len(f.referenceGroups))
	for name := range f.referenceGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pairs is part of interface KerningSource. Pairs are sorted by side 1,
// then side 2.
func (f *Font) Pairs() []Pair {
	pairs := make([]Pair, 0, len(f.kerning))
	for pair := range f.kerning {
		pairs = append(pairs, pair)
	}
	SortPairs(pairs)
	return pairs
}

// PairType is part of interface KerningSource.
func (f *Font) PairType(pair Pair) (PairType, PairType) {
	return ClassifyPair(pair, f.prefixes, f.glyphGroups[Side1], f.glyphGroups[Side2])
}

// Value is part of interface KerningSource.
func (f *Font) Value(pair Pair) (float64, bool) {
	v, ok := f.kerning[pair]
	return v, ok
}

// Kerning returns a copy of the kerning table.
func (f *Font) Kerning() map[Pair]float64 {
	k := make(map[Pair]float64, len(f.kerning))
	for pair, v := range f.kerning {
		k[pair] = v
	}
	return k
}

// GlyphForRune is part of interface CharacterMap.
func (f *Font) GlyphForRune(r rune) (string, bool) {
	g, ok := f.cmap[r]
	return g, ok
}

// WithKerning returns a copy of f with a different kerning table.
func (f *Font) WithKerning(kerning map[Pair]float64) *Font {
	c := *f
	c.kerning = make(map[Pair]float64, len(kerning))
	for pair, v := range kerning {
		c.kerning[pair] = v
	}
	return &c
}

// SortPairs sorts pairs by side 1, then side 2.
func SortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Side1 != pairs[j].Side1 {
			return pairs[i].Side1 < pairs[j].Side1
		}
		return pairs[i].Side2 < pairs[j].Side2
	})
}
