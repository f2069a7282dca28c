package query

import (
	"github.com/npillmayer/kerntool/core/kerning"
)

// fold combines the member sets of tokens from left to right.
func fold(tokens []Token, resolve func(Token) NameSet) NameSet {
	result := NewNameSet()
	for _, token := range tokens {
		members := resolve(token)
		switch token.Operator {
		case NoOperator:
			result = members
		case And:
			result = result.Intersect(members)
		case Or:
			result = result.Union(members)
		case Not:
			result = result.Difference(members)
		}
	}
	return result
}

// sidesOf returns the sides a group token refers to. A token without a
// group prefix refers to fallback; if fallback is NoSide, to both sides.
func sidesOf(token Token, fallback kerning.Side) []kerning.Side {
	s := token.GroupPrefix
	if s == kerning.NoSide {
		s = fallback
	}
	if s == kerning.NoSide {
		return []kerning.Side{kerning.Side1, kerning.Side2}
	}
	return []kerning.Side{s}
}

// matchGroups returns the names of all kerning groups of the given sides
// whose unprefixed name matches pattern.
func matchGroups(src kerning.GroupSource, pattern string, sides []kerning.Side) []string {
	p := src.Prefixes()
	var keys []string
	for _, s := range sides {
		var stripped []string
		byName := make(map[string]string)
		for _, key := range src.GroupNames() {
			if p.IsGroup(key, s) && len(key) > len(p.For(s)) {
				name := key[len(p.For(s)):]
				stripped = append(stripped, name)
				byName[name] = key
			}
		}
		for _, name := range newNameIndex(stripped).Match(pattern) {
			keys = append(keys, byName[name])
		}
	}
	return keys
}

// --- Glyph list search -----------------------------------------------------

// SearchGlyphList evaluates a glyph list expression against a list of
// candidate glyph names. Group tokens are resolved to the member glyphs of
// the groups, reference groups to the member glyphs of the groups they
// refer to. groups may be nil, in which case group tokens select nothing.
// The result contains candidate glyphs only.
func SearchGlyphList(tokens []Token, glyphs []string, groups kerning.GroupSource) NameSet {
	index := newNameIndex(glyphs)
	candidates := NewNameSet(glyphs...)
	members := func(groupKeys ...string) NameSet {
		set := NewNameSet()
		for _, key := range groupKeys {
			m, _ := groups.Group(key)
			for _, glyph := range m {
				if candidates.Contains(glyph) {
					set.Add(glyph)
				}
			}
		}
		return set
	}
	resolve := func(token Token) NameSet {
		if token.Type != GlyphName && token.Type != Variable && groups == nil {
			return NewNameSet()
		}
		switch token.Type {
		case GlyphName:
			return NewNameSet(index.Match(token.Pattern)...)
		case GroupName:
			return members(matchGroups(groups, token.Pattern, sidesOf(token, kerning.NoSide))...)
		case GroupLookup:
			set := NewNameSet()
			for _, glyph := range index.Match(token.Pattern) {
				for _, s := range sidesOf(token, kerning.NoSide) {
					if key, ok := groups.GroupOf(glyph, s); ok {
						set = set.Union(members(key))
					}
				}
			}
			return set
		case ReferenceGroupName:
			keys, _ := groups.ReferenceGroup(token.Pattern)
			return members(keys...)
		case Variable:
			switch token.Pattern {
			case VarAll, VarGlyph:
				return NewNameSet(glyphs...)
			case VarGroup:
				set := NewNameSet()
				if groups == nil {
					return set
				}
				for _, glyph := range glyphs {
					for _, s := range []kerning.Side{kerning.Side1, kerning.Side2} {
						if _, ok := groups.GroupOf(glyph, s); ok {
							set.Add(glyph)
						}
					}
				}
				return set
			}
		}
		return NewNameSet()
	}
	result := fold(tokens, resolve)
	tracer().Debugf("glyph list search %v selected %d glyphs", tokens, result.Len())
	return result
}

// SearchGlyphs tokenizes and validates a glyph list expression and
// evaluates it against all glyphs of src.
func SearchGlyphs(expr string, src kerning.DataSource) ([]string, error) {
	opts := GlyphListOptions{AllowGroups: true, AllowReferenceGroups: true}
	if err := ValidateGlyphList(expr, opts, src.Prefixes()); err != nil {
		return nil, err
	}
	tokens, err := Tokenize(expr, src.Prefixes())
	if err != nil {
		return nil, err
	}
	glyphs := src.GlyphOrder()
	return SearchGlyphList(tokens, glyphs, src).Ordered(glyphs), nil
}

// --- Kerning pair sides ----------------------------------------------------

// EvaluatePairSide evaluates one side of a kerning pair expression into the
// set of pair keys (glyph names and group names) it selects for side s.
// Group tokens without an explicit prefix refer to groups of side s.
//
// Variables are resolved as follows:
//
//	all        every glyph name and every kerning group name
//	glyph      every glyph name
//	group      every kerning group name, of either side
//	exception  the side-s key of every pair in visible which is an
//	           exception on side s
//
// Unknown names select nothing.
func EvaluatePairSide(tokens []Token, s kerning.Side, visible []kerning.Pair, src kerning.DataSource) NameSet {
	glyphs := src.GlyphOrder()
	index := newNameIndex(glyphs)
	p := src.Prefixes()
	resolve := func(token Token) NameSet {
		switch token.Type {
		case GlyphName:
			return NewNameSet(index.Match(token.Pattern)...)
		case GroupName:
			return NewNameSet(matchGroups(src, token.Pattern, sidesOf(token, s))...)
		case GroupLookup:
			set := NewNameSet()
			for _, glyph := range index.Match(token.Pattern) {
				for _, side := range sidesOf(token, s) {
					if key, ok := src.GroupOf(glyph, side); ok {
						set.Add(key)
					}
				}
			}
			return set
		case ReferenceGroupName:
			keys, _ := src.ReferenceGroup(token.Pattern)
			return NewNameSet(keys...)
		case Variable:
			switch token.Pattern {
			case VarAll:
				set := NewNameSet(glyphs...)
				for _, key := range src.GroupNames() {
					if p.IsGroup(key, kerning.NoSide) {
						set.Add(key)
					}
				}
				return set
			case VarGlyph:
				return NewNameSet(glyphs...)
			case VarGroup:
				set := NewNameSet()
				for _, key := range src.GroupNames() {
					if p.IsGroup(key, kerning.NoSide) {
						set.Add(key)
					}
				}
				return set
			case VarException:
				set := NewNameSet()
				for _, pair := range visible {
					t1, t2 := src.PairType(pair)
					if (s == kerning.Side1 && t1 == kerning.ExceptionPair) ||
						(s == kerning.Side2 && t2 == kerning.ExceptionPair) {
						set.Add(pair.Key(s))
					}
				}
				return set
			}
		}
		return NewNameSet()
	}
	result := fold(tokens, resolve)
	tracer().Debugf("%s expression %v selected %d keys", s, tokens, result.Len())
	return result
}

// FilterPairs validates a kerning pair expression, evaluates both of its
// sides against pairs and returns the pairs selected by it, preserving the
// order of pairs.
func FilterPairs(expr string, pairs []kerning.Pair, src kerning.DataSource) ([]kerning.Pair, error) {
	opts := PairOptions{AllowGroups: true, AllowVariables: true}
	if err := ValidateKerningPair(expr, opts, src.Prefixes()); err != nil {
		return nil, err
	}
	tokens1, tokens2, err := tokenizePair(expr, src.Prefixes())
	if err != nil {
		return nil, err
	}
	keys1 := EvaluatePairSide(tokens1, kerning.Side1, pairs, src)
	keys2 := EvaluatePairSide(tokens2, kerning.Side2, pairs, src)
	selected := make([]kerning.Pair, 0, len(pairs))
	for _, pair := range pairs {
		if keys1.Contains(pair.Side1) && keys2.Contains(pair.Side2) {
			selected = append(selected, pair)
		}
	}
	tracer().Infof("expression %q selected %d of %d pairs", expr, len(selected), len(pairs))
	return selected, nil
}
