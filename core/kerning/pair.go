package kerning

import "fmt"

// Pair is a kerning pair. Each side is either a glyph name or a group name
// carrying the side's group prefix.
type Pair struct {
	Side1 string
	Side2 string
}

// P is a shortcut to create a kerning pair.
func P(side1, side2 string) Pair {
	return Pair{Side1: side1, Side2: side2}
}

// Key returns the key at side s.
func (p Pair) Key(s Side) string {
	if s == Side2 {
		return p.Side2
	}
	return p.Side1
}

func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Side1, p.Side2)
}

// PairType classifies one side of a kerning pair.
type PairType int8

const (
	GlyphPair     PairType = iota // plain glyph without group membership
	GroupPair                     // a kerning group
	ExceptionPair                 // a glyph overriding the kerning of its group
)

func (t PairType) String() string {
	switch t {
	case GroupPair:
		return "group"
	case ExceptionPair:
		return "exception"
	}
	return "glyph"
}

// ClassifyPair returns the per-side type of a pair. glyphGroups maps a
// side to its glyph→group map (see GlyphGroupMap).
//
// A key carrying the side's group prefix is a group. A glyph key which is
// a member of a group on its side is an exception, all other keys are
// plain glyphs.
func ClassifyPair(pair Pair, p Prefixes, side1Groups, side2Groups map[string]string) (PairType, PairType) {
	classify := func(key string, s Side, glyphGroups map[string]string) PairType {
		if p.IsGroup(key, s) {
			return GroupPair
		}
		if _, ok := glyphGroups[key]; ok {
			return ExceptionPair
		}
		return GlyphPair
	}
	return classify(pair.Side1, Side1, side1Groups), classify(pair.Side2, Side2, side2Groups)
}
