package query

import (
	"strings"

	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/kerntool/core/kerning"
)

// GlyphListOptions restricts the token types permitted in glyph list
// expressions. Glyph names are always permitted, variables never.
type GlyphListOptions struct {
	AllowGroups          bool // [group] and {lookup}
	AllowReferenceGroups bool // (reference)
}

// PairOptions restricts the token types permitted in kerning pair
// expressions. Glyph names and reference groups are always permitted.
type PairOptions struct {
	AllowGroups    bool // [group] and {lookup}
	AllowVariables bool // exception, all, group, glyph
}

// ValidateGlyphList checks a glyph list expression. It returns nil for a
// valid expression and an error of kind core.EINVALID otherwise.
func ValidateGlyphList(expr string, opts GlyphListOptions, p kerning.Prefixes) error {
	if strings.TrimSpace(expr) == "" {
		return errExpression("empty glyph list")
	}
	tokens, err := Tokenize(expr, p)
	if err != nil {
		return err
	}
	for _, token := range tokens {
		switch token.Type {
		case GlyphName:
		case GroupName, GroupLookup:
			if !opts.AllowGroups {
				return errExpression("groups not permitted: %s", token)
			}
		case ReferenceGroupName:
			if !opts.AllowReferenceGroups {
				return errExpression("reference groups not permitted: %s", token)
			}
		default:
			return errExpression("%q not permitted in glyph list", token.Pattern)
		}
	}
	return nil
}

// IsValidGlyphList is a predicate version of ValidateGlyphList, suited for
// validating input while the user is typing.
func IsValidGlyphList(expr string, opts GlyphListOptions, p kerning.Prefixes) bool {
	return ValidateGlyphList(expr, opts, p) == nil
}

// ValidateKerningPair checks a kerning pair expression. A failing split is
// reported as core.ESPLIT, all other problems as core.EINVALID.
func ValidateKerningPair(expr string, opts PairOptions, p kerning.Prefixes) error {
	side1, side2, err := tokenizePair(expr, p)
	if err != nil {
		return err
	}
	for _, tokens := range [][]Token{side1, side2} {
		for _, token := range tokens {
			switch token.Type {
			case GroupName, GroupLookup:
				if !opts.AllowGroups {
					return errExpression("groups not permitted: %s", token)
				}
			case Variable:
				if !opts.AllowVariables {
					return errExpression("variables not permitted: %s", token)
				}
			}
		}
	}
	return nil
}

// IsValidKerningPair is a predicate version of ValidateKerningPair.
func IsValidKerningPair(expr string, opts PairOptions, p kerning.Prefixes) bool {
	return ValidateKerningPair(expr, opts, p) == nil
}

// tokenizePair splits a kerning pair expression and tokenizes both sides.
func tokenizePair(expr string, p kerning.Prefixes) (side1, side2 []Token, err error) {
	s1, s2, err := SplitPairE(expr)
	if err != nil {
		return nil, nil, err
	}
	if side1, err = Tokenize(s1, p); err != nil {
		return nil, nil, err
	}
	if side2, err = Tokenize(s2, p); err != nil {
		return nil, nil, err
	}
	if len(side1)+len(side2) == 0 {
		return nil, nil, core.Error(core.EINVALID, "empty kerning pair expression")
	}
	return side1, side2, nil
}
