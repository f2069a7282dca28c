package query

import (
	"strings"

	"github.com/npillmayer/kerntool/core"
)

// SplitPair splits a kerning pair expression into the expressions for
// side 1 and side 2. The sides are separated by a single comma outside of
// any (...) span. An expression without a comma applies to both sides.
//
// n is the number of sides found in expr: 1 for a single expression, 2 for
// a proper split and 0 if expr cannot be split (more than one separator,
// unbalanced parentheses or an empty side).
func SplitPair(expr string) (side1, side2 string, n int) {
	depth, comma := 0, -1
	for i, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return "", "", 0
			}
			depth--
		case ',':
			if depth > 0 {
				continue
			}
			if comma >= 0 {
				return "", "", 0
			}
			comma = i
		}
	}
	if depth != 0 {
		return "", "", 0
	}
	if comma < 0 {
		s := strings.TrimSpace(expr)
		return s, s, 1
	}
	side1 = strings.TrimSpace(expr[:comma])
	side2 = strings.TrimSpace(expr[comma+1:])
	if side1 == "" || side2 == "" {
		return "", "", 0
	}
	return side1, side2, 2
}

// SplitPairE is like SplitPair, but reports a failing split as an error of
// kind core.ESPLIT.
func SplitPairE(expr string) (side1, side2 string, err error) {
	var n int
	if side1, side2, n = SplitPair(expr); n == 0 {
		return "", "", core.Error(core.ESPLIT, "cannot split %q into two sides", expr)
	}
	return side1, side2, nil
}
