package query

import (
	"strings"

	"github.com/npillmayer/kerntool/core/kerning"
)

// Operator combines a token's member set with the result of the tokens
// before it.
type Operator int8

// Operators. The first token of an expression carries NoOperator, all
// others carry exactly one of And, Or, Not.
const (
	NoOperator Operator = iota
	And
	Or
	Not
)

var operators = map[string]Operator{
	"and": And,
	"or":  Or,
	"not": Not,
}

func (op Operator) String() string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	case Not:
		return "not"
	}
	return ""
}

// TokenType is the type of an expression member.
type TokenType int8

// Token types
const (
	GlyphName TokenType = iota
	GroupName
	GroupLookup
	ReferenceGroupName
	Variable
)

func (t TokenType) String() string {
	switch t {
	case GlyphName:
		return "GlyphName"
	case GroupName:
		return "GroupName"
	case GroupLookup:
		return "GroupLookup"
	case ReferenceGroupName:
		return "ReferenceGroupName"
	case Variable:
		return "Variable"
	}
	return "<unknown>"
}

// Variables of kerning pair expressions.
const (
	VarException = "exception"
	VarAll       = "all"
	VarGroup     = "group"
	VarGlyph     = "glyph"
)

var variables = map[string]bool{
	VarException: true,
	VarAll:       true,
	VarGroup:     true,
	VarGlyph:     true,
}

// Token is a member of an expression together with the operator preceding it.
// GroupPrefix tells which side's group prefix applies to GroupName and
// GroupLookup tokens; kerning.NoSide means "not determined by the token".
type Token struct {
	Operator    Operator
	Type        TokenType
	Pattern     string
	GroupPrefix kerning.Side
}

func (t Token) String() string {
	var b strings.Builder
	if t.Operator != NoOperator {
		b.WriteString(t.Operator.String())
		b.WriteByte(' ')
	}
	opening, closing := "", ""
	switch t.Type {
	case GroupName:
		opening, closing = "[", "]"
	case GroupLookup:
		opening, closing = "{", "}"
	case ReferenceGroupName:
		opening, closing = "(", ")"
	}
	switch t.GroupPrefix {
	case kerning.Side1:
		opening = ""
	case kerning.Side2:
		closing = ""
	}
	b.WriteString(opening)
	b.WriteString(t.Pattern)
	b.WriteString(closing)
	return b.String()
}

// Tokenize splits one side of an expression into tokens. Reference group
// names are checked against the reserved prefix of p.
//
// An empty expression results in an empty token slice without error; it
// is up to the caller to decide if that is acceptable. Malformed
// expressions result in an error of kind core.EINVALID.
func Tokenize(expr string, p kerning.Prefixes) ([]Token, error) {
	parts := splitMembers(strings.TrimSpace(expr))
	if len(parts) == 0 {
		return []Token{}, nil
	}
	tokens := make([]Token, 0, len(parts))
	pending := NoOperator
	for i, part := range parts {
		if op, isOp := operators[part]; isOp {
			if i == 0 {
				return nil, errExpression("expression must not start with operator %q", part)
			}
			if pending != NoOperator {
				return nil, errExpression("operator %q follows operator %q", part, pending)
			}
			pending = op
			continue
		}
		if i > 0 && pending == NoOperator {
			return nil, errExpression("missing operator before %q", part)
		}
		token, err := classify(part, p)
		if err != nil {
			return nil, err
		}
		token.Operator = pending
		pending = NoOperator
		tokens = append(tokens, token)
	}
	if pending != NoOperator {
		return nil, errExpression("expression must not end with operator %q", pending)
	}
	tracer().Debugf("tokenized %q into %v", expr, tokens)
	return tokens, nil
}

// splitMembers splits s at spaces, except for spaces inside a (...) span.
// Runs of spaces count as a single separator.
func splitMembers(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ' ':
			if depth == 0 {
				if i > start {
					parts = append(parts, s[start:i])
				}
				start = i + 1
			}
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

type bracketKind int8

const (
	noBracket bracketKind = iota
	squareBracket
	curlyBracket
	roundBracket
)

func openingKind(c byte) bracketKind {
	switch c {
	case '[':
		return squareBracket
	case '{':
		return curlyBracket
	case '(':
		return roundBracket
	}
	return noBracket
}

func closingKind(c byte) bracketKind {
	switch c {
	case ']':
		return squareBracket
	case '}':
		return curlyBracket
	case ')':
		return roundBracket
	}
	return noBracket
}

// groupPrefix is the truth table for one-sided brackets: a missing opening
// bracket denotes a side-1 group, a missing closing bracket a side-2 group.
func groupPrefix(hasOpen, hasClose bool) kerning.Side {
	switch {
	case hasOpen && hasClose:
		return kerning.NoSide
	case hasClose:
		return kerning.Side1
	case hasOpen:
		return kerning.Side2
	}
	return kerning.NoSide
}

func classify(member string, p kerning.Prefixes) (Token, error) {
	if variables[member] {
		return Token{Type: Variable, Pattern: member}, nil
	}
	opening := openingKind(member[0])
	closing := closingKind(member[len(member)-1])
	if opening != noBracket && closing != noBracket && opening != closing {
		return Token{}, errExpression("mismatched brackets in %q", member)
	}
	kind := opening
	if kind == noBracket {
		kind = closing
	}
	if kind == noBracket {
		return Token{Type: GlyphName, Pattern: member}, nil
	}
	pattern := member
	if opening != noBracket {
		pattern = pattern[1:]
	}
	if closing != noBracket && len(pattern) > 0 {
		pattern = pattern[:len(pattern)-1]
	}
	if pattern == "" {
		return Token{}, errExpression("empty name in %q", member)
	}
	token := Token{Pattern: pattern}
	switch kind {
	case squareBracket:
		token.Type = GroupName
		token.GroupPrefix = groupPrefix(opening != noBracket, closing != noBracket)
	case curlyBracket:
		token.Type = GroupLookup
		token.GroupPrefix = groupPrefix(opening != noBracket, closing != noBracket)
	case roundBracket:
		if opening == noBracket || closing == noBracket {
			return Token{}, errExpression("reference group %q must be enclosed in parentheses", member)
		}
		if p.IsReserved(pattern) {
			return Token{}, errExpression("reference group name %q must not start with %q",
				pattern, p.Reserved)
		}
		token.Type = ReferenceGroupName
	}
	return token, nil
}
