/*
Package query implements a small expression language to select glyphs and
kerning pairs.

A glyph list expression is a sequence of members, separated by spaces.
Every member but the first is preceded by one of the operators
`and`, `or` or `not`:

	A Aacute or O
	[O] not Q
	*.sc and {a}

Members are

	name        a glyph name, may contain glob wildcards * and ?
	[name]      a kerning group, either side
	name]       a side-1 kerning group
	[name       a side-2 kerning group
	{name}      the kerning groups a glyph is member of, either side
	name}       … side 1 only
	{name       … side 2 only
	(name)      a reference group

A kerning pair expression consists of two glyph list expressions separated
by a comma, one for each side of a pair. A single expression without a
comma applies to both sides. In kerning pair expressions the words
`exception`, `all`, `group` and `glyph` are variables, selecting all exception
keys, all keys, all group keys or all glyph keys respectively.

Operators are folded from left to right: `and` intersects, `or` unites and
`not` subtracts the member's set from the result accumulated so far.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package query

import (
	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kerning.query'.
func tracer() tracing.Trace {
	return tracing.Select("kerning.query")
}

// errExpression produces user level errors for malformed expressions.
func errExpression(format string, v ...interface{}) error {
	return core.Error(core.EINVALID, format, v...)
}
