/*
Package kerning holds the data model shared by the kerning tools: pair
sides and group prefixes, kerning pairs and their per-side classification,
kerning groups and reference groups, and the read-only data source contract
which the query evaluator and the transformation rules operate on.

Font editors keep kerning groups in a flat namespace and distinguish the
side a group applies to by a reserved name prefix. We stick to the UFO
convention:

	public.kern1.O   ⇒ a group of glyphs on the left side of a pair
	public.kern2.O   ⇒ a group of glyphs on the right side of a pair

A glyph may be a member of at most one group per side.

Reference groups are a separate lookup: a reference group names a list of
real kerning groups. They are used for matching and auto-grouping only and
never show up as a key of a kerning pair.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package kerning

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kerning.model'.
func tracer() tracing.Trace {
	return tracing.Select("kerning.model")
}
