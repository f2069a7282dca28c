/*
Package pairlist reads and writes kerning pair lists.

A pair list is a small line-oriented text format, used to feed a space
center or a proof with an ordered list of kerning pairs. The first line
declares the mode and a title:

	#KPL:P: Round Pairs
	O O
	O D
	# comments and blank lines are ignored
	n o

In pair mode (`#KPL:P:`) every data line holds two glyph names separated by a
single space. In word mode (`#KPL:W:`) every data line holds two words. A word
is mapped to glyphs character by character, using the font's character map,
unless it starts with a slash, in which case it is an explicit list of
glyph names:

	#KPL:W: Words
	Hamburg Vienna
	/H/a/m /b/u/r/g

The pair of a word-mode line is formed from the last glyph of the left word
and the first glyph of the right word; both words are kept as context.
Characters without a glyph in the character map are dropped silently. A
word left with no glyphs at all makes its line a syntax error, as the line
has no pair.
*/
package pairlist

import (
	"github.com/npillmayer/kerntool/core/kerning"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kerning.io'.
func tracer() tracing.Trace {
	return tracing.Select("kerning.io")
}

// Mode is the mode of a pair list file.
type Mode string

// Modes of pair list files.
const (
	PairMode Mode = "pair"
	WordMode Mode = "word"
)

// File header markers.
const (
	WordMarker = "#KPL:W:"
	PairMarker = "#KPL:P:"
)

// Context holds the glyphs of the words a word-mode pair was taken from.
type Context struct {
	Left  []string
	Right []string
}

// Entry is a single pair of a pair list. Context is nil in pair mode.
type Entry struct {
	Pair    kerning.Pair
	Context *Context
}

// List is a parsed pair list.
type List struct {
	Mode    Mode
	Title   string
	Entries []Entry
}

// Pairs returns the pairs of all entries.
func (l *List) Pairs() []kerning.Pair {
	pairs := make([]kerning.Pair, len(l.Entries))
	for i, e := range l.Entries {
		pairs[i] = e.Pair
	}
	return pairs
}
