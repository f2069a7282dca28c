/*
Package feature locates the kern feature block in OpenType feature source
text (.fea), so that a freshly generated kern feature can replace it.

Feature source is scanned for

	feature kern { … } kern;

with arbitrary white space between the parts. String literals and #-comments
are masked out before searching, thus occurrences of `feature`, `kern`, braces
or semicolons inside of them do not confuse the search.
*/
package feature

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kerning.io'.
func tracer() tracing.Trace {
	return tracing.Select("kerning.io")
}

// Placeholder delimiters, taken from the Unicode private use area.
const (
	stringStart  = "\uE000"
	stringEnd    = "\uE001"
	commentStart = "\uE002"
	commentEnd   = "\uE003"
)

const gap = `(?:\s|\x{E002}\d+\x{E003})`

var (
	kernStart    = regexp.MustCompile(`\bfeature` + gap + `+kern` + gap + `*\{`)
	kernEnd      = regexp.MustCompile(`\}` + gap + `*kern` + gap + `*;`)
	placeholders = regexp.MustCompile(`[\x{E000}\x{E002}](\d+)[\x{E001}\x{E003}]`)
)

// SplitKernFeature splits feature source text into the text before and
// the text after the kern feature block. The block itself is dropped.
//
// If text has no kern feature, before is the complete text plus a
// trailing newline and after is empty. If the block is not closed, it
// extends to the end of text.
func SplitKernFeature(text string) (before, after string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	m := mask(text)
	start := kernStart.FindStringIndex(m.text)
	if start == nil {
		tracer().Debugf("feature text has no kern feature")
		return text + "\n", ""
	}
	before = m.restore(m.text[:start[0]])
	end := kernEnd.FindStringIndex(m.text[start[1]:])
	if end == nil {
		tracer().Infof("kern feature is not closed, dropping rest of feature text")
		return before, ""
	}
	after = m.restore(m.text[start[1]+end[1]:])
	return before, after
}

// ReplaceKernFeature replaces the kern feature block of text by block. If
// text has no kern feature, block is appended.
func ReplaceKernFeature(text, block string) string {
	before, after := SplitKernFeature(text)
	c := cords.Concat(cords.FromString(before), cords.FromString(block), cords.FromString(after))
	return c.String()
}

// masked is feature text with string literals and comments replaced by
// numbered placeholders.
type masked struct {
	text     string
	strings  []string
	comments []string
}

func mask(text string) *masked {
	m := &masked{}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = m.maskLine(line)
	}
	m.text = strings.Join(lines, "\n")
	return m
}

func (m *masked) maskLine(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			j := i + 1
			for j < len(line) && line[j] != '"' {
				if line[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(line) {
				j = len(line) - 1
			}
			b.WriteString(stringStart + strconv.Itoa(len(m.strings)) + stringEnd)
			m.strings = append(m.strings, line[i:j+1])
			i = j
		case '#':
			b.WriteString(commentStart + strconv.Itoa(len(m.comments)) + commentEnd)
			m.comments = append(m.comments, line[i:])
			return b.String()
		default:
			b.WriteByte(line[i])
		}
	}
	return b.String()
}

func (m *masked) restore(s string) string {
	c := cords.FromString("")
	pos := 0
	for _, loc := range placeholders.FindAllStringSubmatchIndex(s, -1) {
		n, _ := strconv.Atoi(s[loc[2]:loc[3]])
		var orig string
		if strings.HasPrefix(s[loc[0]:], stringStart) {
			orig = m.strings[n]
		} else {
			orig = m.comments[n]
		}
		c = cords.Concat(c, cords.FromString(s[pos:loc[0]]), cords.FromString(orig))
		pos = loc[1]
	}
	c = cords.Concat(c, cords.FromString(s[pos:]))
	return c.String()
}
