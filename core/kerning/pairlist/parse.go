package pairlist

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/kerntool/core/kerning"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SyntaxErrors collects the (1-based) numbers of all malformed lines of a
// pair list.
type SyntaxErrors struct {
	Lines []int
}

func (e *SyntaxErrors) Error() string {
	switch len(e.Lines) {
	case 0:
		return "no syntax errors"
	case 1:
		return fmt.Sprintf("syntax error in line %d", e.Lines[0])
	}
	n := len(e.Lines)
	head := make([]string, n-1)
	for i, l := range e.Lines[:n-1] {
		head[i] = strconv.Itoa(l)
	}
	return fmt.Sprintf("syntax errors in lines %s and %d", strings.Join(head, ", "), e.Lines[n-1])
}

// Parse parses the text of a pair list. cmap maps the characters of
// word-mode words to glyph names; it may be nil for pair mode.
//
// Parsing is all or nothing: if any data line is malformed, Parse returns
// an error of kind core.ESYNTAX wrapping a *SyntaxErrors listing every
// malformed line. A missing or unknown mode marker results in an error of
// kind core.EFORMAT.
func Parse(text string, cmap kerning.CharacterMap) (*List, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(text, "\n")
	list := &List{}
	header := strings.TrimRight(lines[0], " \t")
	switch {
	case strings.HasPrefix(header, WordMarker):
		list.Mode = WordMode
		list.Title = strings.TrimSpace(header[len(WordMarker):])
	case strings.HasPrefix(header, PairMarker):
		list.Mode = PairMode
		list.Title = strings.TrimSpace(header[len(PairMarker):])
	default:
		tracer().Errorf("pair list header %q has no mode marker", header)
		return nil, core.Error(core.EFORMAT, "unknown file mode")
	}
	tracer().Debugf("parsing %s list %q", list.Mode, list.Title)
	var bad []int
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Count(line, " ") != 1 {
			bad = append(bad, i+1)
			continue
		}
		left, right, _ := strings.Cut(line, " ")
		if list.Mode == PairMode {
			list.Entries = append(list.Entries, Entry{Pair: kerning.P(left, right)})
			continue
		}
		ctx := &Context{Left: wordGlyphs(left, cmap), Right: wordGlyphs(right, cmap)}
		if len(ctx.Left) == 0 || len(ctx.Right) == 0 {
			bad = append(bad, i+1)
			continue
		}
		list.Entries = append(list.Entries, Entry{
			Pair:    kerning.P(ctx.Left[len(ctx.Left)-1], ctx.Right[0]),
			Context: ctx,
		})
	}
	if len(bad) > 0 {
		serr := &SyntaxErrors{Lines: bad}
		tracer().Errorf("pair list %q: %v", list.Title, serr)
		return nil, core.WrapError(serr, core.ESYNTAX, "%s", serr.Error())
	}
	tracer().Infof("parsed %s list %q with %d pairs", list.Mode, list.Title, len(list.Entries))
	return list, nil
}

// wordGlyphs maps a word to glyph names. Words starting with a slash are
// explicit glyph name lists, all other words are mapped character by
// character. Characters without a glyph are dropped.
func wordGlyphs(word string, cmap kerning.CharacterMap) []string {
	var glyphs []string
	if strings.HasPrefix(word, "/") {
		for _, name := range strings.Split(word, "/") {
			if name != "" {
				glyphs = append(glyphs, name)
			}
		}
		return glyphs
	}
	if cmap == nil {
		return nil
	}
	for _, r := range norm.NFC.String(word) {
		if name, ok := cmap.GlyphForRune(r); ok {
			glyphs = append(glyphs, name)
		} else {
			tracer().Debugf("no glyph for character %q", r)
		}
	}
	return glyphs
}

// Read reads a pair list from r. Input may be UTF-8 or, if starting with a
// byte order mark, UTF-16.
func Read(r io.Reader, cmap kerning.CharacterMap) (*List, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, core.WrapError(err, core.EFORMAT, "cannot decode pair list: %v", err)
	}
	return Parse(string(data), cmap)
}

// ReadFile reads a pair list file.
func ReadFile(path string, cmap kerning.CharacterMap) (*List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open pair list %s", path)
	}
	defer file.Close()
	tracer().Infof("reading pair list %s", path)
	return Read(file, cmap)
}
