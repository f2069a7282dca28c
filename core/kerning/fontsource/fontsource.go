/*
Package fontsource reads kerning data from binary OpenType and TrueType fonts.

Glyph names are taken from the font's 'post' table, falling back to
"gid<n>" for fonts without glyph names. Kerning values are read from the
'kern' table and are reported in font units; GPOS kerning is not read. Binary fonts as read by this
package have no kerning groups, therefore all of their pairs are glyph pairs.

Reading kerning for every combination of glyphs is quadratic in the number
of glyphs. Load and Parse restrict kerning to the glyphs of a character
repertoire, which defaults to Latin-1 plus Latin Extended-A.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package fontsource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/kerntool/core/kerning"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'kerning.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("kerning.fonts")
}

// Range is an inclusive range of code points.
type Range struct {
	From, To rune
}

// Repertoire is a set of characters whose glyphs take part in kerning.
type Repertoire []Range

// DefaultRepertoire is printable ASCII plus Latin-1 and Latin Extended-A.
var DefaultRepertoire = Repertoire{{0x20, 0x7e}, {0xa0, 0x17f}}

// Font is a binary font loaded as a kerning data source.
type Font struct {
	*kerning.Font
	Filepath string // empty for fonts parsed from memory
}

// Load reads a font file and extracts its kerning for the glyphs of
// repertoire. If repertoire is nil, DefaultRepertoire is used.
func Load(path string, repertoire Repertoire) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font %s", path)
	}
	f, err := Parse(data, repertoire)
	if err != nil {
		return nil, err
	}
	f.Filepath = path
	return f, nil
}

// Parse reads a font from its binary representation.
func Parse(data []byte, repertoire Repertoire) (*Font, error) {
	otf, err := sfnt.Parse(data)
	if err != nil {
		return nil, core.WrapError(err, core.EFORMAT, "cannot parse font")
	}
	if repertoire == nil {
		repertoire = DefaultRepertoire
	}
	var buf sfnt.Buffer
	name, _ := otf.Name(&buf, sfnt.NameIDFull)
	glyphs := glyphNames(otf, &buf)
	cmap := make(map[rune]string)
	var kerned []sfnt.GlyphIndex
	seen := make(map[sfnt.GlyphIndex]bool)
	for _, rng := range repertoire {
		for r := rng.From; r <= rng.To; r++ {
			gid, err := otf.GlyphIndex(&buf, r)
			if err != nil || gid == 0 {
				continue
			}
			cmap[r] = glyphs[gid]
			if !seen[gid] {
				seen[gid] = true
				kerned = append(kerned, gid)
			}
		}
	}
	kern, err := readKerning(otf, &buf, kerned, glyphs)
	if err != nil {
		return nil, err
	}
	tracer().Infof("font %q: %d glyphs, %d mapped characters, %d kerning pairs",
		name, len(glyphs), len(cmap), len(kern))
	f, err := kerning.Builder{
		Name:     name,
		Glyphs:   glyphs,
		Kerning:  kern,
		CMap:     cmap,
		Prefixes: kerning.DefaultPrefixes(),
	}.Build()
	if err != nil {
		return nil, err
	}
	return &Font{Font: f}, nil
}

// glyphNames returns the names of all glyphs of otf in glyph index order.
// Names are made unique.
func glyphNames(otf *sfnt.Font, buf *sfnt.Buffer) []string {
	n := otf.NumGlyphs()
	names := make([]string, n)
	used := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		name, err := otf.GlyphName(buf, sfnt.GlyphIndex(i))
		if err != nil || name == "" {
			name = fmt.Sprintf("gid%d", i)
		}
		if used[name] {
			name = fmt.Sprintf("%s#%d", name, i)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// readKerning reads the kerning of every combination of glyphs in gids.
// A font without a kern table has no kerning.
func readKerning(otf *sfnt.Font, buf *sfnt.Buffer, gids []sfnt.GlyphIndex, names []string) (
	map[kerning.Pair]float64, error) {
	//
	kern := make(map[kerning.Pair]float64)
	ppem := fixed.I(int(otf.UnitsPerEm()))
	for _, left := range gids {
		for _, right := range gids {
			k, err := otf.Kern(buf, left, right, ppem, font.HintingNone)
			if err == sfnt.ErrNotFound {
				tracer().Debugf("font has no kern table")
				return kern, nil
			} else if err != nil {
				return nil, core.WrapError(err, core.EFORMAT, "cannot read kerning")
			}
			if k != 0 {
				kern[kerning.P(names[left], names[right])] = float64(k) / 64
			}
		}
	}
	return kern, nil
}

// Locate finds a font file. name may be a path or the file name of a font
// installed on the system (e.g., "Arial.ttf").
func Locate(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	if filepath.Ext(name) == "" {
		name += ".ttf"
	}
	path, err := findfont.Find(name)
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "font not found: %s", name)
	}
	tracer().Debugf("located font %s at %s", name, path)
	return path, nil
}

// --- Fallback font ---------------------------------------------------------

var fallbackLoading sync.Once

var fallbackFont *Font

// Fallback returns Go Sans Regular as a kerning data source. It is always
// present.
func Fallback() *Font {
	fallbackLoading.Do(func() {
		var err error
		fallbackFont, err = Parse(goregular.TTF, nil)
		if err != nil {
			panic("cannot load fallback font") // this cannot happen
		}
		if strings.TrimSpace(fallbackFont.Name) == "" {
			fallbackFont.Name = "Go Sans"
		}
		fallbackFont.Filepath = "internal"
	})
	return fallbackFont
}
