package feature

import (
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/kerntool/core/kerning"
)

// KernBlock generates a kern feature block for the kerning of src.
// Kerning groups referenced by pairs are written as glyph classes named
// after the group key. Pairs are ordered glyph–glyph first, then pairs of a
// glyph and a class (written with `enum`), then class–class, as
// later rules in a kern feature do not override earlier ones.
func KernBlock(src kerning.DataSource) string {
	p := src.Prefixes()
	var glyphPairs, mixedPairs, classPairs []string
	classes := make(map[string]bool)
	key := func(k string, s kerning.Side) string {
		if p.IsGroup(k, s) {
			classes[k] = true
			return "@" + k
		}
		return k
	}
	for _, pair := range src.Pairs() {
		v, _ := src.Value(pair)
		k1, k2 := key(pair.Side1, kerning.Side1), key(pair.Side2, kerning.Side2)
		rule := k1 + " " + k2 + " " + strconv.FormatFloat(v, 'f', -1, 64) + ";"
		g1, g2 := strings.HasPrefix(k1, "@"), strings.HasPrefix(k2, "@")
		switch {
		case g1 && g2:
			classPairs = append(classPairs, "    pos "+rule)
		case g1 || g2:
			mixedPairs = append(mixedPairs, "    enum pos "+rule)
		default:
			glyphPairs = append(glyphPairs, "    pos "+rule)
		}
	}
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString("feature kern {\n")
	for _, name := range names {
		members, _ := src.Group(name)
		b.WriteString("    @" + name + " = [" + strings.Join(members, " ") + "];\n")
	}
	for _, rules := range [][]string{glyphPairs, mixedPairs, classPairs} {
		for _, rule := range rules {
			b.WriteString(rule + "\n")
		}
	}
	b.WriteString("} kern;\n")
	tracer().Debugf("generated kern feature with %d classes, %d rules", len(names),
		len(glyphPairs)+len(mixedPairs)+len(classPairs))
	return b.String()
}
