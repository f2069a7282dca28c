package kerning

import (
	"sort"

	"github.com/npillmayer/kerntool/core"
)

// Groups maps group names to an ordered list of member glyph names.
// Kerning groups of both sides share one namespace and are told apart by
// their prefix.
type Groups map[string][]string

// Names returns all group names, sorted.
func (g Groups) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KerningGroupNames returns the sorted names of all groups which are
// kerning groups of side s. For s = NoSide, groups of either side are
// returned.
func (g Groups) KerningGroupNames(p Prefixes, s Side) []string {
	names := make([]string, 0, len(g))
	for _, name := range g.Names() {
		if p.IsGroup(name, s) {
			names = append(names, name)
		}
	}
	return names
}

// GlyphGroupMap builds a map glyph name → group name for all kerning
// groups of side s. A glyph must not be a member of more than one group
// on the same side; if it is, GlyphGroupMap returns an error naming the
// glyph and both groups.
func GlyphGroupMap(groups Groups, s Side, p Prefixes) (map[string]string, error) {
	glyphGroups := make(map[string]string)
	for _, name := range groups.KerningGroupNames(p, s) {
		for _, glyph := range groups[name] {
			if other, ok := glyphGroups[glyph]; ok && other != name {
				tracer().Errorf("glyph %q is member of groups %q and %q", glyph, other, name)
				return nil, core.Error(core.EINVALID,
					"glyph %q is member of more than one %s group: %q and %q",
					glyph, s, other, name)
			}
			glyphGroups[glyph] = name
		}
	}
	return glyphGroups, nil
}

// ReferenceGroups maps a reference group name to the names of the kerning
// groups it stands for.
type ReferenceGroups map[string][]string
