package kerning

import (
	"strings"

	"github.com/npillmayer/schuko"
)

// Side denotes the position of a key within a kerning pair.
type Side int8

// Sides of a kerning pair. NoSide is used wherever a side is not
// determined, e.g. for a group token written as `[O]`.
const (
	NoSide Side = iota
	Side1
	Side2
)

func (s Side) String() string {
	switch s {
	case Side1:
		return "side1"
	case Side2:
		return "side2"
	}
	return "none"
}

// Other returns the opposite side. NoSide stays NoSide.
func (s Side) Other() Side {
	switch s {
	case Side1:
		return Side2
	case Side2:
		return Side1
	}
	return NoSide
}

// Default group prefixes, following the UFO 3 convention.
const (
	DefaultSide1Prefix    = "public.kern1."
	DefaultSide2Prefix    = "public.kern2."
	DefaultReservedPrefix = "public.kern"
)

// Prefixes holds the group name prefixes which tell side-1 groups from
// side-2 groups. Reserved is the common internal prefix of both; a
// reference group name must never start with it.
type Prefixes struct {
	Side1    string
	Side2    string
	Reserved string
}

// DefaultPrefixes returns the UFO prefixes.
func DefaultPrefixes() Prefixes {
	return Prefixes{
		Side1:    DefaultSide1Prefix,
		Side2:    DefaultSide2Prefix,
		Reserved: DefaultReservedPrefix,
	}
}

// PrefixesFromConfig reads prefix overrides from a configuration. Keys are
//
//	kerning.side1-prefix
//	kerning.side2-prefix
//	kerning.reserved-prefix
//
// Missing keys fall back to the defaults.
func PrefixesFromConfig(conf schuko.Configuration) Prefixes {
	p := DefaultPrefixes()
	if conf == nil {
		return p
	}
	if s := conf.GetString("kerning.side1-prefix"); s != "" {
		p.Side1 = s
	}
	if s := conf.GetString("kerning.side2-prefix"); s != "" {
		p.Side2 = s
	}
	if s := conf.GetString("kerning.reserved-prefix"); s != "" {
		p.Reserved = s
	}
	tracer().Debugf("kerning group prefixes = %q, %q (reserved %q)", p.Side1, p.Side2, p.Reserved)
	return p
}

// For returns the group prefix of side s, or "" for NoSide.
func (p Prefixes) For(s Side) string {
	switch s {
	case Side1:
		return p.Side1
	case Side2:
		return p.Side2
	}
	return ""
}

// SideOf returns the side a key belongs to if it is a group name, and
// NoSide if it is a glyph name.
func (p Prefixes) SideOf(key string) Side {
	if p.Side1 != "" && strings.HasPrefix(key, p.Side1) {
		return Side1
	}
	if p.Side2 != "" && strings.HasPrefix(key, p.Side2) {
		return Side2
	}
	return NoSide
}

// IsGroup is true if key is a group name of side s. For s = NoSide,
// groups of either side are accepted.
func (p Prefixes) IsGroup(key string, s Side) bool {
	g := p.SideOf(key)
	if s == NoSide {
		return g != NoSide
	}
	return g == s
}

// GroupKey prepends the prefix of side s to name.
func (p Prefixes) GroupKey(name string, s Side) string {
	return p.For(s) + name
}

// Strip removes a group prefix from key, if present.
func (p Prefixes) Strip(key string) string {
	switch p.SideOf(key) {
	case Side1:
		return key[len(p.Side1):]
	case Side2:
		return key[len(p.Side2):]
	}
	return key
}

// IsReserved is true if name starts with the reserved internal prefix.
func (p Prefixes) IsReserved(name string) bool {
	return p.Reserved != "" && strings.HasPrefix(name, p.Reserved)
}
