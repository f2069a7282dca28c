package kerning

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/kerntool/core"
	"gopkg.in/yaml.v3"
)

// snapshot is the YAML representation of a Font:
//
//	name: Demo Sans
//	glyphs: [A, V, O, D]
//	groups:
//	  public.kern1.O: [O, D]
//	referenceGroups:
//	  round: [public.kern1.O]
//	kerning:
//	  - {side1: A, side2: V, value: -60}
//	cmap:
//	  U+0041: A
type snapshot struct {
	Name            string              `yaml:"name,omitempty"`
	Glyphs          []string            `yaml:"glyphs"`
	Groups          map[string][]string `yaml:"groups,omitempty"`
	ReferenceGroups map[string][]string `yaml:"referenceGroups,omitempty"`
	Kerning         []snapshotPair      `yaml:"kerning,omitempty"`
	CMap            map[string]string   `yaml:"cmap,omitempty"`
}

type snapshotPair struct {
	Side1 string  `yaml:"side1"`
	Side2 string  `yaml:"side2"`
	Value float64 `yaml:"value"`
}

// ReadSnapshot decodes a YAML font snapshot and builds a Font from it,
// using prefixes p.
func ReadSnapshot(r io.Reader, p Prefixes) (*Font, error) {
	var snap snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return nil, core.WrapError(err, core.EFORMAT, "invalid kerning snapshot: %v", err)
	}
	b := Builder{
		Name:            snap.Name,
		Glyphs:          snap.Glyphs,
		Groups:          Groups(snap.Groups),
		ReferenceGroups: ReferenceGroups(snap.ReferenceGroups),
		Kerning:         make(map[Pair]float64, len(snap.Kerning)),
		CMap:            make(map[rune]string, len(snap.CMap)),
		Prefixes:        p,
	}
	for _, row := range snap.Kerning {
		b.Kerning[P(row.Side1, row.Side2)] = row.Value
	}
	for key, glyph := range snap.CMap {
		r, err := parseCodepoint(key)
		if err != nil {
			return nil, err
		}
		b.CMap[r] = glyph
	}
	return b.Build()
}

// LoadSnapshot reads a YAML font snapshot from a file.
func LoadSnapshot(path string, p Prefixes) (*Font, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open snapshot %s", path)
	}
	defer file.Close()
	tracer().Infof("loading kerning snapshot %s", path)
	return ReadSnapshot(file, p)
}

// WriteSnapshot encodes f as YAML.
func WriteSnapshot(w io.Writer, f *Font) error {
	snap := snapshot{
		Name:            f.Name,
		Glyphs:          f.glyphs,
		Groups:          f.groups,
		ReferenceGroups: f.referenceGroups,
		CMap:            make(map[string]string, len(f.cmap)),
	}
	for _, pair := range f.Pairs() {
		snap.Kerning = append(snap.Kerning, snapshotPair{pair.Side1, pair.Side2, f.kerning[pair]})
	}
	runes := make([]rune, 0, len(f.cmap))
	for r := range f.cmap {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	for _, r := range runes {
		snap.CMap[fmt.Sprintf("U+%04X", r)] = f.cmap[r]
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&snap); err != nil {
		return err
	}
	return enc.Close()
}

func parseCodepoint(key string) (rune, error) {
	k := strings.ToUpper(strings.TrimSpace(key))
	if !strings.HasPrefix(k, "U+") {
		return 0, core.Error(core.EFORMAT, "invalid code point %q in cmap, expected U+XXXX", key)
	}
	n, err := strconv.ParseUint(k[2:], 16, 32)
	if err != nil {
		return 0, core.WrapError(err, core.EFORMAT, "invalid code point %q in cmap", key)
	}
	return rune(n), nil
}
