package query

import (
	"path"
	"strings"

	"github.com/derekparker/trie"
)

// nameIndex matches glob patterns against a list of names. The literal
// prefix of a pattern (up to the first wildcard) narrows the candidates
// using a prefix trie.
type nameIndex struct {
	names []string
	trie  *trie.Trie
}

func newNameIndex(names []string) *nameIndex {
	ix := &nameIndex{names: names, trie: trie.New()}
	for _, name := range names {
		ix.trie.Add(name, nil)
	}
	return ix
}

// Match returns all names matching pattern. Wildcards are * (any
// sequence), ? (any single character) and [...] (character class).
// Malformed patterns match nothing.
func (ix *nameIndex) Match(pattern string) []string {
	wildcard := strings.IndexAny(pattern, `*?[\`)
	if wildcard < 0 {
		if _, ok := ix.trie.Find(pattern); ok {
			return []string{pattern}
		}
		return nil
	}
	candidates := ix.names
	if prefix := pattern[:wildcard]; prefix != "" {
		candidates = ix.trie.PrefixSearch(prefix)
	}
	var matches []string
	for _, name := range candidates {
		if ok, err := path.Match(pattern, name); err == nil && ok {
			matches = append(matches, name)
		}
	}
	return matches
}
