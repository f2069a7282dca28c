package query

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// NameSet is a sorted set of glyph names or kerning pair keys.
type NameSet struct {
	set *treeset.Set
}

// NewNameSet creates a set containing names.
func NewNameSet(names ...string) NameSet {
	s := NameSet{set: treeset.NewWithStringComparator()}
	s.Add(names...)
	return s
}

// Add inserts names into s. The zero value of NameSet is an empty set
// ready to use.
func (s *NameSet) Add(names ...string) {
	if s.set == nil {
		s.set = treeset.NewWithStringComparator()
	}
	for _, name := range names {
		s.set.Add(name)
	}
}

// Contains is true if name is an element of s.
func (s NameSet) Contains(name string) bool {
	if s.set == nil {
		return false
	}
	return s.set.Contains(name)
}

// Len returns the number of elements in s.
func (s NameSet) Len() int {
	if s.set == nil {
		return 0
	}
	return s.set.Size()
}

// Strings returns the elements of s in ascending order.
func (s NameSet) Strings() []string {
	if s.set == nil {
		return []string{}
	}
	names := make([]string, 0, s.set.Size())
	for _, v := range s.set.Values() {
		names = append(names, v.(string))
	}
	return names
}

// Union returns a new set with the elements of s and o.
func (s NameSet) Union(o NameSet) NameSet {
	u := NewNameSet(s.Strings()...)
	u.Add(o.Strings()...)
	return u
}

// Intersect returns a new set with the elements contained in both s and o.
func (s NameSet) Intersect(o NameSet) NameSet {
	x := NewNameSet()
	for _, name := range s.Strings() {
		if o.Contains(name) {
			x.Add(name)
		}
	}
	return x
}

// Difference returns a new set with the elements of s not contained in o.
func (s NameSet) Difference(o NameSet) NameSet {
	d := NewNameSet()
	for _, name := range s.Strings() {
		if !o.Contains(name) {
			d.Add(name)
		}
	}
	return d
}

// Ordered returns the elements of s in the order they appear in order.
// Elements not contained in order are appended in ascending order.
func (s NameSet) Ordered(order []string) []string {
	names := make([]string, 0, s.Len())
	seen := make(map[string]bool, s.Len())
	for _, name := range order {
		if s.Contains(name) && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	for _, name := range s.Strings() {
		if !seen[name] {
			names = append(names, name)
		}
	}
	return names
}
