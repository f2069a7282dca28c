/*
Package transform reads, writes and applies kerning transformation rules.

A transformation rule is one step of a kerning clean-up recipe: copy,
remove, scale, shift, round or threshold all kerning pairs matching a
kerning pair expression (see package query). Recipes are ordered lists of
rules and are stored as XML:

	<?xml version="1.0" encoding="UTF-8"?>
	<xml>
	  <transformations>
	    <remove pattern="exception, all"/>
	    <scale pattern="all" value="1.1"/>
	    <round pattern="all" removeRedundantExceptions="1" value="5"/>
	  </transformations>
	</xml>
*/
package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/kerntool/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kerning.transform'.
func tracer() tracing.Trace {
	return tracing.Select("kerning.transform")
}

// Type is the type of a transformation rule.
type Type int8

// Rule types
const (
	Copy Type = iota
	Remove
	Scale
	Shift
	Round
	Threshold
)

var typeNames = [...]string{"Copy", "Remove", "Scale", "Shift", "Round", "Threshold"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// tag is the XML element name of rules of type t.
func (t Type) tag() string {
	return strings.ToLower(t.String())
}

func typeForTag(tag string) (Type, bool) {
	for i, name := range typeNames {
		if strings.ToLower(name) == tag {
			return Type(i), true
		}
	}
	return 0, false
}

// Setting names
const (
	Pattern                   = "pattern"
	Side1Replacement          = "side1Replacement"
	Side2Replacement          = "side2Replacement"
	Value                     = "value"
	RemoveRedundantExceptions = "removeRedundantExceptions"
)

// legacy attribute names for the replacement settings of copy rules
var legacyNames = map[string]string{
	Side1Replacement: "leftReplacement",
	Side2Replacement: "rightReplacement",
}

type kind int8

const (
	stringKind kind = iota
	floatKind
	intKind
	boolKind
)

type setting struct {
	name string
	kind kind
}

// schema lists the required settings of each rule type.
var schema = map[Type][]setting{
	Copy:      {{Pattern, stringKind}, {Side1Replacement, stringKind}, {Side2Replacement, stringKind}},
	Remove:    {{Pattern, stringKind}},
	Scale:     {{Pattern, stringKind}, {Value, floatKind}},
	Shift:     {{Pattern, stringKind}, {Value, intKind}},
	Round:     {{Pattern, stringKind}, {Value, intKind}, {RemoveRedundantExceptions, boolKind}},
	Threshold: {{Pattern, stringKind}, {Value, intKind}, {RemoveRedundantExceptions, boolKind}},
}

// Settings maps setting names to values. Values are of type string,
// float64, int or bool, depending on the setting and the rule type.
type Settings map[string]interface{}

// Rule is a single transformation rule.
type Rule struct {
	Type     Type
	Settings Settings
}

// NewRule creates a rule of type t. settings are given as alternating
// names and values.
func NewRule(t Type, settings ...interface{}) Rule {
	r := Rule{Type: t, Settings: make(Settings, len(settings)/2)}
	for i := 0; i+1 < len(settings); i += 2 {
		if name, ok := settings[i].(string); ok {
			r.Settings[name] = settings[i+1]
		}
	}
	return r
}

// Validate checks r against the settings schema of its type: every
// required setting must be present with a value of the correct type.
func (r Rule) Validate() error {
	required, ok := schema[r.Type]
	if !ok {
		return core.Error(core.EFORMAT, "Unknown transformation type: %s", r.Type)
	}
	for _, s := range required {
		v, ok := r.Settings[s.name]
		if !ok {
			return errMissing(s.name, r.Type)
		}
		valid := false
		switch s.kind {
		case stringKind:
			_, valid = v.(string)
		case floatKind:
			_, valid = v.(float64)
		case intKind:
			_, valid = v.(int)
		case boolKind:
			_, valid = v.(bool)
		}
		if !valid {
			return errInvalid(s.name, r.Type)
		}
	}
	if len(r.Settings) > len(required) {
		for name := range r.Settings {
			if !hasSetting(required, name) {
				return core.Error(core.EFORMAT, "Unknown attribute %q in %s rule", name, r.Type.tag())
			}
		}
	}
	return nil
}

func hasSetting(settings []setting, name string) bool {
	for _, s := range settings {
		if s.name == name {
			return true
		}
	}
	return false
}

// Pattern returns the kerning pair expression of r.
func (r Rule) Pattern() string {
	s, _ := r.Settings[Pattern].(string)
	return s
}

func (r Rule) String() string {
	names := make([]string, 0, len(r.Settings))
	for name := range r.Settings {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(r.Type.String())
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, r.Settings[name])
	}
	return b.String()
}

func errMissing(name string, t Type) error {
	return core.Error(core.EFORMAT, "Missing attribute %q in %s rule", name, t.tag())
}

func errInvalid(name string, t Type) error {
	return core.Error(core.EFORMAT, "Invalid value for attribute %q in %s rule", name, t.tag())
}
