package transform

import (
	"bytes"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/npillmayer/kerntool/core"
)

// Marshal serializes rules to an XML document. Every rule is validated
// first; attributes are written in alphabetical order.
func Marshal(rules []Rule) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rules); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes rules as an XML document to w.
func Write(w io.Writer, rules []Rule) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	transformations := doc.CreateElement("xml").CreateElement("transformations")
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return err
		}
		el := transformations.CreateElement(r.Type.tag())
		names := make([]string, 0, len(r.Settings))
		for name := range r.Settings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			el.CreateAttr(name, formatValue(r.Settings[name]))
		}
	}
	doc.Indent(2)
	_, err := doc.WriteTo(w)
	tracer().Debugf("wrote %d transformation rules", len(rules))
	return err
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		if x {
			return "1"
		}
		return "0"
	}
	return ""
}

// Unmarshal parses an XML document of transformation rules. Rules are
// returned in document order. Any structural or semantic problem results
// in an error of kind core.EFORMAT and no rules.
func Unmarshal(data []byte) ([]Rule, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		tracer().Errorf("cannot parse transformation rules: %v", err)
		return nil, core.WrapError(err, core.EFORMAT, "Invalid XML syntax")
	}
	if doc.Root() == nil {
		tracer().Errorf("cannot parse transformation rules: no root element")
		return nil, core.Error(core.EFORMAT, "Invalid XML syntax")
	}
	transformations := doc.FindElement("//transformations")
	if transformations == nil {
		return nil, core.Error(core.EFORMAT, "No transformations in file")
	}
	var rules []Rule
	for _, el := range transformations.ChildElements() {
		r, err := readRule(el)
		if err != nil {
			tracer().Errorf("transformation rule <%s>: %v", el.Tag, core.UserMessage(err))
			return nil, err
		}
		rules = append(rules, r)
	}
	tracer().Infof("read %d transformation rules", len(rules))
	return rules, nil
}

func readRule(el *etree.Element) (Rule, error) {
	t, ok := typeForTag(el.Tag)
	if !ok {
		return Rule{}, core.Error(core.EFORMAT, "Unknown transformation type: %s", el.Tag)
	}
	r := Rule{Type: t, Settings: make(Settings)}
	for _, s := range schema[t] {
		attr := el.SelectAttr(s.name)
		if attr == nil && t == Copy {
			attr = el.SelectAttr(legacyNames[s.name])
		}
		if attr == nil {
			return Rule{}, errMissing(s.name, t)
		}
		v, err := parseValue(attr.Value, s.kind)
		if err != nil {
			return Rule{}, errInvalid(s.name, t)
		}
		r.Settings[s.name] = v
	}
	return r, nil
}

func parseValue(s string, k kind) (interface{}, error) {
	switch k {
	case floatKind:
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	case intKind:
		return strconv.Atoi(strings.TrimSpace(s))
	case boolKind:
		switch s {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
		return nil, strconv.ErrSyntax
	}
	return s, nil
}

// Read parses transformation rules from r.
func Read(r io.Reader) ([]Rule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// ReadFile reads transformation rules from a file.
func ReadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read transformations file %s", path)
	}
	return Unmarshal(data)
}

// WriteFile writes transformation rules to a file. Nothing is written if
// any of the rules is invalid.
func WriteFile(path string, rules []Rule) error {
	data, err := Marshal(rules)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
