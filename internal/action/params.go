package action

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/frontctl/internal/node"
)

// Params is the parameter value for one action. The zero value behaves as an
// empty object.
type Params struct {
	value gjson.Result
}

// Empty returns an empty parameter object.
func Empty() Params {
	return Params{value: gjson.Parse("{}")}
}

// Get reads a gjson path from the parameters, e.g. "id" or "items.0.name".
func (p Params) Get(path string) gjson.Result {
	return p.value.Get(path)
}

// Raw returns the JSON text of the parameters; "{}" for empty ones.
func (p Params) Raw() string {
	if p.value.Raw == "" {
		return "{}"
	}
	return p.value.Raw
}

// IsEmpty reports whether the parameters hold no fields.
func (p Params) IsEmpty() bool {
	if !p.value.Exists() {
		return true
	}
	if p.value.IsObject() {
		return len(p.value.Map()) == 0
	}
	return false
}

// Value returns the parameters as plain Go values (map[string]any for objects).
func (p Params) Value() any {
	if !p.value.Exists() {
		return map[string]any{}
	}
	return p.value.Value()
}

// Decode unmarshals the parameters into v.
func (p Params) Decode(v any) error {
	return json.Unmarshal([]byte(p.Raw()), v)
}

// Set holds the parameters declared on one node, keyed by Descriptor.Key.
type Set map[string]Params

// For returns the parameters for d, or an empty object when none were declared.
func (s Set) For(d Descriptor) Params {
	if p, ok := s[d.Key()]; ok {
		return p
	}
	return Empty()
}

// ParseParams reads the parameter attribute of n. A missing or empty
// attribute yields an empty Set; malformed JSON yields a *ParseError.
func ParseParams(n node.Node) (Set, error) {
	attr, ok := n.Attribute(AttrParams)
	if !ok || attr == "" {
		return Set{}, nil
	}
	return ParseParamText(attr)
}

// ParseParamText parses raw parameter attribute text.
func ParseParamText(attr string) (Set, error) {
	if !gjson.Valid(attr) {
		return nil, &ParseError{Attribute: attr, Message: "not valid JSON"}
	}

	doc := gjson.Parse(attr)
	if !doc.IsObject() {
		return nil, &ParseError{Attribute: attr, Message: "expected a JSON object"}
	}

	set := make(Set)
	doc.ForEach(func(key, value gjson.Result) bool {
		if !falsy(value) {
			set[key.String()] = Params{value: value}
		}
		return true
	})
	return set, nil
}

// falsy reports values that stand for "no parameters": null, false, 0 and "".
func falsy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Num == 0
	case gjson.String:
		return v.Str == ""
	}
	return false
}

// SetParam returns attr with the parameters for d replaced by value.
// An empty attr starts from an empty object.
func SetParam(attr string, d Descriptor, value any) (string, error) {
	if strings.TrimSpace(attr) == "" {
		attr = "{}"
	}
	return sjson.Set(attr, escapePath(d.Key()), value)
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
)

// escapePath makes a literal key usable as a single sjson path component.
func escapePath(key string) string {
	return pathEscaper.Replace(key)
}
