// Package layout builds node trees from YAML documents.
//
// A document is one element with optional children:
//
//	tag: app
//	id: root
//	bounds: [0, 0, 80, 24]
//	children:
//	  - tag: button
//	    id: open
//	    label: Open
//	    bounds: [2, 1, 12, 2]
//	    actions: menu.open
//	    params:
//	      menu.open: {name: file}
//
// actions and params are shorthands for the data-actions and
// data-action-params attributes; attrs sets any attribute verbatim.
package layout

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dshills/frontctl/internal/action"
	"github.com/dshills/frontctl/internal/node"
)

// AttrLabel holds the text drawn for an element.
const AttrLabel = "label"

// ErrInvalidLayout indicates a document that cannot become a tree.
var ErrInvalidLayout = errors.New("invalid layout")

// Spec is the YAML form of one element.
type Spec struct {
	Tag      string            `yaml:"tag"`
	ID       string            `yaml:"id"`
	Label    string            `yaml:"label"`
	Bounds   []int             `yaml:"bounds"`
	Actions  string            `yaml:"actions"`
	Params   map[string]any    `yaml:"params"`
	Attrs    map[string]string `yaml:"attrs"`
	Children []Spec            `yaml:"children"`
}

// Load reads a layout document from path.
func Load(path string) (*node.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout %s: %w", path, err)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return root, nil
}

// Parse decodes a layout document and builds its tree.
func Parse(data []byte) (*node.Element, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return Build(spec)
}

// Build turns a Spec into an element tree.
func Build(spec Spec) (*node.Element, error) {
	if spec.Tag == "" {
		return nil, fmt.Errorf("%w: element without tag", ErrInvalidLayout)
	}

	el := node.NewElement(spec.Tag)

	keys := make([]string, 0, len(spec.Attrs))
	for k := range spec.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		el.SetAttribute(k, spec.Attrs[k])
	}

	if spec.ID != "" {
		el.SetAttribute("id", spec.ID)
	}
	if spec.Label != "" {
		el.SetAttribute(AttrLabel, spec.Label)
	}
	if spec.Actions != "" {
		el.SetAttribute(action.AttrActions, spec.Actions)
	}
	if len(spec.Params) > 0 {
		attr, err := paramsAttribute(el, spec.Params)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidLayout, el.Path(), err)
		}
		el.SetAttribute(action.AttrParams, attr)
	}

	switch len(spec.Bounds) {
	case 0:
	case 4:
		b := spec.Bounds
		el.SetBounds(node.Rect{Left: b[0], Top: b[1], Right: b[2], Bottom: b[3]})
	default:
		return nil, fmt.Errorf("%w: %s: bounds needs 4 values, got %d", ErrInvalidLayout, el.Path(), len(spec.Bounds))
	}

	for _, cs := range spec.Children {
		child, err := Build(cs)
		if err != nil {
			return nil, err
		}
		el.AppendChild(child)
	}
	return el, nil
}

// paramsAttribute merges params into the element's existing parameter
// attribute. Keys must be "controller.action".
func paramsAttribute(el *node.Element, params map[string]any) (string, error) {
	attr, _ := el.Attribute(action.AttrParams)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		ds := action.ParseActionList(key)
		if len(ds) != 1 || ds[0].Key() != key {
			return "", fmt.Errorf("params key %q is not controller.action", key)
		}
		var err error
		attr, err = action.SetParam(attr, ds[0], params[key])
		if err != nil {
			return "", err
		}
	}
	return attr, nil
}
