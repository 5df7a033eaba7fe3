package action

import (
	"fmt"
	"strings"

	"github.com/dshills/frontctl/internal/node"
)

// Attribute names read from nodes.
const (
	AttrActions = "data-actions"
	AttrParams  = "data-action-params"
)

// Descriptor is one declared (controllerId, action) pair.
type Descriptor struct {
	ControllerID string
	Action       string
}

// Key returns the params lookup key "<controllerId>.<action>".
func (d Descriptor) Key() string {
	return d.ControllerID + "." + d.Action
}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	return d.Key()
}

// ParseActions returns the descriptors declared on n in declaration order.
// A missing or blank attribute yields nil.
func ParseActions(n node.Node) []Descriptor {
	attr, ok := n.Attribute(AttrActions)
	if !ok {
		return nil
	}
	return ParseActionList(attr)
}

// ParseActionList parses raw action list text. Tokens are separated by "."
// or runs of whitespace and paired positionally; an odd trailing token is
// dropped.
func ParseActionList(attr string) []Descriptor {
	tokens := tokenize(attr)
	if len(tokens) < 2 {
		return nil
	}

	out := make([]Descriptor, 0, len(tokens)/2)
	for i := 0; i+1 < len(tokens); i += 2 {
		out = append(out, Descriptor{ControllerID: tokens[i], Action: tokens[i+1]})
	}
	return out
}

func tokenize(attr string) []string {
	var tokens []string
	for _, field := range strings.Fields(attr) {
		tokens = append(tokens, strings.Split(field, ".")...)
	}
	return tokens
}

// Validate reports problems ParseActionList silently tolerates.
func Validate(attr string) error {
	tokens := tokenize(attr)
	if len(tokens)%2 != 0 {
		return fmt.Errorf("%w: %q", ErrUnpairedToken, tokens[len(tokens)-1])
	}
	for i, tok := range tokens {
		if tok == "" {
			return fmt.Errorf("%w: empty token at position %d", ErrUnpairedToken, i)
		}
	}
	return nil
}

// Format renders descriptors back into action list text.
func Format(ds []Descriptor) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.Key()
	}
	return strings.Join(parts, " ")
}
