package node

import (
	"sort"
	"strings"
)

// Node is the minimal view of a tree node the dispatcher walks.
type Node interface {
	// Parent returns the parent node, or nil at the top of the tree.
	Parent() Node

	// Attribute returns the named attribute and whether it is present.
	Attribute(name string) (string, bool)
}

// Rect is a cell rectangle used for hit testing. Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Element is an in-memory tree node with attributes and children.
//
// Element is not safe for concurrent mutation; trees are built and walked
// from a single goroutine, the same one that dispatches events.
type Element struct {
	tag      string
	attrs    map[string]string
	parent   *Element
	children []*Element
	bounds   Rect
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{
		tag:   tag,
		attrs: make(map[string]string),
	}
}

// Tag returns the element tag.
func (e *Element) Tag() string {
	return e.tag
}

// ID returns the "id" attribute, or "" when unset.
func (e *Element) ID() string {
	return e.attrs["id"]
}

// Parent implements Node.
// A detached element returns a nil Node, not a typed nil.
func (e *Element) Parent() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// ParentElement returns the parent as an *Element.
func (e *Element) ParentElement() *Element {
	return e.parent
}

// Attribute implements Node.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttribute sets an attribute value.
func (e *Element) SetAttribute(name, value string) *Element {
	e.attrs[name] = value
	return e
}

// RemoveAttribute deletes an attribute.
func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// AttributeNames returns the attribute names in sorted order.
func (e *Element) AttributeNames() []string {
	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AppendChild attaches child as the last child of e, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) *Element {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	return child
}

// RemoveChild detaches child. Returns false if child is not a child of e.
func (e *Element) RemoveChild(child *Element) bool {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// SetBounds sets the hit-test rectangle.
func (e *Element) SetBounds(r Rect) *Element {
	e.bounds = r
	return e
}

// Bounds returns the hit-test rectangle.
func (e *Element) Bounds() Rect {
	return e.bounds
}

// Walk visits e and its descendants depth-first, parents before children.
// Returning false from fn skips the subtree below the current element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// FindByID returns the first element in the subtree with the given id.
func (e *Element) FindByID(id string) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if found != nil {
			return false
		}
		if el.ID() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// HitTest returns the deepest element whose bounds contain the point.
// Later siblings win over earlier ones, matching paint order.
func (e *Element) HitTest(x, y int) *Element {
	if e.bounds.Empty() || !e.bounds.Contains(x, y) {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := e.children[i].HitTest(x, y); hit != nil {
			return hit
		}
	}
	return e
}

// Path returns a readable path such as "div#root > ul > li#item".
func (e *Element) Path() string {
	var parts []string
	for el := e; el != nil; el = el.parent {
		part := el.tag
		if id := el.ID(); id != "" {
			part += "#" + id
		}
		parts = append(parts, part)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

// Ancestors returns the chain from n up to the top of its tree, n first.
func Ancestors(n Node) []Node {
	var out []Node
	for cur := n; cur != nil; cur = cur.Parent() {
		out = append(out, cur)
	}
	return out
}

// Contains reports whether descendant is ancestor or lies below it.
func Contains(ancestor, descendant Node) bool {
	for cur := descendant; cur != nil; cur = cur.Parent() {
		if cur == ancestor {
			return true
		}
	}
	return false
}
