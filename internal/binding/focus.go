package binding

import "github.com/dshills/frontctl/internal/node"

// FocusAlias rewrites capture-phase focus and blur bindings into bubbling
// focusin and focusout bindings on the wrapped adapter. All other bindings
// pass through unchanged.
type FocusAlias struct {
	inner Adapter
}

// NewFocusAlias wraps inner.
func NewFocusAlias(inner Adapter) *FocusAlias {
	return &FocusAlias{inner: inner}
}

// Bind implements Adapter.
func (a *FocusAlias) Bind(n node.Node, eventName string, h Handler, capture bool) {
	name, capture := alias(eventName, capture)
	a.inner.Bind(n, name, h, capture)
}

// Unbind implements Adapter.
func (a *FocusAlias) Unbind(n node.Node, eventName string, h Handler, capture bool) {
	name, capture := alias(eventName, capture)
	a.inner.Unbind(n, name, h, capture)
}

func alias(eventName string, capture bool) (string, bool) {
	if !capture {
		return eventName, false
	}
	switch eventName {
	case EventFocus:
		return EventFocusIn, false
	case EventBlur:
		return EventFocusOut, false
	}
	return eventName, capture
}
