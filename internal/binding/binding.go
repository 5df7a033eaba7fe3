package binding

import (
	"github.com/dshills/frontctl/internal/event"
	"github.com/dshills/frontctl/internal/node"
)

// Physical event names used by the sources in this package.
const (
	EventClick     = "click"
	EventMouseDown = "mousedown"
	EventMouseUp   = "mouseup"
	EventKeyDown   = "keydown"
	EventKeyPress  = "keypress"
	EventFocus     = "focus"
	EventBlur      = "blur"
	EventFocusIn   = "focusin"
	EventFocusOut  = "focusout"
)

// Handler receives native events from a source.
//
// Handlers are compared with == when unbinding, so implementations must be
// comparable (pointer receivers are the usual choice).
type Handler interface {
	HandleEvent(ev event.Native) error
}

// Adapter attaches and detaches handlers on nodes.
//
// Adapters need not be idempotent; the dispatcher never binds the same
// logical event twice.
type Adapter interface {
	Bind(n node.Node, eventName string, h Handler, capture bool)
	Unbind(n node.Node, eventName string, h Handler, capture bool)
}
