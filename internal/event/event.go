package event

import (
	"time"

	"github.com/dshills/frontctl/internal/node"
)

// KeyEnter is the key code reported for the Enter key.
const KeyEnter = 13

// Native is the contract an event source's event must satisfy.
//
// StopPropagation and PreventDefault act on the source itself; the dispatcher
// never relies on them to learn whether a pass was stopped, see Envelope.
type Native interface {
	// Type is the physical event name, e.g. "click" or "keypress".
	Type() string

	// Target is the node the event originated at.
	Target() node.Node

	PreventDefault()
	StopPropagation()
}

// Stopper is implemented by native events that carry their own full-stop
// operation. Envelope.Stop calls it before its own stop sequence.
type Stopper interface {
	Stop()
}

// KeyCoder is implemented by keyboard events.
type KeyCoder interface {
	KeyCode() int
}

// Basic is a plain Native implementation used by in-memory event sources and
// tests.
type Basic struct {
	// EventType is the physical event name.
	EventType string

	// Origin is the node the event was fired at.
	Origin node.Node

	// Key is the key code for keyboard events, zero otherwise.
	Key int

	// Bubbles controls whether sources deliver the event to bubble-phase
	// listeners above the origin. Focus and blur do not bubble.
	Bubbles bool

	// Detail carries source-specific data (mouse position, rune, ...).
	Detail any

	// Timestamp is when the event was created.
	Timestamp time.Time

	defaultPrevented   bool
	propagationStopped bool
}

// New creates a bubbling event of the given type at target.
func New(eventType string, target node.Node) *Basic {
	return &Basic{
		EventType: eventType,
		Origin:    target,
		Bubbles:   true,
		Timestamp: time.Now(),
	}
}

// NewKey creates a bubbling keyboard event.
func NewKey(eventType string, target node.Node, keyCode int) *Basic {
	ev := New(eventType, target)
	ev.Key = keyCode
	return ev
}

// Type implements Native.
func (e *Basic) Type() string { return e.EventType }

// Target implements Native.
func (e *Basic) Target() node.Node { return e.Origin }

// KeyCode implements KeyCoder.
func (e *Basic) KeyCode() int { return e.Key }

// PreventDefault implements Native.
func (e *Basic) PreventDefault() { e.defaultPrevented = true }

// StopPropagation implements Native.
func (e *Basic) StopPropagation() { e.propagationStopped = true }

// Bubbling reports whether the event is delivered above its origin in the
// bubble phase.
func (e *Basic) Bubbling() bool { return e.Bubbles }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Basic) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether StopPropagation was called.
func (e *Basic) PropagationStopped() bool { return e.propagationStopped }
