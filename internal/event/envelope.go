package event

import (
	"github.com/google/uuid"

	"github.com/dshills/frontctl/internal/node"
)

// Envelope wraps a native event for exactly one dispatch pass.
//
// The stopped flag lives on the envelope, not on the native event, so the
// dispatcher can observe a stop regardless of how the source implements it.
// Re-entrant passes get their own envelope and never share this state.
type Envelope struct {
	id        string
	eventType string
	target    node.Node
	native    Native
	stopped   bool
	released  bool
}

// Wrap starts a pass over ev. The envelope starts unstopped.
func Wrap(ev Native) *Envelope {
	return &Envelope{
		id:        uuid.NewString(),
		eventType: ev.Type(),
		target:    ev.Target(),
		native:    ev,
	}
}

// ID identifies the pass in logs.
func (e *Envelope) ID() string { return e.id }

// Type returns the physical event type.
func (e *Envelope) Type() string { return e.eventType }

// Target returns the origin node of the event.
func (e *Envelope) Target() node.Node { return e.target }

// Native returns the wrapped event, or nil once released.
func (e *Envelope) Native() Native { return e.native }

// KeyCode returns the key code when the native event carries one.
func (e *Envelope) KeyCode() (int, bool) {
	if kc, ok := e.native.(KeyCoder); ok {
		return kc.KeyCode(), true
	}
	return 0, false
}

// IsStopped reports whether StopPropagation or Stop was called during the pass.
func (e *Envelope) IsStopped() bool { return e.stopped }

// PreventDefault forwards to the native event.
func (e *Envelope) PreventDefault() {
	if e.native != nil {
		e.native.PreventDefault()
	}
}

// StopPropagation marks the pass stopped and forwards to the native event.
func (e *Envelope) StopPropagation() {
	if e.released {
		return
	}
	e.native.StopPropagation()
	e.stopped = true
}

// Stop is the full stop: the native Stop if the event has one, then
// PreventDefault, then StopPropagation, in that order.
func (e *Envelope) Stop() {
	if e.released {
		return
	}
	if s, ok := e.native.(Stopper); ok {
		s.Stop()
	}
	e.PreventDefault()
	e.StopPropagation()
}

// Release ends the pass. The envelope drops its reference to the native
// event and its stopped flag; further stop calls are no-ops.
// Release is safe to call more than once.
func (e *Envelope) Release() {
	e.native = nil
	e.stopped = false
	e.released = true
}

// Released reports whether Release has been called.
func (e *Envelope) Released() bool { return e.released }
