package controller

import (
	"sort"

	"github.com/dshills/frontctl/internal/action"
	"github.com/dshills/frontctl/internal/event"
	"github.com/dshills/frontctl/internal/node"
)

// Controller is an application object addressed by id from action attributes.
type Controller interface {
	// ControllerID returns the id, or "" if none has been assigned yet.
	ControllerID() string

	// SetControllerID is called by the registry when it generates an id.
	SetControllerID(id string)
}

// Registrar is the surface controllers see in lifecycle hooks.
type Registrar interface {
	RegisterController(c Controller) (string, error)
	UnregisterController(c Controller) bool
}

// RegisteredHook is notified after registration succeeds.
type RegisteredHook interface {
	OnControllerRegistered(r Registrar, id string)
}

// UnregisteredHook is notified after the controller has been removed.
type UnregisteredHook interface {
	OnControllerUnregistered(r Registrar)
}

// Func is an action implementation.
type Func func(ctx *Context) error

// Action is a named action method.
type Action struct {
	// Name is the lookup key used in action attributes.
	Name string

	// EventType restricts the action to one event type. Empty means any.
	EventType string

	Fn Func
}

// Accepts reports whether the action may run for eventType.
func (a Action) Accepts(eventType string) bool {
	return a.EventType == "" || a.EventType == eventType
}

// ActionProvider exposes named actions.
type ActionProvider interface {
	Action(name string) (Action, bool)
}

// CatchAll receives actions that have no usable named method.
type CatchAll interface {
	HandleAction(ctx *Context) error
}

// ErrorHook gets first refusal on errors raised by the controller's actions.
// Returning true marks the error handled.
type ErrorHook interface {
	HandleActionError(err error, ctx *Context) bool
}

// Context carries everything an action invocation sees.
type Context struct {
	// Event is the envelope for the current dispatch pass.
	Event *event.Envelope

	// Node is the node whose attribute declared the action. It differs from
	// Event.Target() once the pass has bubbled past the origin.
	Node node.Node

	// Params are the parameters declared for this action on Node.
	Params action.Params

	// Action is the declared action name.
	Action string

	// Method is the name of the resolved method: Action, or CatchAllMethod.
	Method string

	Controller   Controller
	ControllerID string
}

// Stop performs the full stop on the event: prevent default, then stop propagation.
func (c *Context) Stop() { c.Event.Stop() }

// StopPropagation ends the pass after the current action.
func (c *Context) StopPropagation() { c.Event.StopPropagation() }

// PreventDefault forwards to the native event.
func (c *Context) PreventDefault() { c.Event.PreventDefault() }

// Base is an embeddable action table implementing Controller and ActionProvider.
type Base struct {
	id      string
	actions map[string]Action
}

// ControllerID implements Controller.
func (b *Base) ControllerID() string { return b.id }

// SetControllerID implements Controller.
func (b *Base) SetControllerID(id string) { b.id = id }

// On registers an action valid for every event type.
func (b *Base) On(name string, fn Func) *Base {
	return b.OnEvent(name, "", fn)
}

// OnEvent registers an action that only runs for eventType.
func (b *Base) OnEvent(name, eventType string, fn Func) *Base {
	if b.actions == nil {
		b.actions = make(map[string]Action)
	}
	b.actions[name] = Action{Name: name, EventType: eventType, Fn: fn}
	return b
}

// Action implements ActionProvider.
func (b *Base) Action(name string) (Action, bool) {
	a, ok := b.actions[name]
	return a, ok
}

// Actions returns the registered action names in sorted order.
func (b *Base) Actions() []string {
	names := make([]string, 0, len(b.actions))
	for name := range b.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
