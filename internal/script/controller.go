package script

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/frontctl/internal/controller"
)

// Lua field names of a controller table.
const (
	fieldID             = "id"
	fieldActions        = "actions"
	fieldHandleAction   = "handleAction"
	fieldHandleError    = "handleActionError"
	fieldOnRegistered   = "onRegistered"
	fieldOnUnregistered = "onUnregistered"
	fieldOn             = "on"
	fieldFn             = "fn"
)

// luaAction is one entry of the actions table.
type luaAction struct {
	eventType string
	fn        *lua.LFunction
}

// Controller is a controller defined by a Lua table.
//
// The value returned by Host.Load is one of four wrappers around *Controller,
// so that only tables defining handleAction or handleActionError satisfy
// controller.CatchAll or controller.ErrorHook.
type Controller struct {
	host    *Host
	id      string
	actions map[string]luaAction

	handleAction   *lua.LFunction
	handleError    *lua.LFunction
	onRegistered   *lua.LFunction
	onUnregistered *lua.LFunction
}

// parseController builds a Controller from a table passed to controller().
func parseController(h *Host, t *lua.LTable) (*Controller, error) {
	c := &Controller{host: h, actions: make(map[string]luaAction)}

	if v := t.RawGetString(fieldID); v != lua.LNil {
		id, ok := v.(lua.LString)
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: id must be a non-empty string", ErrInvalidController)
		}
		c.id = string(id)
	}

	if v := t.RawGetString(fieldActions); v != lua.LNil {
		actions, ok := v.(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("%w: actions must be a table", ErrInvalidController)
		}
		for _, name := range tableKeys(actions) {
			a, err := parseAction(name, actions.RawGetString(name))
			if err != nil {
				return nil, err
			}
			c.actions[name] = a
		}
	}

	c.handleAction, _ = tableFunc(t, fieldHandleAction)
	c.handleError, _ = tableFunc(t, fieldHandleError)
	c.onRegistered, _ = tableFunc(t, fieldOnRegistered)
	c.onUnregistered, _ = tableFunc(t, fieldOnUnregistered)

	if len(c.actions) == 0 && c.handleAction == nil {
		return nil, fmt.Errorf("%w: no actions and no handleAction", ErrInvalidController)
	}
	return c, nil
}

// parseAction accepts either a function or a table {on = "...", fn = function}.
func parseAction(name string, v lua.LValue) (luaAction, error) {
	switch val := v.(type) {
	case *lua.LFunction:
		return luaAction{fn: val}, nil
	case *lua.LTable:
		fn, ok := tableFunc(val, fieldFn)
		if !ok {
			return luaAction{}, fmt.Errorf("%w: action %q has no fn", ErrInvalidController, name)
		}
		on, _ := tableString(val, fieldOn)
		return luaAction{eventType: on, fn: fn}, nil
	default:
		return luaAction{}, fmt.Errorf("%w: action %q must be a function or table", ErrInvalidController, name)
	}
}

// ControllerID implements controller.Controller.
func (c *Controller) ControllerID() string { return c.id }

// SetControllerID implements controller.Controller.
func (c *Controller) SetControllerID(id string) { c.id = id }

// Action implements controller.ActionProvider.
func (c *Controller) Action(name string) (controller.Action, bool) {
	a, ok := c.actions[name]
	if !ok {
		return controller.Action{}, false
	}
	return controller.Action{
		Name:      name,
		EventType: a.eventType,
		Fn: func(ctx *controller.Context) error {
			return c.call(name, a.fn, ctx)
		},
	}, true
}

// Actions returns the declared action names in sorted order.
func (c *Controller) Actions() []string {
	names := make([]string, 0, len(c.actions))
	for name := range c.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnControllerRegistered implements controller.RegisteredHook.
func (c *Controller) OnControllerRegistered(_ controller.Registrar, id string) {
	if c.onRegistered == nil {
		return
	}
	if _, err := c.host.state.Call(c.onRegistered, lua.LString(id)); err != nil {
		c.host.logger.Error().Err(err).Str("controller", id).Msg("onRegistered failed")
	}
}

// OnControllerUnregistered implements controller.UnregisteredHook.
func (c *Controller) OnControllerUnregistered(controller.Registrar) {
	if c.onUnregistered == nil {
		return
	}
	if _, err := c.host.state.Call(c.onUnregistered); err != nil {
		c.host.logger.Error().Err(err).Str("controller", c.id).Msg("onUnregistered failed")
	}
}

// call runs a Lua action function with a fresh ctx table.
func (c *Controller) call(name string, fn *lua.LFunction, ctx *controller.Context) error {
	if _, err := c.host.state.Call(fn, c.host.contextTable(ctx)); err != nil {
		return &ActionError{ControllerID: ctx.ControllerID, Function: name, Err: err}
	}
	return nil
}

func (c *Controller) catchAll(ctx *controller.Context) error {
	return c.call(controller.CatchAllMethod, c.handleAction, ctx)
}

// errorHook passes the error message to handleActionError and reads its
// result as a Lua truth value.
func (c *Controller) errorHook(err error, ctx *controller.Context) bool {
	ret, callErr := c.host.state.Call(c.handleError, c.host.contextTable(ctx), lua.LString(err.Error()))
	if callErr != nil {
		c.host.logger.Error().Err(callErr).Str("controller", ctx.ControllerID).Msg("handleActionError failed")
		return false
	}
	return lua.LVAsBool(ret)
}

// wrap returns the capability variant matching the table's optional functions.
func (c *Controller) wrap() controller.Controller {
	switch {
	case c.handleAction != nil && c.handleError != nil:
		return fullController{c}
	case c.handleAction != nil:
		return catchAllController{c}
	case c.handleError != nil:
		return errorHookController{c}
	default:
		return c
	}
}

type catchAllController struct{ *Controller }

func (c catchAllController) HandleAction(ctx *controller.Context) error { return c.catchAll(ctx) }

type errorHookController struct{ *Controller }

func (c errorHookController) HandleActionError(err error, ctx *controller.Context) bool {
	return c.errorHook(err, ctx)
}

type fullController struct{ *Controller }

func (c fullController) HandleAction(ctx *controller.Context) error { return c.catchAll(ctx) }

func (c fullController) HandleActionError(err error, ctx *controller.Context) bool {
	return c.errorHook(err, ctx)
}
