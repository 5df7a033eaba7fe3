package script

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/frontctl/internal/controller"
)

// Host owns a Lua state and the controllers its scripts declare.
type Host struct {
	state  *State
	logger zerolog.Logger

	// pending collects controller() calls while a chunk runs.
	pending []*Controller
	loadErr error

	controllers []controller.Controller
}

// NewHost creates a host with the controller and log globals installed.
func NewHost(logger zerolog.Logger, opts ...StateOption) *Host {
	h := &Host{
		state:  NewState(opts...),
		logger: logger,
	}
	h.state.SetGlobal("controller", h.state.L.NewFunction(h.luaController))
	h.state.SetGlobal("log", h.logModule())
	return h
}

// LoadString runs src and returns the controllers it declared.
// name identifies the chunk in errors.
func (h *Host) LoadString(name, src string) ([]controller.Controller, error) {
	return h.load(name, func() error { return h.state.DoString(src) })
}

// LoadFile runs the script at path and returns the controllers it declared.
func (h *Host) LoadFile(path string) ([]controller.Controller, error) {
	return h.load(filepath.Base(path), func() error { return h.state.DoFile(path) })
}

func (h *Host) load(name string, run func() error) ([]controller.Controller, error) {
	h.pending = nil
	h.loadErr = nil

	if err := run(); err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	if h.loadErr != nil {
		return nil, fmt.Errorf("load script %s: %w", name, h.loadErr)
	}

	out := make([]controller.Controller, 0, len(h.pending))
	for _, c := range h.pending {
		out = append(out, c.wrap())
	}
	h.controllers = append(h.controllers, out...)
	h.pending = nil

	h.logger.Debug().Str("script", name).Int("controllers", len(out)).Msg("script loaded")
	return out, nil
}

// Controllers returns every controller loaded so far.
func (h *Host) Controllers() []controller.Controller {
	out := make([]controller.Controller, len(h.controllers))
	copy(out, h.controllers)
	return out
}

// Close releases the Lua state.
func (h *Host) Close() error {
	return h.state.Close()
}

// luaController implements the controller(table) global.
func (h *Host) luaController(L *lua.LState) int {
	t := L.CheckTable(1)
	c, err := parseController(h, t)
	if err != nil {
		if h.loadErr == nil {
			h.loadErr = err
		}
		return 0
	}
	h.pending = append(h.pending, c)
	return 0
}

// logModule exposes zerolog to scripts as log.debug/info/warn/error.
func (h *Host) logModule() *lua.LTable {
	L := h.state.L
	levels := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	}

	mod := L.NewTable()
	for name, level := range levels {
		level := level // per-iteration copy; go.mod targets go1.21 loop semantics
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			h.logger.WithLevel(level).Str("source", "lua").Msg(L.CheckString(1))
			return 0
		}))
	}
	return mod
}

// contextTable builds the ctx table for one call.
func (h *Host) contextTable(ctx *controller.Context) *lua.LTable {
	L := h.state.L
	t := L.NewTable()

	t.RawSetString("action", lua.LString(ctx.Action))
	t.RawSetString("method", lua.LString(ctx.Method))
	t.RawSetString("controllerId", lua.LString(ctx.ControllerID))
	t.RawSetString("params", toLua(L, ctx.Params.Value()))
	t.RawSetString("paramsJSON", lua.LString(ctx.Params.Raw()))

	if ctx.Event != nil {
		t.RawSetString("event", lua.LString(ctx.Event.Type()))
		t.RawSetString("pass", lua.LString(ctx.Event.ID()))
		if kc, ok := ctx.Event.KeyCode(); ok {
			t.RawSetString("keyCode", lua.LNumber(kc))
		}
	}

	t.RawSetString("stop", L.NewFunction(func(*lua.LState) int {
		ctx.Stop()
		return 0
	}))
	t.RawSetString("stopPropagation", L.NewFunction(func(*lua.LState) int {
		ctx.StopPropagation()
		return 0
	}))
	t.RawSetString("preventDefault", L.NewFunction(func(*lua.LState) int {
		ctx.PreventDefault()
		return 0
	}))
	t.RawSetString("attr", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(L.GetTop())
		if ctx.Node == nil {
			L.Push(lua.LNil)
			return 1
		}
		if v, ok := ctx.Node.Attribute(name); ok {
			L.Push(lua.LString(v))
		} else {
			L.Push(lua.LNil)
		}
		return 1
	}))
	t.RawSetString("param", L.NewFunction(func(L *lua.LState) int {
		path := L.CheckString(L.GetTop())
		L.Push(toLua(L, ctx.Params.Get(path).Value()))
		return 1
	}))

	return t
}
