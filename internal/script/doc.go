// Package script defines controllers in Lua.
//
// A script declares controllers by calling the global controller function
// with a table:
//
//	controller {
//	    id = "menu",
//	    actions = {
//	        open = function(ctx)
//	            log.info("open " .. ctx.params.name)
//	            ctx.stop()
//	        end,
//	        submit = { on = "keypress", fn = function(ctx) end },
//	    },
//	    handleAction = function(ctx) end,
//	    handleActionError = function(ctx, err) return true end,
//	    onRegistered = function(id) end,
//	    onUnregistered = function() end,
//	}
//
// Every field except actions is optional. A controller without an id gets a
// generated one at registration. The ctx table carries event, action,
// method, controllerId, params and keyCode, plus the functions stop,
// stopPropagation, preventDefault and attr(name).
//
// Scripts run in a restricted state: only the base, table, string and math
// libraries are opened and file loading functions are removed.
//
// gopher-lua states are not goroutine-safe. A Host must be used from the
// goroutine that dispatches events.
package script
