package dispatcher

import (
	"github.com/rs/zerolog"

	"github.com/dshills/frontctl/internal/controller"
)

// ErrorHandler is the dispatcher-level error handler. It is consulted when
// the failing controller has no HandleActionError of its own. Returning true
// marks the error handled.
type ErrorHandler interface {
	HandleActionError(err error, ctx *controller.Context) bool
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(err error, ctx *controller.Context) bool

// HandleActionError implements ErrorHandler.
func (f ErrorHandlerFunc) HandleActionError(err error, ctx *controller.Context) bool {
	return f(err, ctx)
}

// LogErrorHandler logs every action error with its context and reports it
// handled.
func LogErrorHandler(logger zerolog.Logger) ErrorHandler {
	return ErrorHandlerFunc(func(err error, ctx *controller.Context) bool {
		ev := logger.Error().Err(err).
			Str("controller", ctx.ControllerID).
			Str("action", ctx.Action).
			Str("method", ctx.Method).
			Str("params", ctx.Params.Raw())
		if ctx.Event != nil {
			ev = ev.Str("event", ctx.Event.Type()).Str("pass", ctx.Event.ID())
		}
		ev.Msg("action failed")
		return true
	})
}
