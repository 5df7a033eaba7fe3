package dispatcher

import (
	"runtime/debug"
	"time"

	"github.com/dshills/frontctl/internal/action"
	"github.com/dshills/frontctl/internal/controller"
	"github.com/dshills/frontctl/internal/event"
	"github.com/dshills/frontctl/internal/node"
)

// passStats accumulates what one pass did, for logging and metrics.
type passStats struct {
	nodes   int
	actions int
	stopped bool
	failed  bool
	handled int
}

// HandleEvent runs one dispatch pass for ev. It implements binding.Handler,
// so the dispatcher is the single listener bound on the root.
//
// The walk starts at the event target and follows parent references until an
// action stops the event, the root has been visited, or a node has no parent.
func (d *Dispatcher) HandleEvent(ev event.Native) error {
	env := event.Wrap(ev)
	defer env.Release()

	d.mu.RLock()
	root := d.root
	cfg := d.config
	metrics := d.metrics
	d.mu.RUnlock()

	start := time.Now()
	var stats passStats
	err := d.walk(env, root, cfg, &stats)
	if err != nil {
		stats.failed = true
	}

	if metrics != nil && cfg.EnableMetrics {
		metrics.RecordPass(env.Type(), time.Since(start), stats)
	}

	d.logger.Debug().
		Str("pass", env.ID()).
		Str("event", env.Type()).
		Int("nodes", stats.nodes).
		Int("actions", stats.actions).
		Bool("stopped", stats.stopped).
		Err(err).
		Msg("dispatch pass")

	return err
}

// walk is the iterative ancestor loop.
func (d *Dispatcher) walk(env *event.Envelope, root node.Node, cfg Config, stats *passStats) error {
	for n := env.Target(); n != nil; n = n.Parent() {
		stats.nodes++

		stopped, err := d.visit(env, n, cfg, stats)
		if err != nil {
			return err
		}
		if stopped {
			stats.stopped = true
			return nil
		}
		if root != nil && n == root {
			return nil
		}
	}
	return nil
}

// visit runs every action declared on n in order. The params attribute is
// parsed on every visited node, with or without actions. It reports whether
// the event was stopped.
func (d *Dispatcher) visit(env *event.Envelope, n node.Node, cfg Config, stats *passStats) (bool, error) {
	descriptors := action.ParseActions(n)
	params, err := action.ParseParams(n)
	if err != nil {
		return false, err
	}
	if len(descriptors) == 0 {
		return false, nil
	}

	for _, desc := range descriptors {
		if err := d.invoke(env, n, desc, params.For(desc), cfg, stats); err != nil {
			return env.IsStopped(), err
		}
		if env.IsStopped() {
			return true, nil
		}
	}
	return false, nil
}

// invoke resolves and runs one action.
func (d *Dispatcher) invoke(env *event.Envelope, n node.Node, desc action.Descriptor, params action.Params, cfg Config, stats *passStats) error {
	c, ok := d.registry.Lookup(desc.ControllerID)
	if !ok {
		if cfg.UnknownController == UnknownControllerSkip {
			d.logger.Debug().
				Str("controller", desc.ControllerID).
				Str("action", desc.Action).
				Msg("skipping action for unknown controller")
			return nil
		}
		env.Stop()
		return &UnknownControllerError{ControllerID: desc.ControllerID, Action: desc.Action}
	}

	method, ok := controller.Resolve(c, desc.Action, env.Type())
	if !ok {
		return nil
	}

	ctx := &controller.Context{
		Event:        env,
		Node:         n,
		Params:       params,
		Action:       desc.Action,
		Method:       method.Name,
		Controller:   c,
		ControllerID: desc.ControllerID,
	}

	stats.actions++
	err := d.call(method.Fn, ctx, cfg.RecoverPanics)
	if err == nil {
		return nil
	}
	if !cfg.CatchErrors {
		return err
	}

	env.Stop()
	if d.handleError(err, ctx) {
		stats.handled++
		d.logger.Warn().
			Err(err).
			Str("controller", ctx.ControllerID).
			Str("action", ctx.Action).
			Msg("action error handled")
		return nil
	}
	return err
}

// call runs fn, converting a panic into *PanicError when recovery is on.
func (d *Dispatcher) call(fn controller.Func, ctx *controller.Context, recoverPanics bool) (err error) {
	if recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{
					ControllerID: ctx.ControllerID,
					Action:       ctx.Action,
					Value:        r,
					Stack:        string(debug.Stack()),
				}
			}
		}()
	}
	return fn(ctx)
}

// handleError offers err to the controller's own hook first, then to the
// dispatcher-level handler. It reports whether the error was handled.
func (d *Dispatcher) handleError(err error, ctx *controller.Context) bool {
	if hook, ok := ctx.Controller.(controller.ErrorHook); ok {
		return hook.HandleActionError(err, ctx)
	}

	d.mu.RLock()
	h := d.errorHandler
	d.mu.RUnlock()

	if h != nil {
		return h.HandleActionError(err, ctx)
	}
	return false
}

// Dispatch fires a synthetic event of the given type at target without any
// binding backend. It is mostly useful for tests and scripted input.
func (d *Dispatcher) Dispatch(eventType string, target node.Node) (*event.Basic, error) {
	if d.Root() == nil {
		return nil, ErrMissingRoot
	}
	ev := event.New(eventType, target)
	return ev, d.HandleEvent(ev)
}
