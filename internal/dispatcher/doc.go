// Package dispatcher implements event delegation over a node tree.
//
// A Dispatcher listens on one root node for a set of registered event
// types. For every event it receives it walks from the event's target up to
// the root and, at each node, runs the actions declared in the node's
// data-actions attribute against registered controllers.
//
// # Construction
//
// Construction is two-phase so a dispatcher can exist before its tree does:
//
//	d := dispatcher.New(binding.NewTree(),
//	    dispatcher.WithCatchErrors(true),
//	    dispatcher.WithErrorHandler(dispatcher.LogErrorHandler(logger)),
//	)
//	if err := d.Bind(root); err != nil {
//	    return err
//	}
//	d.RegisterEvents("click", "enterpress", "focus")
//	d.RegisterController(menu)
//
// # Propagation
//
// Each pass wraps the native event in an event.Envelope. Actions at a node
// run in declaration order. After every action the envelope is checked; a
// stopped envelope ends the pass at once, with no further actions at the
// node and no further ancestors. Otherwise the walk ends at the root, or at
// the top of a detached tree.
//
// # Errors
//
// With CatchErrors off, an action error aborts the pass and is returned from
// HandleEvent. With CatchErrors on, the event is fully stopped and the
// controller's HandleActionError, or failing that the dispatcher's
// ErrorHandler, decides: true suppresses the error, false returns it
// unchanged. Unknown controller ids and malformed parameter attributes are
// never routed through the error handlers.
//
// Special event names: "enterpress" binds to "keypress" and only dispatches
// when the key code is 13; "focus" and "blur" bind in the capture phase
// because they do not bubble.
package dispatcher
