// Package event defines the native event contract and the per-pass Envelope.
//
// A native event is whatever the event source produces. The dispatcher never
// mutates it beyond calling PreventDefault and StopPropagation. Instead each
// dispatch pass wraps the event:
//
//	env := event.Wrap(native)
//	defer env.Release()
//
//	env.Stop()          // Stopper.Stop (if any), PreventDefault, StopPropagation
//	env.IsStopped()     // true
//
// Basic is a ready-made Native used by the in-memory and terminal sources.
package event
