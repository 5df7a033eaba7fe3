// Package controller defines controllers, their optional capabilities, the
// per-dispatcher Registry and the action Resolver.
//
// # Capabilities
//
// A controller only has to carry an id. Everything else is opt-in through
// small interfaces checked at runtime:
//
//   - ActionProvider: named actions, optionally tagged with the event type
//     they are valid for.
//   - CatchAll: HandleAction receives any action not served by a tagged or
//     untagged named action.
//   - ErrorHook: HandleActionError gets first refusal on errors returned by
//     the controller's own actions.
//   - RegisteredHook / UnregisteredHook: lifecycle notifications.
//
// Base implements ActionProvider and can be embedded:
//
//	type Menu struct {
//	    controller.Base
//	}
//
//	m := &Menu{}
//	m.On("toggle", m.toggle)
//	m.OnEvent("open", "click", m.open)
package controller
