package controller

// CatchAllMethod is the method name reported when CatchAll serves an action.
const CatchAllMethod = "handleAction"

// Method is a resolved action method.
type Method struct {
	Name string
	Fn   Func
}

// Resolve picks the method to run for actionName on c:
//
//  1. the named action, if its event type tag is unset or equals eventType;
//  2. otherwise HandleAction, if c implements CatchAll;
//  3. otherwise nothing, and the action is skipped.
func Resolve(c Controller, actionName, eventType string) (Method, bool) {
	if p, ok := c.(ActionProvider); ok {
		if a, ok := p.Action(actionName); ok && a.Fn != nil && a.Accepts(eventType) {
			return Method{Name: actionName, Fn: a.Fn}, true
		}
	}
	if ca, ok := c.(CatchAll); ok {
		return Method{Name: CatchAllMethod, Fn: ca.HandleAction}, true
	}
	return Method{}, false
}
