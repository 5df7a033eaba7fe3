// Package action parses the declarative action attributes carried by nodes.
//
// Two attributes are read:
//
//	data-actions        "menu.open tracker.log"
//	data-action-params  {"menu.open": {"id": 123}}
//
// ParseActions turns the first into ordered Descriptors; ParseParams turns
// the second into a Set keyed by "<controllerId>.<action>". Parameter values
// are kept as gjson results so controllers can read them without a
// predeclared schema.
package action
