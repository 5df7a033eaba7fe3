package layout

import (
	"fmt"
	"sort"

	"github.com/dshills/frontctl/internal/action"
	"github.com/dshills/frontctl/internal/node"
)

// Severity ranks lint findings.
type Severity string

// Severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one lint finding.
type Issue struct {
	Path      string
	Attribute string
	Severity  Severity
	Message   string
}

// String formats the issue for terminal output.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s [%s]: %s", i.Severity, i.Path, i.Attribute, i.Message)
}

// Lint checks the action attributes of every element under root.
//
// Errors are things that fail at dispatch time: unparsable parameters on any
// element a pass walks through, with or without actions, and controller ids
// not in known when known is non-nil. Warnings are things
// dispatch tolerates silently: unpaired action tokens and parameters no
// action on the element uses.
func Lint(root *node.Element, known map[string]bool) []Issue {
	var issues []Issue

	root.Walk(func(el *node.Element) bool {
		path := el.Path()
		actionsAttr, _ := el.Attribute(action.AttrActions)

		if err := action.Validate(actionsAttr); err != nil {
			issues = append(issues, Issue{
				Path:      path,
				Attribute: action.AttrActions,
				Severity:  SeverityWarning,
				Message:   err.Error(),
			})
		}

		declared := make(map[string]bool)
		for _, d := range action.ParseActionList(actionsAttr) {
			declared[d.Key()] = true
			if known != nil && !known[d.ControllerID] {
				issues = append(issues, Issue{
					Path:      path,
					Attribute: action.AttrActions,
					Severity:  SeverityError,
					Message:   fmt.Sprintf("unknown controller %q in %s", d.ControllerID, d),
				})
			}
		}

		paramsAttr, ok := el.Attribute(action.AttrParams)
		if !ok || paramsAttr == "" {
			return true
		}
		set, err := action.ParseParamText(paramsAttr)
		if err != nil {
			issues = append(issues, Issue{
				Path:      path,
				Attribute: action.AttrParams,
				Severity:  SeverityError,
				Message:   err.Error(),
			})
			return true
		}
		for _, key := range sortedKeys(set) {
			if !declared[key] {
				issues = append(issues, Issue{
					Path:      path,
					Attribute: action.AttrParams,
					Severity:  SeverityWarning,
					Message:   fmt.Sprintf("parameters for %s but no such action on this element", key),
				})
			}
		}
		return true
	})
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func sortedKeys(set action.Set) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
