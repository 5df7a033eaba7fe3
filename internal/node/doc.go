// Package node defines the tree contract consumed by the dispatcher and an
// in-memory Element tree that satisfies it.
//
// The dispatcher only needs two things from a node: its parent and its
// attributes. Everything else on Element (children, bounds, ids) exists for
// event sources and tooling that build or hit-test trees.
//
// # Attributes
//
// Declarative actions live in attributes:
//
//	el := node.NewElement("button")
//	el.SetAttribute("data-actions", "menu.open")
//	el.SetAttribute("data-action-params", `{"menu.open": {"id": 123}}`)
package node
