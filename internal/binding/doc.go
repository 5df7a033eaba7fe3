// Package binding attaches dispatcher handlers to concrete event sources.
//
// The dispatcher only calls the two-operation Adapter contract. This package
// ships three adapters:
//
//   - Tree: an in-memory source over node trees with DOM-style capture and
//     bubble phases. Fire delivers a native event to bound handlers.
//   - FocusAlias: wraps another adapter and turns capture-phase focus/blur
//     bindings into bubbling focusin/focusout bindings, for sources that
//     have no capture phase.
//   - Terminal: a tcell event pump that converts key and mouse input into
//     native events fired through a Tree. Focus changes fire blur then
//     focusout on the old element and focus then focusin on the new one, so
//     it also works behind a FocusAlias.
package binding
