package binding

import (
	"sync"

	"github.com/dshills/frontctl/internal/event"
	"github.com/dshills/frontctl/internal/node"
)

// listener is one bound handler.
type listener struct {
	name    string
	handler Handler
	capture bool
}

// Tree is an in-memory event source over node trees.
//
// Fire runs the capture phase from the top of the target's tree down to the
// target, then the bubble phase from the target upward. Events that report
// Bubbling() == false only reach bubble listeners on the target itself.
type Tree struct {
	mu        sync.RWMutex
	listeners map[node.Node][]listener
}

// NewTree creates an empty source.
func NewTree() *Tree {
	return &Tree{
		listeners: make(map[node.Node][]listener),
	}
}

// Bind implements Adapter. Binding the same handler twice for the same
// name and phase is ignored.
func (t *Tree) Bind(n node.Node, eventName string, h Handler, capture bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, l := range t.listeners[n] {
		if l.name == eventName && l.handler == h && l.capture == capture {
			return
		}
	}
	t.listeners[n] = append(t.listeners[n], listener{name: eventName, handler: h, capture: capture})
}

// Unbind implements Adapter.
func (t *Tree) Unbind(n node.Node, eventName string, h Handler, capture bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ls := t.listeners[n]
	for i, l := range ls {
		if l.name == eventName && l.handler == h && l.capture == capture {
			ls = append(ls[:i], ls[i+1:]...)
			break
		}
	}
	if len(ls) == 0 {
		delete(t.listeners, n)
	} else {
		t.listeners[n] = ls
	}
}

// ListenerCount returns how many handlers are bound on n for eventName.
func (t *Tree) ListenerCount(n node.Node, eventName string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, l := range t.listeners[n] {
		if l.name == eventName {
			count++
		}
	}
	return count
}

// Len returns the total number of bound handlers.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, ls := range t.listeners {
		count += len(ls)
	}
	return count
}

type propagationStopper interface {
	PropagationStopped() bool
}

type bubbler interface {
	Bubbling() bool
}

// Fire delivers ev to the handlers bound along the target's ancestor chain.
// The first handler error aborts delivery and is returned.
func (t *Tree) Fire(ev event.Native) error {
	path := node.Ancestors(ev.Target())
	if len(path) == 0 {
		return nil
	}

	bubbles := true
	if b, ok := ev.(bubbler); ok {
		bubbles = b.Bubbling()
	}

	for i := len(path) - 1; i >= 0; i-- {
		if err := t.deliver(path[i], ev, true); err != nil {
			return err
		}
		if stopped(ev) {
			return nil
		}
	}

	for i, n := range path {
		if i > 0 && !bubbles {
			break
		}
		if err := t.deliver(n, ev, false); err != nil {
			return err
		}
		if stopped(ev) {
			return nil
		}
	}
	return nil
}

// deliver runs the matching listeners on n. The list is copied first so
// handlers may bind or unbind while running.
func (t *Tree) deliver(n node.Node, ev event.Native, capture bool) error {
	t.mu.RLock()
	ls := make([]listener, len(t.listeners[n]))
	copy(ls, t.listeners[n])
	t.mu.RUnlock()

	for _, l := range ls {
		if l.name != ev.Type() || l.capture != capture {
			continue
		}
		if err := l.handler.HandleEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

func stopped(ev event.Native) bool {
	if s, ok := ev.(propagationStopper); ok {
		return s.PropagationStopped()
	}
	return false
}
