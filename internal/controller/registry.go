package controller

import (
	"sort"
	"strconv"
	"sync"
)

// firstGeneratedID is the counter value before the first generated id.
const firstGeneratedID = 1000

// Registry maps controller ids to controllers for one dispatcher.
//
// Generated ids come from a counter owned by the registry, so two
// dispatchers never interfere. Lifecycle hooks run outside the lock and may
// register or unregister other controllers.
type Registry struct {
	mu          sync.RWMutex
	owner       Registrar
	controllers map[string]Controller
	counter     int
}

// NewRegistry creates an empty registry. owner is passed to lifecycle hooks.
func NewRegistry(owner Registrar) *Registry {
	return &Registry{
		owner:       owner,
		controllers: make(map[string]Controller),
		counter:     firstGeneratedID,
	}
}

// Register stores c under its own id, or under a generated one when c has
// none, then calls OnControllerRegistered. Fails with *DuplicateIDError when
// the id is taken; c is left unregistered in that case.
func (r *Registry) Register(c Controller) (string, error) {
	r.mu.Lock()
	id := c.ControllerID()
	if id == "" {
		id = r.nextIDLocked()
		c.SetControllerID(id)
	} else if _, taken := r.controllers[id]; taken {
		r.mu.Unlock()
		return "", &DuplicateIDError{ID: id}
	}
	r.controllers[id] = c
	r.mu.Unlock()

	if h, ok := c.(RegisteredHook); ok {
		h.OnControllerRegistered(r.owner, id)
	}
	return id, nil
}

// nextIDLocked returns the next unused numeric id.
func (r *Registry) nextIDLocked() string {
	for {
		r.counter++
		id := strconv.Itoa(r.counter)
		if _, taken := r.controllers[id]; !taken {
			return id
		}
	}
}

// Unregister removes c and calls OnControllerUnregistered. It returns false,
// with no side effects, when c has no id or is not the controller currently
// registered under it.
func (r *Registry) Unregister(c Controller) bool {
	id := c.ControllerID()
	if id == "" {
		return false
	}

	r.mu.Lock()
	current, ok := r.controllers[id]
	if !ok || current != c {
		r.mu.Unlock()
		return false
	}
	delete(r.controllers, id)
	r.mu.Unlock()

	if h, ok := c.(UnregisteredHook); ok {
		h.OnControllerUnregistered(r.owner)
	}
	return true
}

// Lookup returns the controller registered under id.
func (r *Registry) Lookup(id string) (Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controllers[id]
	return c, ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.controllers))
	for id := range r.controllers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered controllers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.controllers)
}

// UnregisterAll unregisters every controller in id order and returns how
// many were removed.
func (r *Registry) UnregisterAll() int {
	n := 0
	for _, id := range r.IDs() {
		if c, ok := r.Lookup(id); ok && r.Unregister(c) {
			n++
		}
	}
	return n
}
