package controller

import (
	"errors"
	"testing"
)

type mockController struct {
	Base
	registered   []string
	unregistered int
	owner        Registrar
}

func (m *mockController) OnControllerRegistered(r Registrar, id string) {
	m.owner = r
	m.registered = append(m.registered, id)
}

func (m *mockController) OnControllerUnregistered(r Registrar) {
	m.unregistered++
}

// bareController implements nothing but the id.
type bareController struct {
	id string
}

func (b *bareController) ControllerID() string      { return b.id }
func (b *bareController) SetControllerID(id string) { b.id = id }

type fakeRegistrar struct{}

func (fakeRegistrar) RegisterController(Controller) (string, error) { return "", nil }
func (fakeRegistrar) UnregisterController(Controller) bool          { return false }

func TestRegisterGeneratesIDs(t *testing.T) {
	r := NewRegistry(fakeRegistrar{})

	a, b := &mockController{}, &mockController{}
	idA, err := r.Register(a)
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	idB, err := r.Register(b)
	if err != nil {
		t.Fatalf("register b: %v", err)
	}

	if idA != "1001" || idB != "1002" {
		t.Errorf("expected ids 1001 and 1002, got %q and %q", idA, idB)
	}
	if a.ControllerID() != idA {
		t.Error("expected generated id to be stored on the controller")
	}
	if len(a.registered) != 1 || a.registered[0] != idA {
		t.Errorf("expected registered hook with %q, got %v", idA, a.registered)
	}
	if a.owner == nil {
		t.Error("expected hook to receive the owner")
	}
}

func TestRegisterKeepsExplicitID(t *testing.T) {
	r := NewRegistry(fakeRegistrar{})
	c := &mockController{}
	c.SetControllerID("menu")

	id, err := r.Register(c)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id != "menu" {
		t.Errorf("expected id menu, got %q", id)
	}
}

func TestRegisterDuplicateID(t *testing.T) {
	r := NewRegistry(fakeRegistrar{})
	first, second := &mockController{}, &mockController{}
	first.SetControllerID("dup")
	second.SetControllerID("dup")

	if _, err := r.Register(first); err != nil {
		t.Fatalf("register first: %v", err)
	}

	_, err := r.Register(second)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	var de *DuplicateIDError
	if !errors.As(err, &de) || de.ID != "dup" {
		t.Errorf("expected *DuplicateIDError for dup, got %v", err)
	}

	if len(second.registered) != 0 {
		t.Error("expected no registered hook for the rejected controller")
	}
	if got, _ := r.Lookup("dup"); got != Controller(first) {
		t.Error("expected first controller to keep the id")
	}

	// The rejected controller shares the id but was never registered.
	if r.Unregister(second) {
		t.Error("expected unregistering the rejected controller to fail")
	}
	if r.Len() != 1 {
		t.Errorf("expected first controller to stay registered, len=%d", r.Len())
	}
}

func TestGeneratedIDSkipsTakenIDs(t *testing.T) {
	r := NewRegistry(fakeRegistrar{})
	explicit := &bareController{id: "1001"}
	if _, err := r.Register(explicit); err != nil {
		t.Fatalf("register: %v", err)
	}

	id, err := r.Register(&bareController{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id != "1002" {
		t.Errorf("expected generator to skip 1001, got %q", id)
	}
}

func TestRegistriesDoNotShareCounters(t *testing.T) {
	r1 := NewRegistry(fakeRegistrar{})
	r2 := NewRegistry(fakeRegistrar{})

	id1, _ := r1.Register(&bareController{})
	id2, _ := r2.Register(&bareController{})

	if id1 != id2 {
		t.Errorf("expected independent counters, got %q and %q", id1, id2)
	}
}

func TestUnregister(t *testing.T) {
	r := NewRegistry(fakeRegistrar{})
	c := &mockController{}
	if _, err := r.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	if !r.Unregister(c) {
		t.Fatal("expected unregister to succeed")
	}
	if c.unregistered != 1 {
		t.Errorf("expected one unregistered hook call, got %d", c.unregistered)
	}
	if _, ok := r.Lookup(c.ControllerID()); ok {
		t.Error("expected controller to be gone")
	}

	if r.Unregister(c) {
		t.Error("expected second unregister to report false")
	}
	if c.unregistered != 1 {
		t.Error("expected no hook call on a failed unregister")
	}
}

func TestUnregisterWithoutID(t *testing.T) {
	r := NewRegistry(fakeRegistrar{})
	c := &mockController{}

	if r.Unregister(c) {
		t.Error("expected unregister of a controller without id to fail")
	}
	if c.unregistered != 0 {
		t.Error("expected no side effects")
	}

	c.SetControllerID("never")
	if r.Unregister(c) {
		t.Error("expected unregister of an unknown id to fail")
	}
}

func TestUnregisterAll(t *testing.T) {
	r := NewRegistry(fakeRegistrar{})
	a, b := &mockController{}, &mockController{}
	r.Register(a)
	r.Register(b)

	if n := r.UnregisterAll(); n != 2 {
		t.Errorf("expected 2 controllers removed, got %d", n)
	}
	if a.unregistered != 1 || b.unregistered != 1 {
		t.Error("expected both hooks to fire")
	}
	if r.Len() != 0 {
		t.Errorf("expected empty registry, len=%d", r.Len())
	}
}

// reentrantController registers a sibling from its hook.
type reentrantController struct {
	bareController
	sibling Controller
	reg     *Registry
}

func (c *reentrantController) OnControllerRegistered(r Registrar, id string) {
	c.reg.Register(c.sibling)
}

func TestHooksMayReenterRegistry(t *testing.T) {
	r := NewRegistry(fakeRegistrar{})
	sib := &bareController{id: "sibling"}
	c := &reentrantController{sibling: sib, reg: r}

	if _, err := r.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := r.Lookup("sibling"); !ok {
		t.Error("expected sibling registered from hook")
	}
}
