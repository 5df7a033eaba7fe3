package binding

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/frontctl/internal/event"
	"github.com/dshills/frontctl/internal/node"
)

// recorder appends its label to a shared log for every event it sees.
type recorder struct {
	label string
	log   *[]string
	stop  bool
	err   error
}

func (r *recorder) HandleEvent(ev event.Native) error {
	*r.log = append(*r.log, r.label+":"+ev.Type())
	if r.stop {
		ev.StopPropagation()
	}
	return r.err
}

func threeLevels() (root, mid, leaf *node.Element) {
	root = node.NewElement("root")
	mid = root.AppendChild(node.NewElement("mid"))
	leaf = mid.AppendChild(node.NewElement("leaf"))
	return root, mid, leaf
}

func TestTreeFireOrder(t *testing.T) {
	root, mid, leaf := threeLevels()
	var log []string
	tr := NewTree()

	tr.Bind(root, "click", &recorder{label: "root-capture", log: &log}, true)
	tr.Bind(root, "click", &recorder{label: "root-bubble", log: &log}, false)
	tr.Bind(mid, "click", &recorder{label: "mid-bubble", log: &log}, false)
	tr.Bind(leaf, "click", &recorder{label: "leaf-bubble", log: &log}, false)
	tr.Bind(leaf, "keypress", &recorder{label: "leaf-key", log: &log}, false)

	if err := tr.Fire(event.New("click", leaf)); err != nil {
		t.Fatalf("fire: %v", err)
	}

	want := []string{"root-capture:click", "leaf-bubble:click", "mid-bubble:click", "root-bubble:click"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("expected %v, got %v", want, log)
	}
}

func TestTreeBindIsDeduplicated(t *testing.T) {
	root, _, _ := threeLevels()
	var log []string
	tr := NewTree()
	h := &recorder{label: "h", log: &log}

	tr.Bind(root, "click", h, false)
	tr.Bind(root, "click", h, false)
	tr.Bind(root, "click", h, true)

	if got := tr.ListenerCount(root, "click"); got != 2 {
		t.Errorf("expected 2 listeners (one per phase), got %d", got)
	}
}

func TestTreeUnbind(t *testing.T) {
	root, _, leaf := threeLevels()
	var log []string
	tr := NewTree()
	h := &recorder{label: "h", log: &log}

	tr.Bind(root, "click", h, false)
	tr.Unbind(root, "click", h, true)
	if tr.Len() != 1 {
		t.Fatal("unbinding the other phase must not remove the listener")
	}

	tr.Unbind(root, "click", h, false)
	if tr.Len() != 0 {
		t.Errorf("expected no listeners, got %d", tr.Len())
	}

	if err := tr.Fire(event.New("click", leaf)); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if len(log) != 0 {
		t.Errorf("expected no deliveries, got %v", log)
	}
}

func TestTreeStopPropagation(t *testing.T) {
	root, mid, leaf := threeLevels()
	var log []string
	tr := NewTree()

	tr.Bind(mid, "click", &recorder{label: "mid", log: &log, stop: true}, false)
	tr.Bind(root, "click", &recorder{label: "root", log: &log}, false)

	if err := tr.Fire(event.New("click", leaf)); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if !reflect.DeepEqual(log, []string{"mid:click"}) {
		t.Errorf("expected delivery to stop at mid, got %v", log)
	}
}

func TestTreeNonBubblingEvent(t *testing.T) {
	root, _, leaf := threeLevels()
	var log []string
	tr := NewTree()

	tr.Bind(root, "focus", &recorder{label: "root-bubble", log: &log}, false)
	tr.Bind(root, "focus", &recorder{label: "root-capture", log: &log}, true)
	tr.Bind(leaf, "focus", &recorder{label: "leaf", log: &log}, false)

	ev := event.New("focus", leaf)
	ev.Bubbles = false
	if err := tr.Fire(ev); err != nil {
		t.Fatalf("fire: %v", err)
	}

	want := []string{"root-capture:focus", "leaf:focus"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("expected %v, got %v", want, log)
	}
}

func TestTreeHandlerError(t *testing.T) {
	root, mid, leaf := threeLevels()
	var log []string
	tr := NewTree()
	boom := errors.New("boom")

	tr.Bind(mid, "click", &recorder{label: "mid", log: &log, err: boom}, false)
	tr.Bind(root, "click", &recorder{label: "root", log: &log}, false)

	if err := tr.Fire(event.New("click", leaf)); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(log) != 1 {
		t.Errorf("expected delivery to abort after the error, got %v", log)
	}
}

func TestFocusAlias(t *testing.T) {
	root, _, _ := threeLevels()
	var log []string
	tr := NewTree()
	a := NewFocusAlias(tr)
	h := &recorder{label: "h", log: &log}

	a.Bind(root, "focus", h, true)
	a.Bind(root, "blur", h, true)
	a.Bind(root, "click", h, false)
	a.Bind(root, "scroll", h, true)

	if tr.ListenerCount(root, "focusin") != 1 || tr.ListenerCount(root, "focusout") != 1 {
		t.Error("expected focus/blur capture bindings to become focusin/focusout")
	}
	if tr.ListenerCount(root, "focus") != 0 {
		t.Error("expected no raw focus binding")
	}
	if tr.ListenerCount(root, "click") != 1 || tr.ListenerCount(root, "scroll") != 1 {
		t.Error("expected other bindings to pass through")
	}

	a.Unbind(root, "focus", h, true)
	if tr.ListenerCount(root, "focusin") != 0 {
		t.Error("expected Unbind to use the same alias")
	}
}
