package binding

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/frontctl/internal/event"
	"github.com/dshills/frontctl/internal/node"
)

// KeyDetail is attached to keyboard events fired by Terminal.
type KeyDetail struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
	Name string
}

// MouseDetail is attached to mouse events fired by Terminal.
type MouseDetail struct {
	X, Y    int
	Buttons tcell.ButtonMask
	Mod     tcell.ModMask
}

// Terminal converts tcell input into native events over an element tree.
//
// Key events target the focused element (the root when nothing has focus).
// Mouse events target the deepest element under the pointer; pressing
// button 1 moves focus there.
type Terminal struct {
	*Tree

	screen   tcell.Screen
	root     *node.Element
	focused  *node.Element
	pressed  *node.Element
	quitKeys map[tcell.Key]bool
	onError  func(error)
	onAfter  func()
	logger   zerolog.Logger
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithQuitKeys makes Run return when one of keys is pressed. The key is not
// dispatched.
func WithQuitKeys(keys ...tcell.Key) TerminalOption {
	return func(t *Terminal) {
		for _, k := range keys {
			t.quitKeys[k] = true
		}
	}
}

// WithErrorFunc sets the callback for handler errors raised while Run is
// pumping events. The default logs them.
func WithErrorFunc(fn func(error)) TerminalOption {
	return func(t *Terminal) {
		if fn != nil {
			t.onError = fn
		}
	}
}

// WithAfterEvent sets a callback run by Run after every screen event, such
// as a redraw.
func WithAfterEvent(fn func()) TerminalOption {
	return func(t *Terminal) {
		t.onAfter = fn
	}
}

// WithTerminalLogger sets the logger.
func WithTerminalLogger(logger zerolog.Logger) TerminalOption {
	return func(t *Terminal) {
		t.logger = logger
	}
}

// NewTerminal creates a terminal source. screen may be nil when events are
// fed through HandleTcellEvent only; Run requires a screen.
func NewTerminal(screen tcell.Screen, root *node.Element, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		Tree:     NewTree(),
		screen:   screen,
		root:     root,
		quitKeys: make(map[tcell.Key]bool),
		logger:   zerolog.Nop(),
	}
	t.onError = func(err error) {
		t.logger.Error().Err(err).Msg("event handler failed")
	}

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Focused returns the focused element, or nil.
func (t *Terminal) Focused() *node.Element {
	return t.focused
}

// Focus moves focus to el. The old element gets a non-bubbling blur and
// then a bubbling focusout; the new one gets focus and then focusin.
// Focusing the focused element does nothing. When a blur or focusout
// handler fails, focus stays where it was.
func (t *Terminal) Focus(el *node.Element) error {
	if el == t.focused {
		return nil
	}

	if prev := t.focused; prev != nil {
		if err := t.Fire(nonBubbling(EventBlur, prev)); err != nil {
			return err
		}
		if err := t.Fire(event.New(EventFocusOut, prev)); err != nil {
			return err
		}
	}
	t.focused = el

	if el == nil {
		return nil
	}
	if err := t.Fire(nonBubbling(EventFocus, el)); err != nil {
		return err
	}
	return t.Fire(event.New(EventFocusIn, el))
}

func nonBubbling(eventType string, target *node.Element) *event.Basic {
	ev := event.New(eventType, target)
	ev.Bubbles = false
	return ev
}

// HandleTcellEvent converts one tcell event and fires the resulting native
// events. Unsupported tcell events are ignored.
func (t *Terminal) HandleTcellEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(e)
	case *tcell.EventMouse:
		return t.handleMouse(e)
	}
	return nil
}

// keyCode maps a tcell key to a key code: the rune for printable keys,
// the tcell key value otherwise. tcell.KeyEnter is 13.
func keyCode(e *tcell.EventKey) int {
	if e.Key() == tcell.KeyRune {
		return int(e.Rune())
	}
	return int(e.Key())
}

func (t *Terminal) handleKey(e *tcell.EventKey) error {
	var target node.Node = t.root
	if t.focused != nil {
		target = t.focused
	}
	detail := KeyDetail{Key: e.Key(), Rune: e.Rune(), Mod: e.Modifiers(), Name: e.Name()}

	down := event.NewKey(EventKeyDown, target, keyCode(e))
	down.Detail = detail
	if err := t.Fire(down); err != nil {
		return err
	}
	if down.DefaultPrevented() {
		return nil
	}

	press := event.NewKey(EventKeyPress, target, keyCode(e))
	press.Detail = detail
	return t.Fire(press)
}

func (t *Terminal) handleMouse(e *tcell.EventMouse) error {
	x, y := e.Position()
	hit := t.root.HitTest(x, y)
	detail := MouseDetail{X: x, Y: y, Buttons: e.Buttons(), Mod: e.Modifiers()}

	switch {
	case e.Buttons()&tcell.Button1 != 0 && t.pressed == nil:
		if hit == nil {
			return nil
		}
		t.pressed = hit
		if err := t.Focus(hit); err != nil {
			return err
		}
		return t.fireMouse(EventMouseDown, hit, detail)

	case e.Buttons() == tcell.ButtonNone && t.pressed != nil:
		// A release outside the tree still ends the press.
		pressed := t.pressed
		t.pressed = nil
		if hit == nil {
			return nil
		}
		if err := t.fireMouse(EventMouseUp, hit, detail); err != nil {
			return err
		}
		if hit == pressed {
			return t.fireMouse(EventClick, hit, detail)
		}
	}
	return nil
}

func (t *Terminal) fireMouse(eventType string, target *node.Element, detail MouseDetail) error {
	ev := event.New(eventType, target)
	ev.Detail = detail
	return t.Fire(ev)
}

// Run pumps screen events until ctx is done, a quit key is pressed or the
// screen is finalized. Handler errors go to the error callback and do not
// stop the pump.
func (t *Terminal) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // wakes PollEvent
		case <-done:
		}
	}()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if k, ok := ev.(*tcell.EventKey); ok && t.quitKeys[k.Key()] {
			return nil
		}
		if err := t.HandleTcellEvent(ev); err != nil {
			t.onError(err)
		}
		if t.onAfter != nil {
			t.onAfter()
		}
	}
}
