package dispatcher

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/frontctl/internal/binding"
	"github.com/dshills/frontctl/internal/controller"
	"github.com/dshills/frontctl/internal/event"
	"github.com/dshills/frontctl/internal/node"
)

// Logical event names with special binding rules.
const (
	EventEnterpress = "enterpress"
	EventFocus      = binding.EventFocus
	EventBlur       = binding.EventBlur
)

// registeredEvent is how one logical event name is bound on the root.
type registeredEvent struct {
	name    string
	handler binding.Handler
	capture bool
}

// Dispatcher delegates events received on a root node to controller actions.
//
// Dispatch is synchronous and runs on the caller's goroutine. The mutex only
// guards configuration and registration state; a pass never holds it while
// running actions, so actions may register, unregister or fire new events.
type Dispatcher struct {
	mu sync.RWMutex

	adapter  binding.Adapter
	root     node.Node
	registry *controller.Registry
	events   map[string]registeredEvent

	config       Config
	errorHandler ErrorHandler
	logger       zerolog.Logger
	metrics      *Metrics

	enterpress *enterpressFilter
}

// New allocates an unbound dispatcher. Call Bind before registering events.
func New(adapter binding.Adapter, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		adapter: adapter,
		events:  make(map[string]registeredEvent),
		config:  DefaultConfig(),
		logger:  zerolog.Nop(),
	}
	d.registry = controller.NewRegistry(d)
	d.enterpress = &enterpressFilter{d: d}

	for _, opt := range opts {
		opt(d)
	}

	if d.config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// Bind sets the root node. Passing nil keeps the current root; it is an
// error to have no root afterwards.
func (d *Dispatcher) Bind(root node.Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if root != nil {
		d.root = root
	}
	if d.root == nil {
		return ErrMissingRoot
	}
	return nil
}

// Root returns the root node, or nil when unbound or torn down.
func (d *Dispatcher) Root() node.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.root
}

// Teardown unregisters every controller, unbinds every event and drops the
// root. It is safe to call more than once. Registration keeps working
// afterwards, against empty state.
func (d *Dispatcher) Teardown() {
	d.registry.UnregisterAll()

	d.mu.Lock()
	root := d.root
	events := d.events
	d.events = make(map[string]registeredEvent)
	d.root = nil
	d.mu.Unlock()

	names := make([]string, 0, len(events))
	for name := range events {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		re := events[name]
		d.adapter.Unbind(root, re.name, re.handler, re.capture)
	}

	d.logger.Debug().Int("events", len(names)).Msg("dispatcher torn down")
}

// RegisterEvents binds the given logical event names on the root. Names
// already registered are skipped.
func (d *Dispatcher) RegisterEvents(names ...string) error {
	d.mu.Lock()
	root := d.root
	if root == nil {
		d.mu.Unlock()
		return ErrMissingRoot
	}

	var added []registeredEvent
	for _, name := range names {
		if _, ok := d.events[name]; ok {
			continue
		}
		re := d.eventBinding(name)
		d.events[name] = re
		added = append(added, re)
	}
	d.mu.Unlock()

	for _, re := range added {
		d.adapter.Bind(root, re.name, re.handler, re.capture)
	}
	return nil
}

// eventBinding maps a logical event name to its physical binding.
func (d *Dispatcher) eventBinding(name string) registeredEvent {
	switch name {
	case EventEnterpress:
		return registeredEvent{name: binding.EventKeyPress, handler: d.enterpress}
	case EventFocus, EventBlur:
		return registeredEvent{name: name, handler: d, capture: true}
	default:
		return registeredEvent{name: name, handler: d}
	}
}

// RegisteredEvents returns the registered logical event names in sorted order.
func (d *Dispatcher) RegisteredEvents() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.events))
	for name := range d.events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterController registers c and returns its id.
func (d *Dispatcher) RegisterController(c controller.Controller) (string, error) {
	id, err := d.registry.Register(c)
	if err != nil {
		return "", err
	}
	d.logger.Debug().Str("controller", id).Msg("controller registered")
	return id, nil
}

// UnregisterController unregisters c. It returns false when c was not registered.
func (d *Dispatcher) UnregisterController(c controller.Controller) bool {
	ok := d.registry.Unregister(c)
	if ok {
		d.logger.Debug().Str("controller", c.ControllerID()).Msg("controller unregistered")
	}
	return ok
}

// Controller returns the controller registered under id.
func (d *Dispatcher) Controller(id string) (controller.Controller, bool) {
	return d.registry.Lookup(id)
}

// Registry returns the controller registry.
func (d *Dispatcher) Registry() *controller.Registry {
	return d.registry
}

// Config returns the current configuration.
func (d *Dispatcher) Config() Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.config
}

// Apply replaces the runtime switches. Enabling metrics creates a collector
// if there is none; disabling keeps the collected data but stops recording.
func (d *Dispatcher) Apply(cfg Config) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.config = cfg
	if cfg.EnableMetrics && d.metrics == nil {
		d.metrics = NewMetrics()
	}
}

// SetErrorHandler replaces the dispatcher-level error handler.
func (d *Dispatcher) SetErrorHandler(h ErrorHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errorHandler = h
}

// Metrics returns the metrics collector, or nil when metrics were never enabled.
func (d *Dispatcher) Metrics() *Metrics {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.metrics
}

// enterpressFilter forwards keypress events for the Enter key only.
type enterpressFilter struct {
	d *Dispatcher
}

// HandleEvent implements binding.Handler.
func (f *enterpressFilter) HandleEvent(ev event.Native) error {
	kc, ok := ev.(event.KeyCoder)
	if !ok || kc.KeyCode() != event.KeyEnter {
		return nil
	}
	return f.d.HandleEvent(ev)
}
