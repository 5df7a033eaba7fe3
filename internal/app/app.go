// Package app wires a layout, its controllers and a terminal screen into a
// running dispatcher. It owns the component lifecycle and the draw loop.
package app

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/frontctl/internal/binding"
	"github.com/dshills/frontctl/internal/config"
	"github.com/dshills/frontctl/internal/dispatcher"
	"github.com/dshills/frontctl/internal/layout"
	"github.com/dshills/frontctl/internal/logging"
	"github.com/dshills/frontctl/internal/node"
	"github.com/dshills/frontctl/internal/script"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the file the configuration was loaded from. Empty means
	// built-in defaults; Watch is ignored then.
	ConfigPath string

	// LayoutPath overrides the layout named in the configuration.
	LayoutPath string

	// Scripts are loaded after the scripts named in the configuration.
	Scripts []string

	// Watch reloads runtime switches when the config file changes.
	Watch bool

	// LookupEnv reads FRONTCTL_* overrides. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// App is the central coordinator for a frontctl session.
type App struct {
	mu sync.RWMutex

	cfg    *config.Config
	opts   Options
	logger zerolog.Logger

	screen     tcell.Screen
	root       *node.Element
	terminal   *binding.Terminal
	dispatcher *dispatcher.Dispatcher
	host       *script.Host
	watcher    *config.Watcher

	running  atomic.Bool
	quitting atomic.Bool
	cancel   context.CancelFunc
	shutdown sync.Once
}

// LoadConfig reads the file at path, or starts from defaults when path is
// empty, then applies environment overrides.
func LoadConfig(path string, lookup func(string) (string, bool)) (*config.Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New builds the application from cfg. screen may be nil for sessions that
// never call Run, such as linting.
func New(cfg *config.Config, opts Options, screen tcell.Screen, logger zerolog.Logger) (*App, error) {
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	a := &App{
		cfg:    cfg,
		opts:   opts,
		logger: logger,
		screen: screen,
	}
	if err := a.bootstrap(); err != nil {
		a.Shutdown()
		return nil, err
	}
	return a, nil
}

// bootstrap initializes components in dependency order.
func (a *App) bootstrap() error {
	// 1. Layout
	path := a.opts.LayoutPath
	if path == "" {
		path = a.cfg.Layout
	}
	if path == "" {
		return &InitError{Component: "layout", Err: ErrNoLayout}
	}
	root, err := layout.Load(path)
	if err != nil {
		return &InitError{Component: "layout", Err: err}
	}
	a.root = root

	// 2. Terminal source
	quitKeys, err := ParseKeys(a.cfg.QuitKeys)
	if err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	a.terminal = binding.NewTerminal(a.screen, root,
		binding.WithQuitKeys(quitKeys...),
		binding.WithErrorFunc(a.reportError),
		binding.WithAfterEvent(a.Draw),
		binding.WithTerminalLogger(logging.Component(a.logger, "terminal")),
	)

	// 3. Dispatcher. The alias is fixed here; reloads do not rebind it.
	var adapter binding.Adapter = a.terminal
	if a.cfg.FocusAlias {
		adapter = binding.NewFocusAlias(a.terminal)
	}
	a.dispatcher = dispatcher.New(adapter,
		dispatcher.WithConfig(a.cfg.Dispatcher()),
		dispatcher.WithLogger(logging.Component(a.logger, "dispatcher")),
		dispatcher.WithErrorHandler(dispatcher.LogErrorHandler(a.logger)),
	)
	if err := a.dispatcher.Bind(root); err != nil {
		return &InitError{Component: "dispatcher", Err: err}
	}
	if err := a.dispatcher.RegisterEvents(a.cfg.Events...); err != nil {
		return &InitError{Component: "dispatcher", Err: err}
	}

	// 4. Controllers
	if _, err := a.dispatcher.RegisterController(newAppController(a)); err != nil {
		return &InitError{Component: "controllers", Err: err}
	}

	a.host = script.NewHost(logging.Component(a.logger, "script"))
	scripts := append(append([]string(nil), a.cfg.Scripts...), a.opts.Scripts...)
	for _, s := range scripts {
		controllers, err := a.host.LoadFile(s)
		if err != nil {
			return &InitError{Component: "scripts", Err: err}
		}
		for _, c := range controllers {
			if _, err := a.dispatcher.RegisterController(c); err != nil {
				return &InitError{Component: "scripts", Err: err}
			}
		}
	}

	// 5. Config watcher
	if a.opts.Watch && a.opts.ConfigPath != "" {
		a.watcher, err = config.NewWatcher(a.opts.ConfigPath, a.reload,
			config.WithWatcherLogger(logging.Component(a.logger, "config")))
		if err != nil {
			return &InitError{Component: "config watcher", Err: err}
		}
	}

	a.logger.Info().
		Str("layout", path).
		Strs("events", a.dispatcher.RegisteredEvents()).
		Strs("controllers", a.dispatcher.Registry().IDs()).
		Msg("application ready")
	return nil
}

// reload applies a changed config file. It runs on the watcher goroutine,
// so it only touches the dispatcher's synchronized surface.
func (a *App) reload(cfg *config.Config, err error) {
	if err == nil {
		err = cfg.ApplyEnv(a.opts.LookupEnv)
	}
	if err != nil {
		a.logger.Warn().Err(err).Msg("config reload failed, keeping current settings")
		return
	}

	a.dispatcher.Apply(cfg.Dispatcher())
	if err := a.dispatcher.RegisterEvents(cfg.Events...); err != nil {
		a.logger.Warn().Err(err).Msg("registering reloaded events")
	}

	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()

	a.logger.Info().
		Bool("catchErrors", cfg.CatchErrors).
		Str("unknownController", cfg.UnknownController).
		Msg("config reloaded")
}

func (a *App) reportError(err error) {
	a.logger.Error().Err(err).Msg("event dispatch failed")
}

// Run initializes the screen and pumps events until ctx is done, a quit key
// is pressed or the app.quit action runs.
func (a *App) Run(ctx context.Context) error {
	if a.screen == nil {
		return &InitError{Component: "screen", Err: errors.New("no screen")}
	}
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer a.screen.Fini()
	a.screen.EnableMouse()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()

	var wg sync.WaitGroup
	if a.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("config watcher stopped")
			}
		}()
	}

	a.Draw()
	err := a.terminal.Run(ctx)
	cancel()
	wg.Wait()

	if a.quitting.Load() && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Quit asks a running session to end.
func (a *App) Quit() {
	a.quitting.Store(true)

	a.mu.RLock()
	cancel := a.cancel
	a.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

// Shutdown tears the dispatcher down and releases the watcher and the Lua
// state. It is safe to call more than once.
func (a *App) Shutdown() {
	a.shutdown.Do(func() {
		if a.dispatcher != nil {
			a.dispatcher.Teardown()
		}
		if a.watcher != nil {
			if err := a.watcher.Close(); err != nil {
				a.logger.Warn().Err(err).Msg("closing config watcher")
			}
		}
		if a.host != nil {
			if err := a.host.Close(); err != nil {
				a.logger.Warn().Err(err).Msg("closing script host")
			}
		}
	})
}

// IsRunning returns true while Run is pumping events.
func (a *App) IsRunning() bool {
	return a.running.Load()
}

// Config returns the current configuration.
func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// Root returns the layout root.
func (a *App) Root() *node.Element {
	return a.root
}

// Terminal returns the terminal event source.
func (a *App) Terminal() *binding.Terminal {
	return a.terminal
}

// Dispatcher returns the dispatcher.
func (a *App) Dispatcher() *dispatcher.Dispatcher {
	return a.dispatcher
}

// ControllerIDs returns the ids of every registered controller, in order.
func (a *App) ControllerIDs() []string {
	return a.dispatcher.Registry().IDs()
}
