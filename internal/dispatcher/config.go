package dispatcher

import (
	"github.com/rs/zerolog"
)

// UnknownControllerPolicy decides what happens when an action names a
// controller id with no live registration.
type UnknownControllerPolicy string

const (
	// UnknownControllerFail stops the event and returns *UnknownControllerError.
	UnknownControllerFail UnknownControllerPolicy = "fail"

	// UnknownControllerSkip skips the action and continues the pass.
	UnknownControllerSkip UnknownControllerPolicy = "skip"
)

// Config holds the runtime switches of a dispatcher.
type Config struct {
	// CatchErrors routes action errors through the error policy.
	CatchErrors bool

	// RecoverPanics converts panics in actions into *PanicError.
	RecoverPanics bool

	// UnknownController selects the unknown-controller policy.
	UnknownController UnknownControllerPolicy

	// EnableMetrics enables pass statistics.
	EnableMetrics bool
}

// DefaultConfig returns the default configuration: errors propagate,
// panics propagate, unknown controllers fail.
func DefaultConfig() Config {
	return Config{
		CatchErrors:       false,
		RecoverPanics:     false,
		UnknownController: UnknownControllerFail,
		EnableMetrics:     false,
	}
}

// WithCatchErrors returns a copy of the config with error catching set.
func (c Config) WithCatchErrors(catch bool) Config {
	c.CatchErrors = catch
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverPanics = recover
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// Option configures a Dispatcher at construction.
type Option func(*Dispatcher)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(d *Dispatcher) {
		d.config = cfg
	}
}

// WithCatchErrors enables or disables the error policy.
func WithCatchErrors(catch bool) Option {
	return func(d *Dispatcher) {
		d.config.CatchErrors = catch
	}
}

// WithPanicRecovery enables or disables panic recovery in actions.
func WithPanicRecovery(recover bool) Option {
	return func(d *Dispatcher) {
		d.config.RecoverPanics = recover
	}
}

// WithUnknownControllerPolicy sets the unknown-controller policy.
func WithUnknownControllerPolicy(p UnknownControllerPolicy) Option {
	return func(d *Dispatcher) {
		d.config.UnknownController = p
	}
}

// WithMetrics enables pass statistics.
func WithMetrics() Option {
	return func(d *Dispatcher) {
		d.config.EnableMetrics = true
	}
}

// WithErrorHandler sets the dispatcher-level error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(d *Dispatcher) {
		d.errorHandler = h
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}
