package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/frontctl/internal/dispatcher"
)

// Format is a configuration file format.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Config is the file model.
type Config struct {
	CatchErrors       bool     `toml:"catch_errors" yaml:"catch_errors"`
	RecoverPanics     bool     `toml:"recover_panics" yaml:"recover_panics"`
	UnknownController string   `toml:"unknown_controller" yaml:"unknown_controller" validate:"omitempty,oneof=fail skip"`
	Metrics           bool     `toml:"metrics" yaml:"metrics"`
	LogLevel          string   `toml:"log_level" yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Events            []string `toml:"events" yaml:"events" validate:"dive,eventname"`
	Layout            string   `toml:"layout" yaml:"layout"`
	Scripts           []string `toml:"scripts" yaml:"scripts" validate:"dive,required"`
	QuitKeys          []string `toml:"quit_keys" yaml:"quit_keys"`
	FocusAlias        bool     `toml:"focus_alias" yaml:"focus_alias"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UnknownController: string(dispatcher.UnknownControllerFail),
		LogLevel:          "info",
		Events:            []string{"click", "enterpress"},
		QuitKeys:          []string{"ctrl+c", "ctrl+q"},
	}
}

// Dispatcher converts the file model into dispatcher switches.
func (c *Config) Dispatcher() dispatcher.Config {
	cfg := dispatcher.DefaultConfig()
	cfg.CatchErrors = c.CatchErrors
	cfg.RecoverPanics = c.RecoverPanics
	cfg.EnableMetrics = c.Metrics
	if c.UnknownController != "" {
		cfg.UnknownController = dispatcher.UnknownControllerPolicy(c.UnknownController)
	}
	return cfg
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("eventname", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return name != "" && !strings.ContainsAny(name, " \t\r\n.")
	})
	return v
}

// Validate checks field constraints and reports every failure.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:  fe.Namespace(),
			Reason: reason(fe),
		})
	}
	return out
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ",")
	case "required":
		return "must not be empty"
	case "eventname":
		return "must be a non-empty event name without spaces or dots"
	default:
		return "failed " + fe.Tag()
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads, parses and validates the file at path, starting from Default.
// Relative layout and script paths are resolved against the file's directory.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(path, format, data)
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data and fills unset fields from Default. source names the
// data in errors.
func Parse(source string, format Format, data []byte) (*Config, error) {
	cfg := &Config{}

	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults copies Default values into fields the file left unset.
func (c *Config) fillDefaults() {
	def := Default()
	if c.UnknownController == "" {
		c.UnknownController = def.UnknownController
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Events == nil {
		c.Events = def.Events
	}
	if c.QuitKeys == nil {
		c.QuitKeys = def.QuitKeys
	}
}

func (c *Config) resolvePaths(dir string) {
	if c.Layout != "" && !filepath.IsAbs(c.Layout) {
		c.Layout = filepath.Join(dir, c.Layout)
	}
	for i, s := range c.Scripts {
		if !filepath.IsAbs(s) {
			c.Scripts[i] = filepath.Join(dir, s)
		}
	}
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FRONTCTL_"

// ApplyEnv overrides fields from FRONTCTL_* variables read through lookup,
// usually os.LookupEnv. Malformed booleans are reported, not ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	bools := map[string]*bool{
		"CATCH_ERRORS":   &c.CatchErrors,
		"RECOVER_PANICS": &c.RecoverPanics,
		"METRICS":        &c.Metrics,
		"FOCUS_ALIAS":    &c.FocusAlias,
	}
	for name, dst := range bools {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
	}

	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvPrefix + "UNKNOWN_CONTROLLER"); ok {
		c.UnknownController = strings.ToLower(v)
	}
	if v, ok := lookup(EnvPrefix + "EVENTS"); ok {
		c.Events = strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	}
	return c.Validate()
}
