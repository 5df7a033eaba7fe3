package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/frontctl/internal/app"
	"github.com/dshills/frontctl/internal/config"
	"github.com/dshills/frontctl/internal/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
	layoutPath string
	scripts    []string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "frontctl",
		Short: "Event delegation for declarative terminal layouts",
		Long: `frontctl binds events on the root of a layout tree and routes them to
controller actions declared on elements with data-actions attributes.

Controllers are built in ("app") or written in Lua.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file (.toml, .yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides the config")
	pf.StringVar(&flags.logFile, "log-file", "", "Append JSON logs to this file")
	pf.StringVarP(&flags.layoutPath, "layout", "l", "", "Layout document; overrides the config")
	pf.StringSliceVarP(&flags.scripts, "script", "s", nil, "Lua controller script (repeatable)")

	cmd.AddCommand(
		newRunCommand(flags),
		newLintCommand(flags),
		newVersionCommand(),
	)
	return cmd
}

// load reads the configuration named by the flags.
func (f *globalFlags) load() (*config.Config, error) {
	return app.LoadConfig(f.configPath, nil)
}

func (f *globalFlags) options(watch bool) app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		LayoutPath: f.layoutPath,
		Scripts:    f.scripts,
		Watch:      watch,
	}
}

// logger builds the session logger. Logs go to --log-file when set and to
// fallback otherwise. The returned close function is never nil.
func (f *globalFlags) logger(cfg *config.Config, fallback io.Writer) (zerolog.Logger, func(), error) {
	level := cfg.LogLevel
	if f.logLevel != "" {
		level = f.logLevel
	}

	if f.logFile == "" {
		return logging.Configure(level, fallback), func() {}, nil
	}

	file, err := logging.OpenFile(f.logFile)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	return logging.Configure(level, file), func() { _ = file.Close() }, nil
}
