package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/frontctl/internal/app"
	"github.com/dshills/frontctl/internal/layout"
	"github.com/dshills/frontctl/internal/logging"
)

// errLintFailed is returned when lint reports at least one error.
var errLintFailed = errors.New("lint found errors")

func newLintCommand(flags *globalFlags) *cobra.Command {
	var skipControllers bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check a layout's action and parameter attributes",
		Long: `Load the configuration, layout and scripts, then report:

  - action attributes with an odd number of tokens (warning)
  - actions naming a controller that is not registered (error)
  - parameter attributes that are not valid JSON objects (error)
  - parameter keys that match no declared action (warning)

The command exits with status 2 when any error is reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeLint(cmd, flags, skipControllers)
		},
	}

	cmd.Flags().BoolVar(&skipControllers, "skip-controllers", false, "Do not check controller ids")
	return cmd
}

func executeLint(cmd *cobra.Command, flags *globalFlags, skipControllers bool) error {
	cfg, err := flags.load()
	if err != nil {
		return err
	}

	logger, closeLog, err := flags.logger(cfg, logging.Console(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer closeLog()

	application, err := app.New(cfg, flags.options(false), nil, logger)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	var known map[string]bool
	if !skipControllers {
		known = make(map[string]bool)
		for _, id := range application.ControllerIDs() {
			known[id] = true
		}
	}

	issues := layout.Lint(application.Root(), known)
	out := cmd.OutOrStdout()
	for _, issue := range issues {
		fmt.Fprintln(out, issue)
	}
	fmt.Fprintf(out, "%d issue(s)\n", len(issues))

	if layout.HasErrors(issues) {
		return errLintFailed
	}
	return nil
}
