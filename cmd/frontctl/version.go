package main

import (
	"io"
	"runtime"
	"text/template"

	"github.com/spf13/cobra"
)

var versionTemplate = template.Must(template.New("version").Parse(`frontctl {{.Version}}
Commit:     {{.Commit}}
Built:      {{.Date}}
Go version: {{.GoVersion}}
OS/Arch:    {{.OS}}/{{.Arch}}
`))

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) error {
	return versionTemplate.Execute(w, struct {
		Version, Commit, Date string
		GoVersion, OS, Arch   string
	}{
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	})
}
