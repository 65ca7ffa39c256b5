package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/tmapi/cmd/tmapi/cmd/units"
	"github.com/agentstation/tmapi/pkg/constants"
)

// CreateUnitsCommand creates the units command with app dependencies.
func (a *App) CreateUnitsCommand() *cobra.Command {
	cmd := units.NewCommand(a)
	cmd.GroupID = "core"
	return cmd
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", constants.AppName, a.version)
			if a.config.Verbose {
				fmt.Fprintf(w, "  commit:   %s\n", a.commit)
				fmt.Fprintf(w, "  built:    %s\n", a.date)
				fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
				fmt.Fprintf(w, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
