// Package units implements the units command and its subcommands.
package units

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tmapi/internal/appcontext"
)

// NewCommand creates the units command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "units",
		Short:   "Work with translation units",
		Aliases: []string{"unit"},
		Long: `List, search, fetch, update, replace and delete translation units.

Results are printed as a table on a terminal and as JSON otherwise; use
--format to choose and --output-file to write them to a file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewGetCommand(app))
	cmd.AddCommand(NewSearchCommand(app))
	cmd.AddCommand(NewUpdateCommand(app))
	cmd.AddCommand(NewReplaceCommand(app))
	cmd.AddCommand(NewDeleteCommand(app))

	return cmd
}
