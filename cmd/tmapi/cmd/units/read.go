package units

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/tmapi"
	"github.com/agentstation/tmapi/internal/appcontext"
)

// NewListCommand creates the units list subcommand.
func NewListCommand(app appcontext.Interface) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List translation units",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Example: `  tmapi units list
  tmapi units list --query 'state:>=translated'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, "list", "", func(ctx context.Context, u tmapi.Units) (tmapi.Record, error) {
				return u.ListUnits(ctx, query)
			})
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "search query sent as the q parameter")

	return cmd
}

// NewGetCommand creates the units get subcommand.
func NewGetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show a single translation unit",
		Args:    cobra.ExactArgs(1),
		Example: `  tmapi units get 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return run(cmd, app, "get", id, func(ctx context.Context, u tmapi.Units) (tmapi.Record, error) {
				return u.GetUnit(ctx, id)
			})
		},
	}
}

// NewSearchCommand creates the units search subcommand.
func NewSearchCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "search <string>",
		Short: "Search translation units",
		Long: `Search translation units. The search string is sent verbatim as the q
parameter, so this is equivalent to "units list --query".`,
		Args:    cobra.ExactArgs(1),
		Example: `  tmapi units search boards.movingImagesToBoard -f json --output-file output.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			search := args[0]
			return run(cmd, app, "search", "", func(ctx context.Context, u tmapi.Units) (tmapi.Record, error) {
				return u.SearchUnits(ctx, search)
			})
		},
	}
}
