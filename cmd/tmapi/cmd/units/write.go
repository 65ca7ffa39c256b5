package units

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/tmapi"
	"github.com/agentstation/tmapi/internal/appcontext"
	"github.com/agentstation/tmapi/internal/cmd/payload"
)

// NewUpdateCommand creates the units update subcommand (partial update).
func NewUpdateCommand(app appcontext.Interface) *cobra.Command {
	var data payload.Flags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Partially update a translation unit",
		Long: `Partially update a translation unit. Only the supplied fields are sent
and changed on the server.`,
		Args: cobra.ExactArgs(1),
		Example: `  tmapi units update 42 --set 'target=["hola"]' --set state=20
  tmapi units update 42 --file unit.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			rec, err := data.Record(cmd.InOrStdin())
			if err != nil {
				return err
			}
			return run(cmd, app, "update", id, func(ctx context.Context, u tmapi.Units) (tmapi.Record, error) {
				return u.UpdateUnit(ctx, id, rec)
			})
		},
	}

	payload.AddFlags(cmd.Flags(), &data)

	return cmd
}

// NewReplaceCommand creates the units replace subcommand (full replace).
func NewReplaceCommand(app appcontext.Interface) *cobra.Command {
	var data payload.Flags

	cmd := &cobra.Command{
		Use:   "replace <id>",
		Short: "Replace a translation unit",
		Long: `Replace a translation unit. The supplied data overwrites the entire
unit on the server.`,
		Args:    cobra.ExactArgs(1),
		Example: `  tmapi units replace 42 --file unit.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			rec, err := data.Record(cmd.InOrStdin())
			if err != nil {
				return err
			}
			return run(cmd, app, "replace", id, func(ctx context.Context, u tmapi.Units) (tmapi.Record, error) {
				return u.ReplaceUnit(ctx, id, rec)
			})
		},
	}

	payload.AddFlags(cmd.Flags(), &data)

	return cmd
}

// NewDeleteCommand creates the units delete subcommand.
func NewDeleteCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a translation unit",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		Example: `  tmapi units delete 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return run(cmd, app, "delete", id, func(ctx context.Context, u tmapi.Units) (tmapi.Record, error) {
				return u.DeleteUnit(ctx, id)
			})
		},
	}
}
