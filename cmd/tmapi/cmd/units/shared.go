package units

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/tmapi"
	"github.com/agentstation/tmapi/internal/appcontext"
	"github.com/agentstation/tmapi/internal/cmd/output"
	"github.com/agentstation/tmapi/pkg/constants"
	"github.com/agentstation/tmapi/pkg/errors"
	"github.com/agentstation/tmapi/pkg/logging"
)

type operation func(ctx context.Context, u tmapi.Units) (tmapi.Record, error)

// run resolves the unit client, performs op and renders its result.
func run(cmd *cobra.Command, app appcontext.Interface, name, id string, op operation) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithOperation(logging.WithLogger(ctx, app.Logger()), name)
	if id != "" {
		ctx = logging.WithUnit(ctx, id)
	}
	logger := logging.FromContext(ctx)

	units, err := app.Units()
	if err != nil {
		return err
	}
	if units == nil {
		return errors.NewConfigError("client", "no unit client configured", nil)
	}

	rec, err := op(ctx, units)
	if err != nil {
		if code, ok := errors.StatusCode(err); ok {
			logger.Debug().Int("status", code).Msg("Request rejected")
		}
		return err
	}

	return render(ctx, cmd, app, rec)
}

// render writes rec to the configured output file or the command output.
func render(ctx context.Context, cmd *cobra.Command, app appcontext.Interface, rec tmapi.Record) error {
	path := app.OutputFile()
	if path == "" {
		return output.Write(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), rec)
	}

	// Files get JSON unless a format was requested
	format := output.FormatJSON
	if app.OutputFormat() != "" {
		format = output.DetectFormat(app.OutputFormat())
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return errors.WrapIO("open", path, err)
	}

	if err := writeAndClose(f, format, rec); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logging.FromContext(ctx).Info().Str("path", path).Msg("Wrote results")
	return nil
}

func writeAndClose(f io.WriteCloser, format output.Format, rec tmapi.Record) error {
	if err := output.Write(f, format, rec); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
