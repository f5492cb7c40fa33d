// Package collect provides the collect command: look a place up with every
// configured provider and print the merged record.
package collect

import (
	"github.com/spf13/cobra"

	"github.com/rgreinho/request-yo-racks-api/internal/cmd/application"
	"github.com/rgreinho/request-yo-racks-api/internal/cmd/output"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

type options struct {
	placeID string
	name    string
	address string
	explain bool
}

// NewCommand creates the collect command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "collect",
		GroupID: "core",
		Short:   "Collect and merge a place from every provider",
		Long: `Collect queries every provider that has credentials configured at the
same time and merges their records. Fields from providers with a lower
weight win; empty fields never overwrite set ones.

A place is identified either by its Google place ID or by its name and
address. Providers without an ID of their own use the name and address to
find the place first. If any provider fails, nothing is printed.`,
		Example: `  # By name and address
  ryr collect --name "Epoch Coffee" --address "221 W N Loop Blvd, Austin, TX 78751"

  # With a Google place ID, showing which provider supplied each field
  ryr collect --place-id ChIJk3eYqXrKRIYRdFpmKkH6L7E --name "Epoch Coffee" \
    --address "221 W N Loop Blvd, Austin, TX 78751" --explain -o table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.placeID, "place-id", "", "Google place ID")
	cmd.Flags().StringVar(&opts.name, "name", "", "business name")
	cmd.Flags().StringVar(&opts.address, "address", "", "business address")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "include per-provider records and field provenance")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, opts options) error {
	if opts.placeID == "" && (opts.name == "" || opts.address == "") {
		return errors.NewValidationError("place-id", nil, "--place-id or both --name and --address are required")
	}

	orchestrator, err := app.Orchestrator()
	if err != nil {
		return err
	}

	query := reconcile.Query{
		Name:    opts.name,
		Address: opts.address,
	}
	if opts.placeID != "" {
		query.PlaceIDs = map[string]string{constants.ProviderGoogle: opts.placeID}
	}

	app.Logger().Debug().
		Strs("providers", orchestrator.Providers()).
		Msg("Collecting place")

	res, err := orchestrator.CollectResult(cmd.Context(), query)
	if err != nil {
		return err
	}

	format := output.DetectFormat(app.OutputFormat())
	if opts.explain {
		return output.Result(cmd.OutOrStdout(), format, res)
	}
	return output.Record(cmd.OutOrStdout(), format, res.Record)
}
