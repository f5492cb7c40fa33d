// Package nearby provides the nearby command: list places around a
// coordinate.
package nearby

import (
	"github.com/spf13/cobra"

	"github.com/rgreinho/request-yo-racks-api/internal/cmd/application"
	"github.com/rgreinho/request-yo-racks-api/internal/cmd/output"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

type options struct {
	provider string
	location string
	radius   uint
	keyword  string
}

// NewCommand creates the nearby command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "nearby",
		GroupID: "core",
		Short:   "List places around a location",
		Long: `Nearby lists the places within --radius meters of a "lat,lng" location.
Only Google supports nearby searches.`,
		Example: `  ryr nearby --location 30.318744,-97.724181
  ryr nearby --location 30.318744,-97.724181 --radius 1000 --keyword coffee -o table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.provider, "provider", constants.ProviderGoogle, "provider to query")
	cmd.Flags().StringVar(&opts.location, "location", "", `location as "lat,lng" (required)`)
	cmd.Flags().UintVar(&opts.radius, "radius", constants.DefaultNearbyRadius, "search radius in meters")
	cmd.Flags().StringVar(&opts.keyword, "keyword", "", "keyword filter")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, opts options) error {
	if opts.location == "" {
		return errors.NewValidationError("location", opts.location, "--location is required")
	}

	client, err := app.Client(opts.provider)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := client.Authenticate(ctx); err != nil {
		return err
	}

	searchOpts := []places.SearchOption{places.WithRadius(opts.radius)}
	if opts.keyword != "" {
		searchOpts = append(searchOpts, places.WithOption("keyword", opts.keyword))
	}
	if _, err := client.SearchPlacesNearby(ctx, opts.location, searchOpts...); err != nil {
		return err
	}

	summaries, err := client.Summaries()
	if err != nil {
		return err
	}
	return output.Summaries(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), summaries)
}
