// Package search provides the search command: run a text search against a
// single provider and print the result summaries.
package search

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rgreinho/request-yo-racks-api/internal/cmd/application"
	"github.com/rgreinho/request-yo-racks-api/internal/cmd/output"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

type options struct {
	address string
	terms   string
	limit   int
	index   int
}

// NewCommand creates the search command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "search <provider>",
		GroupID: "core",
		Short:   "Search a provider for places around an address",
		Long: `Search runs a text search with one provider (google or yelp) and prints
the id, name and address of every result. With --index only that result
is printed.`,
		Example: `  ryr search yelp --address "221 W N Loop Blvd, Austin, TX 78751" --terms "Epoch Coffee"
  ryr search google --address "Austin, TX" --terms coffee --limit 5 --index 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.address, "address", "", "address to search around (required)")
	cmd.Flags().StringVar(&opts.terms, "terms", "", "search terms")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "maximum number of results (0 lets the provider decide)")
	cmd.Flags().IntVar(&opts.index, "index", -1, "print only the result at this index")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, provider string, opts options) error {
	if opts.address == "" {
		return errors.NewValidationError("address", opts.address, "--address is required")
	}

	client, err := app.Client(provider)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := client.Authenticate(ctx); err != nil {
		return err
	}

	var searchOpts []places.SearchOption
	if opts.limit > 0 {
		searchOpts = append(searchOpts, places.WithLimit(opts.limit))
	}
	if _, err := client.SearchPlaces(ctx, opts.address, opts.terms, searchOpts...); err != nil {
		return err
	}

	var summaries []places.SearchSummary
	if opts.index >= 0 {
		summary, err := client.RetrieveSearchSummary(opts.index)
		if err != nil {
			return err
		}
		if summary == nil {
			return errors.NewNotFoundError("search result", strconv.Itoa(opts.index))
		}
		summaries = []places.SearchSummary{*summary}
	} else {
		summaries, err = client.Summaries()
		if err != nil {
			return err
		}
	}

	app.Logger().Debug().
		Str("provider", client.Provider()).
		Int("results", len(summaries)).
		Msg("Search finished")

	return output.Summaries(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), summaries)
}
