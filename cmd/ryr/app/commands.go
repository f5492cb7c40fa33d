package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rgreinho/request-yo-racks-api/cmd/ryr/cmd/collect"
	"github.com/rgreinho/request-yo-racks-api/cmd/ryr/cmd/nearby"
	"github.com/rgreinho/request-yo-racks-api/cmd/ryr/cmd/providers"
	"github.com/rgreinho/request-yo-racks-api/cmd/ryr/cmd/search"
	"github.com/rgreinho/request-yo-racks-api/cmd/ryr/cmd/serve"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(collect.NewCommand(a))
	rootCmd.AddCommand(search.NewCommand(a))
	rootCmd.AddCommand(nearby.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))
	rootCmd.AddCommand(providers.NewCommand(a))

	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ryr %s\n", a.version)
			fmt.Fprintf(w, "  commit:     %s\n", a.commit)
			fmt.Fprintf(w, "  built:      %s\n", a.date)
			fmt.Fprintf(w, "  built by:   %s\n", a.builtBy)
			fmt.Fprintf(w, "  go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
