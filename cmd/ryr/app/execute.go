package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/rgreinho/request-yo-racks-api/internal/cmd/output"
)

// Execute runs the ryr CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ryr",
		Short:   "Request Yo Racks place collector",
		Version: a.version,
		Long: `ryr collects information about a business from several place providers
(Google Places, Yelp), merges the answers by provider weight and prints
the result. It can also serve the same operations over HTTP.

Provider credentials are read from RYR_ environment variables, .env files
or ~/.ryr.yaml.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Add global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.ConfigFile, "config", "", "config file (default is $HOME/.ryr.yaml)")
	flags.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.flags.Format, "format", "o", "", "output format: table, json, yaml")
	flags.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("ryr {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(_ *cobra.Command, _ []string) error {
	if _, err := output.ParseFormat(a.flags.Format); err != nil {
		return err
	}
	return a.reload()
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
