// Package providers provides the providers command: show which providers
// have usable credentials.
package providers

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rgreinho/request-yo-racks-api/internal/auth"
	"github.com/rgreinho/request-yo-racks-api/internal/cmd/application"
	"github.com/rgreinho/request-yo-racks-api/internal/cmd/emoji"
	"github.com/rgreinho/request-yo-racks-api/internal/cmd/output"
	"github.com/rgreinho/request-yo-racks-api/internal/validation"
)

// NewCommand creates the providers command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "providers",
		GroupID: "core",
		Short:   "Show provider credential status",
		Long: `Providers lists every supported place provider with its weight and
whether it has usable credentials. Only configured providers take part in
collect and the place endpoint. No network calls are made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := app.ProviderReport()
			format := output.DetectFormat(app.OutputFormat())
			if format == output.FormatTable {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), ReportToTableData(report))
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), report)
		},
	}
}

// ReportToTableData renders a provider report.
func ReportToTableData(report *validation.ProviderValidationReport) output.Data {
	statuses := report.All()
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, []string{
			symbol(s.State) + " " + s.Provider,
			s.State.String(),
			string(s.Method),
			strconv.Itoa(s.Weight),
			s.Summary,
		})
	}
	return output.Data{
		Headers:         []string{"Provider", "Status", "Method", "Weight", "Details"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignRight, output.AlignLeft},
	}
}

func symbol(state auth.State) string {
	switch state {
	case auth.StateConfigured:
		return emoji.Success
	case auth.StateMissing:
		return emoji.Error
	case auth.StateInvalid:
		return emoji.Warning
	case auth.StateDisabled:
		return emoji.Optional
	default:
		return emoji.Unknown
	}
}
