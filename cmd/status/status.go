// Package status implements the status command.
package status

import (
	"github.com/spf13/cobra"

	"github.com/cosmiccatalog/cosmic-catalog/internal/cli"
)

// Command creates the status command.
func Command(ctx *cli.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog version, contents and last import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := ctx.App.Health.Report(cmd.Context())
			if err != nil {
				return err
			}
			return ctx.Printer().Health(info)
		},
	}
}
