// Package featured implements the featured command.
package featured

import (
	"github.com/spf13/cobra"

	"github.com/cosmiccatalog/cosmic-catalog/internal/cli"
)

// Command creates the featured command.
func Command(ctx *cli.Context) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show the highest scoring approved observations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := ctx.App.Featured.Featured(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return ctx.Printer().Observations(list)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of observations, 1-100 (default from featured.defaultlimit)")

	return cmd
}
