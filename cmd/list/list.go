// Package list implements the list command.
package list

import (
	"github.com/spf13/cobra"

	"github.com/cosmiccatalog/cosmic-catalog/internal/cli"
	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// Command creates the list command.
func Command(ctx *cli.Context) *cobra.Command {
	var opts datastore.ListOptions
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List observations page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" {
				parsed, ok := observation.ParseStatus(status)
				if !ok {
					return errors.ValidationError("unknown status " + status)
				}
				opts.Status = parsed
			}

			result, err := ctx.App.Store.ListObservations(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return ctx.Printer().Page(result)
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number, starting at 0")
	cmd.Flags().IntVar(&opts.Size, "size", datastore.DefaultPageSize, "Page size, 1-100")
	cmd.Flags().StringVar(&status, "status", "", "Only show PENDING, APPROVED or REJECTED observations")
	cmd.Flags().StringVar(&opts.SortBy, "sort", "id", "Sort by id, score or obs_date")
	cmd.Flags().BoolVar(&opts.Descending, "desc", false, "Sort descending")

	return cmd
}
