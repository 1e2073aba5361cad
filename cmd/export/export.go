// Package export implements the export command.
package export

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmiccatalog/cosmic-catalog/internal/cli"
	"github.com/cosmiccatalog/cosmic-catalog/internal/datastore"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	xlsx "github.com/cosmiccatalog/cosmic-catalog/internal/export"
	"github.com/cosmiccatalog/cosmic-catalog/internal/observation"
)

// Command creates the export command.
func Command(ctx *cli.Context) *cobra.Command {
	var output, status string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export observations to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.ValidationError("--output is required")
			}
			var filter observation.Status
			if status != "" {
				parsed, ok := observation.ParseStatus(status)
				if !ok {
					return errors.ValidationError("unknown status " + status)
				}
				filter = parsed
			}

			list, err := collect(cmd.Context(), ctx.App.Store, filter)
			if err != nil {
				return err
			}
			if err := writeFile(output, list); err != nil {
				return err
			}
			return ctx.Printer().Message(output, fmt.Sprintf("%d observations", len(list)))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Workbook path")
	cmd.Flags().StringVar(&status, "status", "", "Only export observations with this status")

	return cmd
}

// collect pages through every matching observation in id order.
func collect(ctx context.Context, store datastore.Interface, status observation.Status) ([]*observation.Observation, error) {
	var all []*observation.Observation
	opts := datastore.ListOptions{Size: datastore.MaxPageSize, Status: status}
	for {
		result, err := store.ListObservations(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if len(result.Items) < opts.Size {
			return all, nil
		}
		opts.Page++
	}
}

func writeFile(path string, list []*observation.Observation) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.New(fmt.Errorf("create workbook: %w", err)).
			Component("export").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return xlsx.WriteWorkbook(f, list)
}
