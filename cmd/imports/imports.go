// Package imports implements the import command.
package imports

import (
	"github.com/spf13/cobra"

	"github.com/cosmiccatalog/cosmic-catalog/internal/cli"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
	"github.com/cosmiccatalog/cosmic-catalog/internal/importer"
)

// Command creates the import command for loading observation files.
func Command(ctx *cli.Context) *cobra.Command {
	var sample, realistic bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import observations",
		Long: `Import observation records from JSON, YAML or TOML files, skipping
records that duplicate stored observations. Each file is imported as its own
batch and recorded in the import ledger.`,
		Example: `  catalog import --sample
  catalog import observations.json more.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := make([]string, 0, len(args)+2)
			if sample {
				sources = append(sources, importer.SampleSource)
			}
			if realistic {
				sources = append(sources, importer.RealisticSource)
			}
			sources = append(sources, args...)
			if len(sources) == 0 {
				return errors.ValidationError("nothing to import: pass files, --sample or --realistic")
			}

			summaries, err := ctx.App.Import(cmd.Context(), sources...)
			if len(summaries) > 0 {
				if perr := ctx.Printer().Summaries(summaries); perr != nil && err == nil {
					err = perr
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "Import the bundled JWST sample data")
	cmd.Flags().BoolVar(&realistic, "realistic", false, "Import the bundled JWST and Hubble program data")

	return cmd
}
