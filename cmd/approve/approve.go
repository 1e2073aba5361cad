// Package approve implements the approve command.
package approve

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmiccatalog/cosmic-catalog/internal/cli"
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
)

// Command creates the approve command.
func Command(ctx *cli.Context) *cobra.Command {
	var expectedVersion int

	cmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve an observation",
		Long: `Mark an observation as approved and recompute its score. With
--expected-version the approval only succeeds if the observation has not
changed since that version was read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var expected *int
			if cmd.Flags().Changed("expected-version") {
				expected = &expectedVersion
			}

			obs, err := ctx.App.Gate.Approve(cmd.Context(), id, expected)
			if err != nil {
				return err
			}
			return ctx.Printer().Observation(obs)
		},
	}

	cmd.Flags().IntVar(&expectedVersion, "expected-version", 0, "Fail unless the stored version matches")

	return cmd
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 0)
	if err != nil || id == 0 {
		return 0, errors.ValidationError(fmt.Sprintf("invalid observation id %q", arg))
	}
	return uint(id), nil
}
