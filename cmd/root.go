package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cosmiccatalog/cosmic-catalog/cmd/approve"
	"github.com/cosmiccatalog/cosmic-catalog/cmd/export"
	"github.com/cosmiccatalog/cosmic-catalog/cmd/featured"
	"github.com/cosmiccatalog/cosmic-catalog/cmd/imports"
	"github.com/cosmiccatalog/cosmic-catalog/cmd/list"
	"github.com/cosmiccatalog/cosmic-catalog/cmd/status"
	"github.com/cosmiccatalog/cosmic-catalog/internal/cli"
)

// RootCommand creates and returns the root command
func RootCommand(ctx *cli.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Cosmic Catalog CLI",
		Long:          `Import, deduplicate, score and review telescope observations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := setupFlags(rootCmd, ctx); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		imports.Command(ctx),
		approve.Command(ctx),
		featured.Command(ctx),
		list.Command(ctx),
		status.Command(ctx),
		export.Command(ctx),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := ctx.Load(); err != nil {
			return err
		}
		return ctx.Open()
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, ctx *cli.Context) error {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.ConfigFile, "config", "c", "", "Path to config file (default: search ., ~/.config/cosmic-catalog, /etc/cosmic-catalog)")
	flags.BoolVar(&ctx.JSON, "json", false, "Write JSON output even on a terminal")
	flags.BoolP("debug", "d", false, "Enable debug output")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.String("db", "", "Database type: sqlite, mysql, postgres")
	flags.String("sqlite-path", "", "Path to the SQLite database file")

	bindings := map[string]string{
		"debug":                "debug",
		"log.level":            "log-level",
		"database.type":        "db",
		"database.sqlite.path": "sqlite-path",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}
	return nil
}
