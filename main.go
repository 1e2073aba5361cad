package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cosmiccatalog/cosmic-catalog/cmd"
	"github.com/cosmiccatalog/cosmic-catalog/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliCtx := cli.NewContext()
	rootCmd := cmd.RootCommand(cliCtx)

	err := rootCmd.ExecuteContext(ctx)
	if cerr := cliCtx.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
