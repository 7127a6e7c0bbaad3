// Command pricectl is an operator tool for the pricing backend: it prices a
// product offline with the same engine the API uses and signs access tokens
// for local testing.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pricectl",
		Short:         "Pricing backend operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(quoteCmd())
	cmd.AddCommand(tokenCmd())

	return cmd
}
