package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &cliApp{}
	rootCmd := &cobra.Command{
		Use:   "seqcx",
		Short: "Lempel-Ziv complexity of integer-coded symbol sequences",
		Long: `seqcx computes the LZ76 (Kaspar-Schuster) and LZ77 factorization
complexity of sequences of integer symbol codes.

Example: seqcx estimate 0 0 0 1 1 0 1 0 0 1 0 0 0 1 0 1`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}
	app.bindFlags(rootCmd)

	rootCmd.AddCommand(
		newEstimateCmd(app),
		newBatchCmd(app),
		newSurrogateCmd(app),
		newGenerateCmd(app),
		newServeCmd(app),
	)
	return rootCmd
}
