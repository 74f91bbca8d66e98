package main

import (
	"fmt"
	"os"

	"shopReco/internal/cli"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reco-cli",
		Short: "Operational tooling for the session recommender",
		Long: `reco-cli loads offline-built artifacts and session logs into the
serving store and can run the full recommendation pipeline for one
session without a server.`,
	}

	rootCmd.AddCommand(cli.NewIngestSessionsCmd())
	rootCmd.AddCommand(cli.NewIngestArtifactsCmd())
	rootCmd.AddCommand(cli.NewRunCmd())
	rootCmd.AddCommand(cli.NewHashKeyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
