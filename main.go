package main

import (
	"fmt"
	"os"

	"github.com/kauri-framework/kauri/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kauri",
	Short: "Kauri - A CLI for scaffolding and maintaining multi-service monorepos.",
	Long: `Kauri manages the secret and configuration surface of a multi-service
monorepo: per-service environment variables, inter-service API keys, database
credentials, JWT signing material, and gateway trust tokens.

Features:
  - Generate and regenerate secrets without destroying user edits
  - Merge framework and user configuration deterministically
  - Export per-service environment files for deployment tooling`,
}

func main() {
	rootCmd.AddCommand(cmd.SecretsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
