package cmd

import (
	logger "github.com/kauri-framework/kauri/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	SecretsCmd = &cobra.Command{
		Use:   "secrets",
		Short: "Manage the project's secrets files",
		Long:  `Provides generation, merging, export, and service removal for the framework, user, and local secrets files.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing secrets command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	SecretsCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	SecretsCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	SecretsCmd.AddCommand(initCmd)
	SecretsCmd.AddCommand(generateCmd)
	SecretsCmd.AddCommand(mapCmd)
	SecretsCmd.AddCommand(removeServiceCmd)
	SecretsCmd.AddCommand(exportCmd)
	SecretsCmd.AddCommand(envCmd)
	SecretsCmd.AddCommand(importKeyCmd)
}
