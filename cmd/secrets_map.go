package cmd

import (
	"encoding/json"
	"os"

	"github.com/kauri-framework/kauri/internal/configs"
	"github.com/kauri-framework/kauri/internal/secrets"
	"github.com/spf13/cobra"
)

var mapService string

func init() {
	mapCmd.Flags().StringVar(&mapService, "service", "", "limit output to one service")
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print the service-to-variable-names manifest as JSON",
	Long: `Prints which variable names each service's runtime environment must
receive, as JSON. Deployment tooling consumes this to provision environments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting map command")

		if err := configs.InitProjectSettings(); err != nil {
			return Logger.ErrorfAndReturn("failed to init project settings: %v", err)
		}
		settings := configs.ProjectKauriSettings
		if settings.ProjectPath == "" {
			return Logger.ErrorfAndReturn("kauri has not been initialized, run `kauri secrets init` first")
		}

		config, err := configs.LoadFrameworkConfig(settings.ProjectPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load kauri.toml: %v", err)
		}

		framework, err := secrets.LoadSecretsFile(settings.FrameworkSecretsPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load framework secrets: %v", err)
		}
		user, err := secrets.LoadSecretsFile(settings.UserSecretsPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user secrets: %v", err)
		}

		secretMap := secrets.GenerateSecretMap(framework, user, config)

		var out any = secretMap
		if mapService != "" {
			names, ok := secretMap[mapService]
			if !ok {
				return Logger.ErrorfAndReturn("service %q not found in config", mapService)
			}
			out = names
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			return Logger.ErrorfAndReturn("failed to encode secret map: %v", err)
		}
		return nil
	},
}
