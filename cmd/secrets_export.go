package cmd

import (
	"path/filepath"

	"github.com/kauri-framework/kauri/internal/configs"
	"github.com/kauri-framework/kauri/internal/secrets"
	"github.com/kauri-framework/kauri/internal/ui"
	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output directory (default .kauri/env)")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write one .env file per service from the merged secrets",
	Long: `Writes a {service}.env file for every non-worker service, containing its
fully-resolved environment from the local secrets file. Requires a prior
` + "`kauri secrets generate`" + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		spinner, cleanup := startSpinner("Exporting env files...", verbose)
		defer cleanup()

		if err := configs.InitProjectSettings(); err != nil {
			return Logger.ErrorfAndReturn("failed to init project settings: %v", err)
		}
		settings := configs.ProjectKauriSettings
		if settings.ProjectPath == "" {
			finalMessage := ui.Error.Sprint("✗") + " Kauri has not been initialized\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("kauri secrets init") + " first"
			spinner.FinalMSG = finalMessage
			return nil
		}

		config, err := configs.LoadFrameworkConfig(settings.ProjectPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load kauri.toml: %v", err)
		}

		local, err := secrets.LoadLocalSecretsFile(settings.LocalSecretsPath)
		if err != nil {
			finalMessage := ui.Error.Sprint("✗") + " Local secrets file not found\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("kauri secrets generate") + " first"
			spinner.FinalMSG = finalMessage
			return nil
		}

		outputDir := exportOutput
		if outputDir == "" {
			outputDir = filepath.Join(settings.KauriDir, "env")
		}

		written, err := secrets.WriteServiceEnvFiles(local, config, outputDir)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to write env files: %v", err)
		}

		Logger.Infof("Export command completed successfully")
		finalMessage := ui.Success.Sprint("✓") + " Env files written:\n"
		for _, path := range written {
			finalMessage += "    written: " + ui.Path.Sprint(path) + "\n"
		}
		finalMessage += ui.Warning.Sprint("!") + " These files contain live credentials - keep them out of version control"
		spinner.FinalMSG = finalMessage
		return nil
	},
}
