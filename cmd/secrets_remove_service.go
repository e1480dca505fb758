package cmd

import (
	"github.com/kauri-framework/kauri/internal/configs"
	"github.com/kauri-framework/kauri/internal/secrets"
	"github.com/kauri-framework/kauri/internal/ui"
	"github.com/spf13/cobra"
)

var removeInclude []string

func init() {
	removeServiceCmd.Flags().StringSliceVar(&removeInclude, "include", nil, "additional JSON file globs to scrub (relative to project root)")
}

var removeServiceCmd = &cobra.Command{
	Use:   "remove-service <name>",
	Short: "Remove every reference to a service from the secrets files",
	Long: `Deletes a service's section, its prefixed variables, and any stray
string references from the framework and user secrets files, then regenerates
the merged local file. Additional JSON files can be scrubbed with --include.

Run this after removing the service from kauri.toml.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceName := args[0]
		Logger.Infof("Starting remove-service command for %s", serviceName)
		spinner, cleanup := startSpinner("Removing service references...", verbose)
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

		patterns := append([]string{".kauri/" + configs.FrameworkSecretsFileName, ".kauri/" + configs.UserSecretsFileName}, removeInclude...)
		files, err := secrets.FindProjectJSONFiles(settings.ProjectPath, patterns)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve file patterns: %v", err)
		}
		Logger.Debugf("Scrubbing %d files", len(files))

		var changed []string
		for _, path := range files {
			modified, err := secrets.DeleteServiceFromFile(path, serviceName)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to scrub %s: %v", path, err)
			}
			if modified {
				Logger.Infof("Removed references from %s", path)
				changed = append(changed, path)
			}
		}

		// Rebuild the merged file from the scrubbed sources so consumers
		// never see a stale reference.
		framework, err := secrets.LoadSecretsFile(settings.FrameworkSecretsPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load framework secrets: %v", err)
		}
		user, err := secrets.LoadSecretsFile(settings.UserSecretsPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user secrets: %v", err)
		}
		if framework != nil && user != nil {
			local, err := secrets.MergeSecrets(framework, user)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to merge secrets after removal: %v", err)
			}
			if err := secrets.WriteSecretsFile(settings.LocalSecretsPath, local); err != nil {
				return Logger.ErrorfAndReturn("failed to write local secrets: %v", err)
			}
		}

		if len(changed) == 0 {
			finalMessage := ui.Success.Sprint("✓") + " No references to " + ui.Highlight.Sprint(serviceName) + " found"
			spinner.FinalMSG = finalMessage
			return nil
		}

		finalMessage := ui.Success.Sprint("✓") + " Removed " + ui.Highlight.Sprint(serviceName) + " from:\n"
		for _, path := range changed {
			finalMessage += "    scrubbed: " + ui.Path.Sprint(path) + "\n"
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
