package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kauri-framework/kauri/internal/configs"
	"github.com/kauri-framework/kauri/internal/secrets"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// environmentValue is a pflag.Value restricted to the two URL environments.
type environmentValue secrets.Environment

var _ pflag.Value = (*environmentValue)(nil)

func (e *environmentValue) String() string {
	return string(*e)
}

func (e *environmentValue) Set(value string) error {
	switch secrets.Environment(value) {
	case secrets.EnvironmentLocal, secrets.EnvironmentCloud:
		*e = environmentValue(value)
		return nil
	}
	return fmt.Errorf("must be %q or %q", secrets.EnvironmentLocal, secrets.EnvironmentCloud)
}

func (e *environmentValue) Type() string {
	return "environment"
}

var generateEnvironment = environmentValue(secrets.EnvironmentLocal)

func init() {
	generateCmd.Flags().Var(&generateEnvironment, "environment", "URL environment for generated service URLs (local or cloud)")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the framework, user, and local secrets files",
	Long: `Regenerates the framework secrets file, preserving previously-issued
secrets, creates or syncs the user secrets file without touching user edits,
and merges both into the resolved local file.

Safe to run any number of times.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting generate command")
		spinner, cleanup := startSpinner("Generating secrets files...", verbose)
		defer cleanup()

		Logger.Debugf("Initializing project settings")
		if err := configs.InitProjectSettings(); err != nil {
			return Logger.ErrorfAndReturn("failed to init project settings: %v", err)
		}
		settings := configs.ProjectKauriSettings

		if settings.ProjectPath == "" {
			finalMessage := color.RedString("✗") + " Kauri has not been initialized\n" +
				color.CyanString("→") + " Run " + color.YellowString("kauri secrets init") + " first"
			spinner.FinalMSG = finalMessage
			return nil
		}
		Logger.Debugf("Project path: %s", settings.ProjectPath)

		config, err := configs.LoadFrameworkConfig(settings.ProjectPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load kauri.toml: %v", err)
		}
		Logger.Infof("Loaded config with %d services", len(config.Services))

		existingFramework, err := secrets.LoadSecretsFile(settings.FrameworkSecretsPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load framework secrets: %v", err)
		}
		existingUser, err := secrets.LoadSecretsFile(settings.UserSecretsPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user secrets: %v", err)
		}

		// Build everything in memory first. A failure anywhere below must
		// not leave a partially-written file: a half-written framework file
		// would drop preserved secrets on the next run.
		Logger.Debugf("Building framework secrets file")
		framework, err := secrets.BuildFrameworkSecretsFile(config, existingFramework, secrets.Environment(generateEnvironment))
		if err != nil {
			return Logger.ErrorfAndReturn("failed to build framework secrets: %v", err)
		}

		userCreated := false
		userSynced := false
		user := existingUser
		if user == nil {
			Logger.Debugf("User secrets file missing, building skeleton")
			user, err = secrets.BuildUserSecretsFile(config)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to build user secrets: %v", err)
			}
			userCreated = true
		} else {
			Logger.Debugf("Syncing user secrets structure")
			synced, err := secrets.SyncUserSecretsStructure(config, user)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to sync user secrets: %v", err)
			}
			if synced != nil {
				user = synced
				userSynced = true
			}
		}

		Logger.Debugf("Merging secrets files")
		local, err := secrets.MergeSecrets(framework, user)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to merge secrets: %v", err)
		}

		if err := secrets.WriteSecretsFile(settings.FrameworkSecretsPath, framework); err != nil {
			return Logger.ErrorfAndReturn("failed to write framework secrets: %v", err)
		}
		if userCreated || userSynced {
			if err := secrets.WriteSecretsFile(settings.UserSecretsPath, user); err != nil {
				return Logger.ErrorfAndReturn("failed to write user secrets: %v", err)
			}
		}
		if err := secrets.WriteSecretsFile(settings.LocalSecretsPath, local); err != nil {
			return Logger.ErrorfAndReturn("failed to write local secrets: %v", err)
		}

		userLine := ""
		switch {
		case userCreated:
			userLine = "    created: " + color.YellowString(settings.UserSecretsPath) + "\n"
		case userSynced:
			userLine = "    synced:  " + color.YellowString(settings.UserSecretsPath) + "\n"
		}

		Logger.Infof("Generate command completed successfully")
		finalMessage := color.GreenString("✓") + " Secrets files generated:\n" +
			"    written: " + color.YellowString(settings.FrameworkSecretsPath) + "\n" +
			userLine +
			"    written: " + color.YellowString(settings.LocalSecretsPath)
		spinner.FinalMSG = finalMessage
		return nil
	},
}
