package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/kauri-framework/kauri/internal/configs"
	"github.com/kauri-framework/kauri/internal/secrets"
	"github.com/spf13/cobra"
)

var importKeyCmd = &cobra.Command{
	Use:   "import-key <pem-file>",
	Short: "Install an externally-minted JWT signing key",
	Long: `Reads an RSA private key (PKCS8, PKCS1, or OpenSSH PEM), re-encodes it
into the canonical form, and installs it into the framework secrets file as
the JWT signing key. The key is preserved across future regenerations.

The merged local file is rebuilt so services pick up the new key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPath := args[0]
		Logger.Infof("Starting import-key command")
		spinner, cleanup := startSpinner("Importing signing key...", verbose)
		defer cleanup()

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

		data, err := os.ReadFile(keyPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read key file: %v", err)
		}

		pair, err := secrets.ImportSigningKey(data)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to import signing key: %v", err)
		}

		framework, err := secrets.LoadSecretsFile(settings.FrameworkSecretsPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load framework secrets: %v", err)
		}
		if framework == nil {
			finalMessage := color.RedString("✗") + " Framework secrets file not found\n" +
				color.CyanString("→") + " Run " + color.YellowString("kauri secrets generate") + " first"
			spinner.FinalMSG = finalMessage
			return nil
		}

		framework.Secrets[secrets.JWTPrivateKeyName] = pair.PrivateKeyPEM
		framework.Secrets[secrets.JWTPublicKeyName] = pair.PublicKeyPEM
		framework.Secrets[secrets.JWTKeyIDName] = pair.KeyID

		if err := secrets.WriteSecretsFile(settings.FrameworkSecretsPath, framework); err != nil {
			return Logger.ErrorfAndReturn("failed to write framework secrets: %v", err)
		}

		// Rebuild the merged file so running services see the new key on
		// their next restart.
		user, err := secrets.LoadSecretsFile(settings.UserSecretsPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user secrets: %v", err)
		}
		if user != nil {
			local, err := secrets.MergeSecrets(framework, user)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to merge secrets: %v", err)
			}
			if err := secrets.WriteSecretsFile(settings.LocalSecretsPath, local); err != nil {
				return Logger.ErrorfAndReturn("failed to write local secrets: %v", err)
			}
		}

		Logger.Infof("Import-key command completed successfully")
		finalMessage := color.GreenString("✓") + " Signing key imported with key id " + color.CyanString(pair.KeyID) + "\n" +
			"    written: " + color.YellowString(settings.FrameworkSecretsPath)
		spinner.FinalMSG = finalMessage
		return nil
	},
}
