package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/kauri-framework/kauri/internal/configs"
	"github.com/kauri-framework/kauri/internal/secrets"
	"github.com/spf13/cobra"
	"github.com/synfinatic/aws-sso-cli/sso"
)

var envLogin bool

// AWSSSoConfig holds the session-only AWS SSO settings collected from the
// operator when --login is used.
type AWSSSoConfig struct {
	SSOStartURL string
	SSORegion   string
	Region      string
}

func init() {
	envCmd.Flags().BoolVar(&envLogin, "login", false, "authenticate an AWS SSO session first (session-only)")
}

var envCmd = &cobra.Command{
	Use:   "env <service>",
	Short: "Print a service's resolved environment",
	Long: `Prints the fully-resolved environment variables for one service from the
local secrets file, in KEY=value form suitable for eval or inspection.

Worker services print their base service's environment.

When the project's SECRETS_PROVIDER is "aws" and --login is given, an AWS SSO
session is authenticated first using synfinatic/aws-sso-cli, so downstream
tooling launched with this environment can reach AWS-managed secrets.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceName := args[0]
		Logger.Infof("Starting env command for %s", serviceName)

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

		local, err := secrets.LoadLocalSecretsFile(settings.LocalSecretsPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load local secrets: %v", err)
		}

		env, err := secrets.ServiceEnvironment(local, config, serviceName)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve environment: %v", err)
		}

		if envLogin {
			if local.Secrets["SECRETS_PROVIDER"] != "aws" {
				Logger.WarnfUser("--login given but SECRETS_PROVIDER is not \"aws\", skipping SSO authentication")
			} else {
				ssoConfig, err := promptAWSSSoConfig()
				if err != nil {
					return Logger.ErrorfAndReturn("failed to read SSO configuration: %v", err)
				}
				if err := performAwsSsoLogin(ssoConfig); err != nil {
					return Logger.ErrorfAndReturn("AWS SSO authentication failed: %v", err)
				}
			}
		}

		keys := make([]string, 0, len(env))
		for k := range env {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Printf("%s=%s\n", k, env[k])
		}
		return nil
	},
}

// promptAWSSSoConfig collects session-only SSO settings from stdin.
func promptAWSSSoConfig() (*AWSSSoConfig, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("%s AWS SSO Start URL: ", color.CyanString("→"))
	startURL, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read SSO start URL: %w", err)
	}
	startURL = strings.TrimSpace(startURL)

	fmt.Printf("%s SSO Region (default: us-east-1): ", color.CyanString("→"))
	ssoRegion, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read SSO region: %w", err)
	}
	ssoRegion = strings.TrimSpace(ssoRegion)
	if ssoRegion == "" {
		ssoRegion = "us-east-1"
	}

	return &AWSSSoConfig{
		SSOStartURL: startURL,
		SSORegion:   ssoRegion,
		Region:      ssoRegion,
	}, nil
}

// performAwsSsoLogin authenticates using the synfinatic/aws-sso-cli library
// directly; the library handles opening the browser and the device flow.
func performAwsSsoLogin(config *AWSSSoConfig) error {
	Logger.Infof("Starting AWS SSO authentication...")

	ssoConfig := &sso.SSOConfig{
		SSORegion:     config.SSORegion,
		StartUrl:      config.SSOStartURL,
		DefaultRegion: config.Region,
		MaxBackoff:    30,
		MaxRetry:      3,
	}

	// nil storage: the session is authenticated, not persisted.
	awsSSO := sso.NewAWSSSO(ssoConfig, nil)

	if err := awsSSO.Authenticate("", ""); err != nil {
		return fmt.Errorf("AWS SSO authentication failed: %w", err)
	}

	Logger.Infof("AWS SSO authentication successful")
	return nil
}
