package cmd

import (
	"os"
	"path/filepath"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/kauri-framework/kauri/internal/configs"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize Kauri secrets management in this project",
	Long: `Creates kauri.toml with an example service list and the .kauri directory
that will hold the three secrets files. Run this once at the monorepo root,
then edit kauri.toml and run ` + "`kauri secrets generate`" + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		wd, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to get working directory: %v", err)
		}

		configPath := filepath.Join(wd, "kauri.toml")
		if _, err := os.Stat(configPath); err == nil {
			finalMessage := color.RedString("✗ ") + color.YellowString("kauri.toml ") + "already exists\n" +
				color.CyanString("→") + " Run " + color.YellowString("kauri secrets generate") + " to regenerate secrets"
			os.Stdout.WriteString(finalMessage + "\n")
			return nil
		}

		config := &configs.FrameworkConfig{
			Project: configs.Project{
				Name:      filepath.Base(wd),
				Templates: []string{configs.TemplateAuth},
			},
			Services: []configs.FrameworkService{
				{Name: "auth-service", Type: configs.ServiceTypeNestJS, Port: 3001, HasDatabase: true},
				{Name: "web", Type: configs.ServiceTypeNextJS, Port: 3000},
			},
		}

		if err := configs.SaveFrameworkConfig(wd, config); err != nil {
			return Logger.ErrorfAndReturn("failed to write kauri.toml: %v", err)
		}

		if err := os.MkdirAll(filepath.Join(wd, ".kauri"), 0700); err != nil {
			return Logger.ErrorfAndReturn("failed to create .kauri directory: %v", err)
		}

		// Display the Kauri ASCII art banner on first initialization.
		banner := figure.NewFigure("Kauri", "", true)
		banner.Print()

		Logger.Infof("Init command completed successfully")
		finalMessage := color.GreenString("✓") + " Kauri initialized:\n" +
			"    created: " + color.YellowString(configPath) + "\n" +
			"    created: " + color.YellowString(filepath.Join(wd, ".kauri")) + "\n" +
			color.CyanString("→") + " Edit " + color.YellowString("kauri.toml") + " to match your services, then run " +
			color.YellowString("kauri secrets generate")
		os.Stdout.WriteString(finalMessage + "\n")
		return nil
	},
}
