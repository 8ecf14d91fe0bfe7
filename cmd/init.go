package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-spring-projects/website/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the site configuration with an interactive wizard",
	Long:  `Runs an interactive wizard for the values that differ between deployments and writes them, on top of the Go-Spring defaults, to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
