package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-spring-projects/website/internal/log"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Build and serve the Go-Spring documentation site",
	Long: `sitegen turns the Go-Spring markdown docs into a static website with
navigation, sidebar, local search, syntax highlighting, a sitemap and
analytics, and serves it locally with live reload while you write.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Configure(log.Config{Level: logLevel(verbose)})
	},
}

// logLevel leaves the level empty unless --verbose is set, so LOG_LEVEL
// still applies.
func logLevel(verbose bool) string {
	if verbose {
		return "debug"
	}
	return ""
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "site.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
