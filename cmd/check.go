package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-spring-projects/website/internal/progress"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and look for dead links",
	Long:  `Validates the configuration, then renders the site into a scratch directory so missing assets and dead links are reported without touching out_dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.IgnoreDeadLinks = false

		scratch, err := os.MkdirTemp("", "sitegen-check-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(scratch)

		generator := newGenerator(cfg, scratch)
		generator.Reporter = progress.Silent{}
		pageCount, err := generator.Generate()
		if err != nil {
			return err
		}

		fmt.Printf("OK: %d pages, no dead links\n", pageCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
