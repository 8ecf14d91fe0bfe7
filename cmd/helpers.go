package cmd

import (
	"fmt"

	"github.com/go-spring-projects/website/internal/config"
	"github.com/go-spring-projects/website/internal/progress"
	"github.com/go-spring-projects/website/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sitegen init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newGenerator builds a generator for cfg, writing to outDir when set.
func newGenerator(cfg *config.Config, outDir string) *site.SiteGenerator {
	if outDir == "" {
		outDir = cfg.OutDir
	}
	gen := site.NewSiteGenerator(cfg, outDir)
	gen.Reporter = progress.NewReporter()
	return gen
}
