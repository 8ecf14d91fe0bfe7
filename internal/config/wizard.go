package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
)

// RunWizard asks for the handful of values that differ between sites and
// writes the resulting configuration to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Let's configure your documentation site.")
	fmt.Println()

	cfg := DefaultConfig()

	title, err := (&promptui.Prompt{Label: "Site title", Default: cfg.Title}).Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	cfg.Title = title
	cfg.Theme.SiteTitle = title

	desc, err := (&promptui.Prompt{Label: "Description", Default: cfg.Description}).Run()
	if err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}
	cfg.Description = desc

	srcDir, err := (&promptui.Prompt{Label: "Source directory", Default: detectSrcDir()}).Run()
	if err != nil {
		return nil, fmt.Errorf("source dir: %w", err)
	}
	cfg.SrcDir = srcDir

	hostname, err := (&promptui.Prompt{Label: "Sitemap hostname", Default: cfg.Sitemap.Hostname}).Run()
	if err != nil {
		return nil, fmt.Errorf("sitemap hostname: %w", err)
	}
	cfg.Sitemap.Hostname = hostname

	searchPrompt := promptui.Select{
		Label: "Search provider",
		Items: []string{string(SearchLocal), string(SearchNone)},
	}
	_, provider, err := searchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("search provider: %w", err)
	}
	cfg.Theme.Search.Provider = SearchProvider(provider)

	analytics, err := (&promptui.Prompt{Label: "Google Analytics ID (blank to skip)"}).Run()
	if err != nil {
		return nil, fmt.Errorf("analytics id: %w", err)
	}
	cfg.AnalyticsID = analytics

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// detectSrcDir picks the first conventional docs folder that exists.
func detectSrcDir() string {
	for _, dir := range []string{"docs", "src", "content"} {
		if info, err := os.Stat(filepath.Join(".", dir)); err == nil && info.IsDir() {
			return dir
		}
	}
	return "docs"
}
