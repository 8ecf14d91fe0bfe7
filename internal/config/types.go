package config

import "strings"

// SearchProvider selects how the site offers search.
type SearchProvider string

const (
	SearchLocal SearchProvider = "local"
	SearchNone  SearchProvider = "none"
)

// Config is the top-level site configuration, corresponding to site.yml.
// It is built once by Load and treated as read-only afterwards.
type Config struct {
	Title           string         `yaml:"title" koanf:"title"`
	Description     string         `yaml:"description" koanf:"description"`
	Lang            string         `yaml:"lang" koanf:"lang"`
	Base            string         `yaml:"base" koanf:"base"`
	SrcDir          string         `yaml:"src_dir" koanf:"src_dir"`
	SrcExclude      []string       `yaml:"src_exclude" koanf:"src_exclude"`
	OutDir          string         `yaml:"out_dir" koanf:"out_dir"`
	IgnoreDeadLinks bool           `yaml:"ignore_dead_links" koanf:"ignore_dead_links"`
	CleanURLs       bool           `yaml:"clean_urls" koanf:"clean_urls"`
	LastUpdated     bool           `yaml:"last_updated" koanf:"last_updated"`
	Head            []HeadTag      `yaml:"head" koanf:"head"`
	AnalyticsID     string         `yaml:"analytics_id" koanf:"analytics_id"`
	Markdown        MarkdownConfig `yaml:"markdown" koanf:"markdown"`
	Sitemap         SitemapConfig  `yaml:"sitemap" koanf:"sitemap"`
	Locales         []Locale       `yaml:"locales" koanf:"locales"`
	Theme           ThemeConfig    `yaml:"theme" koanf:"theme"`
}

// HeadTag is a literal element injected into the <head> of every page.
// Attributes with an empty value are rendered as boolean attributes.
type HeadTag struct {
	Tag     string            `yaml:"tag" koanf:"tag"`
	Attrs   map[string]string `yaml:"attrs,omitempty" koanf:"attrs"`
	Content string            `yaml:"content,omitempty" koanf:"content"`
}

// MarkdownConfig holds markdown rendering options.
type MarkdownConfig struct {
	Theme      HighlightTheme    `yaml:"theme" koanf:"theme"`
	ImageAttrs map[string]string `yaml:"image_attrs" koanf:"image_attrs"`
}

// HighlightTheme names the chroma styles used per color mode.
type HighlightTheme struct {
	Light string `yaml:"light" koanf:"light"`
	Dark  string `yaml:"dark" koanf:"dark"`
}

// SitemapConfig controls sitemap.xml generation. Any URL containing one of
// the Exclude substrings is left out.
type SitemapConfig struct {
	Hostname string   `yaml:"hostname" koanf:"hostname"`
	Exclude  []string `yaml:"exclude" koanf:"exclude"`
}

// Locale binds a route prefix to a language code.
type Locale struct {
	Prefix string `yaml:"prefix" koanf:"prefix"`
	Lang   string `yaml:"lang" koanf:"lang"`
	Label  string `yaml:"label" koanf:"label"`
}

// ThemeConfig is the display configuration consumed by the page template.
type ThemeConfig struct {
	Logo        string       `yaml:"logo" koanf:"logo"`
	SiteTitle   string       `yaml:"site_title" koanf:"site_title"`
	Nav         []NavEntry   `yaml:"nav" koanf:"nav"`
	Sidebar     Sidebar      `yaml:"sidebar" koanf:"sidebar"`
	SocialLinks []SocialLink `yaml:"social_links" koanf:"social_links"`
	EditLink    EditLink     `yaml:"edit_link" koanf:"edit_link"`
	Search      Search       `yaml:"search" koanf:"search"`
	Footer      Footer       `yaml:"footer" koanf:"footer"`
}

// NavEntry is one item of the top navigation bar. Order is display order.
type NavEntry struct {
	Text string `yaml:"text" koanf:"text"`
	Link string `yaml:"link" koanf:"link"`
}

// External reports whether the entry points off-site.
func (e NavEntry) External() bool {
	return isExternal(e.Link)
}

// SidebarItem is a single link inside a sidebar section.
type SidebarItem struct {
	Text string `yaml:"text" koanf:"text"`
	Link string `yaml:"link" koanf:"link"`
}

// SidebarSection groups sidebar items under a title.
type SidebarSection struct {
	Text  string        `yaml:"text" koanf:"text"`
	Items []SidebarItem `yaml:"items" koanf:"items"`
}

// Sidebar maps a route prefix to the sections shown under it.
type Sidebar map[string][]SidebarSection

// Lookup returns the sections of the longest key that prefixes route.
// A route matching no key gets nil.
func (s Sidebar) Lookup(route string) []SidebarSection {
	best := ""
	found := false
	for prefix := range s {
		if strings.HasPrefix(route, prefix) && (!found || len(prefix) > len(best)) {
			best = prefix
			found = true
		}
	}
	if !found {
		return nil
	}
	return s[best]
}

// SocialLink is an icon link shown in the nav bar.
type SocialLink struct {
	Icon string `yaml:"icon" koanf:"icon"`
	Link string `yaml:"link" koanf:"link"`
}

// EditLink builds the "edit this page" URL. Pattern contains ":path",
// replaced by the page's source path relative to SrcDir.
type EditLink struct {
	Pattern string `yaml:"pattern" koanf:"pattern"`
	Text    string `yaml:"text" koanf:"text"`
}

// URL returns the edit URL for the given source path, or "" if no pattern is set.
func (e EditLink) URL(relPath string) string {
	if e.Pattern == "" {
		return ""
	}
	return strings.ReplaceAll(e.Pattern, ":path", relPath)
}

// Search selects the search provider.
type Search struct {
	Provider SearchProvider `yaml:"provider" koanf:"provider"`
}

// Footer is the text shown at the bottom of every page.
type Footer struct {
	Message   string `yaml:"message" koanf:"message"`
	Copyright string `yaml:"copyright" koanf:"copyright"`
}

func isExternal(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") || strings.HasPrefix(link, "//")
}
