package config

// DefaultNav is the Go-Spring top navigation bar.
var DefaultNav = []NavEntry{
	{Text: "Guide", Link: "/guide/"},
	{Text: "Release", Link: "https://github.com/go-spring-projects/go-spring/releases"},
	{Text: "API Doc", Link: "https://pkg.go.dev/github.com/go-spring-projects/go-spring"},
}

// DefaultSidebar is the Go-Spring sidebar, keyed by route prefix.
func DefaultSidebar() Sidebar {
	return Sidebar{
		"/guide/": {
			{
				Text: "Introduction",
				Items: []SidebarItem{
					{Text: "What is Go-Spring", Link: "/guide/"},
					{Text: "Getting Started", Link: "/guide/getting-started"},
				},
			},
		},
	}
}

// DefaultHead holds the tags emitted before any analytics tags.
var DefaultHead = []HeadTag{
	{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/logo.svg"}},
	{Tag: "meta", Attrs: map[string]string{"name": "theme-color", "content": "#00add8"}},
	{Tag: "link", Attrs: map[string]string{"rel": "stylesheet", "href": "https://cdn.jsdelivr.net/npm/@fancyapps/ui@5.0/dist/fancybox/fancybox.css"}},
	{Tag: "script", Attrs: map[string]string{"src": "https://cdn.jsdelivr.net/npm/@fancyapps/ui@5.0/dist/fancybox/fancybox.umd.js"}},
}

// DefaultExcludes are glob patterns never treated as pages.
var DefaultExcludes = []string{
	"public/**",
	"**/node_modules/**",
	"README.md",
}

// DefaultConfig returns a Config with the Go-Spring site defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:       "Go-Spring",
		Description: "Go-Spring is a Go application framework inspired by Java Spring",
		Lang:        "en-US",
		Base:        "/",
		SrcDir:      "docs",
		SrcExclude:  append([]string(nil), DefaultExcludes...),
		OutDir:      "dist",
		CleanURLs:   true,
		LastUpdated: true,
		Head:        append([]HeadTag(nil), DefaultHead...),
		Markdown: MarkdownConfig{
			Theme:      HighlightTheme{Light: "github", Dark: "dracula"},
			ImageAttrs: map[string]string{"data-fancybox": "gallery"},
		},
		Sitemap: SitemapConfig{
			Hostname: "https://go-spring.com",
			Exclude:  []string{"migration"},
		},
		Locales: []Locale{
			{Prefix: "/", Lang: "en-US", Label: "English"},
		},
		Theme: ThemeConfig{
			Logo:      "/logo.svg",
			SiteTitle: "Go-Spring",
			Nav:       append([]NavEntry(nil), DefaultNav...),
			Sidebar:   DefaultSidebar(),
			SocialLinks: []SocialLink{
				{Icon: "github", Link: "https://github.com/go-spring-projects/go-spring"},
			},
			EditLink: EditLink{
				Pattern: "https://github.com/go-spring-projects/website/edit/main/docs/:path",
				Text:    "Edit this page on GitHub",
			},
			Search: Search{Provider: SearchLocal},
			Footer: Footer{
				Message:   "Released under the Apache License 2.0.",
				Copyright: "Copyright © 2023-present Go-Spring",
			},
		},
	}
}
