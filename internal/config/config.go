package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/hashicorp/go-multierror"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("invalid site configuration")

const gtagScriptURL = "https://www.googletagmanager.com/gtag/js"

var (
	analyticsIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	tagNamePattern     = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SITEGEN_*). A double underscore in the
// variable name selects a nested key: SITEGEN_SITEMAP__HOSTNAME.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("SITEGEN_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "SITEGEN_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// The decoder merges into existing maps and slice elements; a collection
	// declared by the file replaces the default one instead.
	for key, reset := range map[string]func(){
		"src_exclude":          func() { cfg.SrcExclude = nil },
		"head":                 func() { cfg.Head = nil },
		"markdown.image_attrs": func() { cfg.Markdown.ImageAttrs = nil },
		"sitemap.exclude":      func() { cfg.Sitemap.Exclude = nil },
		"locales":              func() { cfg.Locales = nil },
		"theme.nav":            func() { cfg.Theme.Nav = nil },
		"theme.sidebar":        func() { cfg.Theme.Sidebar = nil },
		"theme.social_links":   func() { cfg.Theme.SocialLinks = nil },
	} {
		if k.Exists(key) {
			reset()
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration and reports every problem it finds.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if c.Title == "" {
		errs = multierror.Append(errs, fmt.Errorf("title is required"))
	}
	if c.SrcDir == "" {
		errs = multierror.Append(errs, fmt.Errorf("src_dir is required"))
	}
	if c.OutDir == "" {
		errs = multierror.Append(errs, fmt.Errorf("out_dir is required"))
	}
	if !strings.HasPrefix(c.Base, "/") || !strings.HasSuffix(c.Base, "/") {
		errs = multierror.Append(errs, fmt.Errorf("base %q must start and end with /", c.Base))
	}

	errs = multierror.Append(errs, c.validateHead()...)

	if c.AnalyticsID != "" && !analyticsIDPattern.MatchString(c.AnalyticsID) {
		errs = multierror.Append(errs, fmt.Errorf("invalid analytics_id %q", c.AnalyticsID))
	}

	for _, name := range []string{c.Markdown.Theme.Light, c.Markdown.Theme.Dark} {
		if _, ok := styles.Registry[name]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("unknown highlight theme %q", name))
		}
	}

	if c.Sitemap.Hostname != "" {
		u, err := url.Parse(c.Sitemap.Hostname)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = multierror.Append(errs, fmt.Errorf("sitemap.hostname %q must be an absolute URL", c.Sitemap.Hostname))
		}
	}
	for i, s := range c.Sitemap.Exclude {
		if s == "" {
			errs = multierror.Append(errs, fmt.Errorf("sitemap.exclude[%d] is empty", i))
		}
	}

	for i, l := range c.Locales {
		if !strings.HasPrefix(l.Prefix, "/") {
			errs = multierror.Append(errs, fmt.Errorf("locales[%d].prefix %q must start with /", i, l.Prefix))
		}
		if l.Lang == "" {
			errs = multierror.Append(errs, fmt.Errorf("locales[%d].lang is required", i))
		}
	}

	errs = multierror.Append(errs, c.Theme.validate()...)

	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) validateHead() []error {
	var errs []error
	gtagLoaded := false
	for i, h := range c.Head {
		if !tagNamePattern.MatchString(h.Tag) {
			errs = append(errs, fmt.Errorf("head[%d]: invalid tag %q", i, h.Tag))
			continue
		}
		if h.Tag != "script" {
			continue
		}
		if strings.HasPrefix(h.Attrs["src"], gtagScriptURL) {
			gtagLoaded = true
		}
		if strings.Contains(h.Content, "gtag(") && !gtagLoaded {
			errs = append(errs, fmt.Errorf("head[%d]: inline gtag script must come after the external gtag script", i))
		}
	}
	return errs
}

func (t *ThemeConfig) validate() []error {
	var errs []error
	for i, n := range t.Nav {
		if n.Text == "" || n.Link == "" {
			errs = append(errs, fmt.Errorf("theme.nav[%d]: text and link are required", i))
		}
	}
	for _, prefix := range t.Sidebar.keys() {
		if !strings.HasPrefix(prefix, "/") {
			errs = append(errs, fmt.Errorf("theme.sidebar key %q must start with /", prefix))
		}
		for i, sec := range t.Sidebar[prefix] {
			if sec.Text == "" {
				errs = append(errs, fmt.Errorf("theme.sidebar[%s][%d]: text is required", prefix, i))
			}
			for j, item := range sec.Items {
				if item.Text == "" || item.Link == "" {
					errs = append(errs, fmt.Errorf("theme.sidebar[%s][%d].items[%d]: text and link are required", prefix, i, j))
				}
			}
		}
	}
	for i, s := range t.SocialLinks {
		if s.Icon == "" || !isExternal(s.Link) {
			errs = append(errs, fmt.Errorf("theme.social_links[%d]: icon and absolute link are required", i))
		}
	}
	if t.EditLink.Pattern != "" && !strings.Contains(t.EditLink.Pattern, ":path") {
		errs = append(errs, fmt.Errorf("theme.edit_link.pattern must contain :path"))
	}
	switch t.Search.Provider {
	case SearchLocal, SearchNone:
	default:
		errs = append(errs, fmt.Errorf("invalid theme.search.provider %q: must be one of local, none", t.Search.Provider))
	}
	return errs
}

func (s Sidebar) keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HeadTags returns the tags injected into every page, in emission order:
// the configured head entries, then the analytics loader, then the inline
// bootstrap that calls into it.
func (c *Config) HeadTags() []HeadTag {
	tags := append([]HeadTag(nil), c.Head...)
	if c.AnalyticsID == "" {
		return tags
	}
	return append(tags,
		HeadTag{Tag: "script", Attrs: map[string]string{
			"async": "",
			"src":   gtagScriptURL + "?id=" + c.AnalyticsID,
		}},
		HeadTag{Tag: "script", Content: "window.dataLayer = window.dataLayer || [];\n" +
			"function gtag(){dataLayer.push(arguments);}\n" +
			"gtag('js', new Date());\n" +
			"gtag('config', '" + c.AnalyticsID + "');"},
	)
}

// LocaleFor returns the locale whose prefix is the longest match for route,
// falling back to the site language.
func (c *Config) LocaleFor(route string) Locale {
	best := Locale{Prefix: "/", Lang: c.Lang}
	matched := -1
	for _, l := range c.Locales {
		if strings.HasPrefix(route, l.Prefix) && len(l.Prefix) > matched {
			best = l
			matched = len(l.Prefix)
		}
	}
	return best
}

// PublicDir is where static assets copied verbatim into the output live.
func (c *Config) PublicDir() string {
	return filepath.Join(c.SrcDir, "public")
}
