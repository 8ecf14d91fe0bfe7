package site

import (
	"strings"
	"testing"

	"github.com/go-spring-projects/website/internal/config"
	"github.com/go-spring-projects/website/internal/markdown"
)

func TestRouteFor(t *testing.T) {
	tests := []struct {
		relPath   string
		cleanURLs bool
		want      string
	}{
		{"index.md", true, "/"},
		{"guide/index.md", true, "/guide/"},
		{"guide/getting-started.md", true, "/guide/getting-started"},
		{"guide/getting-started.md", false, "/guide/getting-started.html"},
		{"guide/index.md", false, "/guide/"},
	}
	for _, tt := range tests {
		if got := routeFor(tt.relPath, tt.cleanURLs); got != tt.want {
			t.Errorf("routeFor(%q, %v) = %q, want %q", tt.relPath, tt.cleanURLs, got, tt.want)
		}
	}
}

func TestRouteAliases(t *testing.T) {
	aliases := routeAliases("guide/index.md", true)
	for _, want := range []string{"/guide/", "/guide/index.html", "/guide/index", "/guide"} {
		found := false
		for _, a := range aliases {
			if a == want {
				found = true
			}
		}
		if !found {
			t.Errorf("aliases %v missing %q", aliases, want)
		}
	}
}

func TestRewriteMDLinks(t *testing.T) {
	tests := []struct {
		input     string
		cleanURLs bool
		want      string
	}{
		{`<a href="getting-started.md">x</a>`, true, `<a href="getting-started">x</a>`},
		{`<a href="getting-started.md#install">x</a>`, true, `<a href="getting-started#install">x</a>`},
		{`<a href="getting-started.md">x</a>`, false, `<a href="getting-started.html">x</a>`},
		{`<a href="./guide/index.md">x</a>`, true, `<a href="./guide/">x</a>`},
		{`<a href="index.md">x</a>`, true, `<a href="./">x</a>`},
		{`<a href="https://example.com/readme.md">x</a>`, true, `<a href="https://example.com/readme.md">x</a>`},
		{`<a href="/logo.svg">x</a>`, true, `<a href="/logo.svg">x</a>`},
	}
	for _, tt := range tests {
		if got := rewriteMDLinks(tt.input, tt.cleanURLs); got != tt.want {
			t.Errorf("rewriteMDLinks(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWithBase(t *testing.T) {
	tests := []struct {
		base, link, want string
	}{
		{"/", "/guide/", "/guide/"},
		{"/docs/", "/guide/", "/docs/guide/"},
		{"/docs/", "https://go-spring.com", "https://go-spring.com"},
		{"/docs/", "//cdn.example.com/x.js", "//cdn.example.com/x.js"},
		{"/docs/", "relative", "relative"},
	}
	for _, tt := range tests {
		if got := withBase(tt.base, tt.link); got != tt.want {
			t.Errorf("withBase(%q, %q) = %q, want %q", tt.base, tt.link, got, tt.want)
		}
	}
}

func TestPrefixBase(t *testing.T) {
	got := prefixBase(`<a href="/guide/">g</a><img src="/logo.svg"><a href="x">y</a>`, "/docs/")
	want := `<a href="/docs/guide/">g</a><img src="/docs/logo.svg"><a href="x">y</a>`
	if got != want {
		t.Errorf("prefixBase = %q, want %q", got, want)
	}
}

func TestResolveLink(t *testing.T) {
	tests := []struct {
		route, href string
		want        string
		internal    bool
	}{
		{"/guide/getting-started", "migration", "/guide/migration", true},
		{"/guide/", "getting-started#install", "/guide/getting-started", true},
		{"/", "./guide/", "/guide/", true},
		{"/guide/a", "../logo.svg", "/logo.svg", true},
		{"/guide/a", "/guide/?q=1", "/guide/", true},
		{"/guide/a", "#top", "", false},
		{"/guide/a", "https://go-spring.com", "", false},
		{"/guide/a", "mailto:team@go-spring.com", "", false},
	}
	for _, tt := range tests {
		got, internal := resolveLink(tt.route, tt.href)
		if got != tt.want || internal != tt.internal {
			t.Errorf("resolveLink(%q, %q) = (%q, %v), want (%q, %v)", tt.route, tt.href, got, internal, tt.want, tt.internal)
		}
	}
}

func TestExtractTitle(t *testing.T) {
	md := markdown.New(config.DefaultConfig().Markdown)
	tests := []struct {
		content, relPath, want string
	}{
		{"# Hello World\n\nContent here.", "hello.md", "Hello World"},
		{"No heading here.", "getting-started.md", "Getting Started"},
		{"", "guide/index.md", "Guide"},
		{"## Only H2\n", "api_reference.md", "Api Reference"},
		{"# The `Bean` Container\n", "beans.md", "The Bean Container"},
		{"Intro text\n\n```sh\n# install it\n```\n", "guide/setup.md", "Setup"},
		{"    # indented code\n\n# Real Title\n", "x.md", "Real Title"},
	}
	for _, tt := range tests {
		doc, err := md.Convert([]byte(tt.content))
		if err != nil {
			t.Fatalf("Convert(%q): %v", tt.content, err)
		}
		if got := extractTitle(doc.Heading, tt.relPath); got != tt.want {
			t.Errorf("extractTitle for %q in %q = %q, want %q", tt.content, tt.relPath, got, tt.want)
		}
	}
}

func TestRenderHead(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AnalyticsID = "G-TEST123"

	head := string(renderHead(cfg.HeadTags(), "/"))

	icon := strings.Index(head, `<link href="/logo.svg" rel="icon">`)
	fancybox := strings.Index(head, `fancybox.umd.js"></script>`)
	loader := strings.Index(head, `<script async src="https://www.googletagmanager.com/gtag/js?id=G-TEST123"></script>`)
	inline := strings.Index(head, "gtag('config', 'G-TEST123');</script>")
	if icon < 0 || fancybox < 0 || loader < 0 || inline < 0 {
		t.Fatalf("head missing expected tags:\n%s", head)
	}
	if !(icon < fancybox && fancybox < loader && loader < inline) {
		t.Errorf("head tags out of order:\n%s", head)
	}
	if strings.Contains(head, "</link>") || strings.Contains(head, "</meta>") {
		t.Errorf("void elements should not be closed:\n%s", head)
	}
}

func TestRenderHeadWithBase(t *testing.T) {
	tags := []config.HeadTag{{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/logo.svg"}}}
	head := string(renderHead(tags, "/docs/"))
	if !strings.Contains(head, `href="/docs/logo.svg"`) {
		t.Errorf("base not applied: %s", head)
	}
}

func TestLocalAssets(t *testing.T) {
	got := localAssets(config.DefaultHead)
	if len(got) != 1 || got[0] != "/logo.svg" {
		t.Errorf("localAssets = %v, want [/logo.svg]", got)
	}
}

func TestNavLinks(t *testing.T) {
	cfg := config.DefaultConfig()
	links := navLinks(cfg, "/guide/getting-started")
	if len(links) != 3 {
		t.Fatalf("nav links = %d, want 3", len(links))
	}
	if !links[0].Active || links[0].External {
		t.Errorf("Guide should be active and internal: %+v", links[0])
	}
	if links[1].Active || !links[1].External {
		t.Errorf("Release should be external: %+v", links[1])
	}

	for _, l := range navLinks(cfg, "/") {
		if l.Active {
			t.Errorf("no entry should be active on home page, got %q", l.Text)
		}
	}
}

func TestSidebarGroups(t *testing.T) {
	cfg := config.DefaultConfig()
	groups := sidebarGroups(cfg, "/guide/getting-started")
	if len(groups) != 1 || groups[0].Text != "Introduction" {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[0].Items[0].Active || !groups[0].Items[1].Active {
		t.Errorf("only Getting Started should be active: %+v", groups[0].Items)
	}

	if got := sidebarGroups(cfg, "/"); len(got) != 0 {
		t.Errorf("home page should have no sidebar, got %+v", got)
	}
}

func TestScriptJSCookie(t *testing.T) {
	js := scriptJS()
	if strings.Contains(js, "%COOKIE_") {
		t.Error("script still contains cookie placeholders")
	}
	if !strings.Contains(js, `"nf_lang="`) || !strings.Contains(js, "expires=Mon, 01 Jan 2024 00:00:00 GMT; path=/") {
		t.Errorf("cookie attributes not substituted")
	}
	if !strings.Contains(js, `Fancybox.bind("[data-fancybox]")`) {
		t.Error("gallery binding missing")
	}
}
