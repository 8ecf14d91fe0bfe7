package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-spring-projects/website/internal/config"
	"github.com/go-spring-projects/website/internal/log"
	"github.com/go-spring-projects/website/internal/markdown"
	"github.com/go-spring-projects/website/internal/progress"
	"github.com/go-spring-projects/website/internal/sitemap"
	"github.com/go-spring-projects/website/internal/walker"
)

// SiteGenerator converts the markdown sources of a site into static HTML.
type SiteGenerator struct {
	Config    *config.Config
	OutputDir string

	// LiveReload injects the dev server's reload client into every page.
	LiveReload bool
	Reporter   progress.Reporter
	Logger     zerolog.Logger
	// Now stamps pages when last-updated information is unavailable; tests pin it.
	Now func() time.Time
}

// NewSiteGenerator creates a SiteGenerator writing to outputDir.
func NewSiteGenerator(cfg *config.Config, outputDir string) *SiteGenerator {
	return &SiteGenerator{
		Config:    cfg,
		OutputDir: outputDir,
		Reporter:  progress.Silent{},
		Logger:    log.WithComponent("site"),
		Now:       time.Now,
	}
}

// page is one rendered document, kept until links, search and sitemap are done.
type page struct {
	RelPath     string
	Route       string // base-less route, used for lookups
	Link        string // route with the base applied
	Title       string
	Description string
	LastUpdated time.Time

	links  []string
	images []string
	text   string
}

// Generate builds the full static site. Returns the number of pages generated.
func (g *SiteGenerator) Generate() (int, error) {
	cfg := g.Config
	if err := g.checkAssets(); err != nil {
		return 0, err
	}

	files, err := walker.Walk(walker.Config{
		RootDir: cfg.SrcDir,
		Include: []string{walker.PagePattern},
		Exclude: cfg.SrcExclude,
	})
	if err != nil {
		return 0, fmt.Errorf("discovering pages: %w", err)
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no markdown files found in %s", cfg.SrcDir)
	}

	if err := g.prepareOutput(); err != nil {
		return 0, err
	}
	if err := copyDir(cfg.PublicDir(), g.OutputDir); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("copying public assets: %w", err)
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}

	md := markdown.New(cfg.Markdown)
	var stamps *Timestamps
	if cfg.LastUpdated {
		stamps = NewTimestamps(cfg.SrcDir, g.Logger)
	}
	buildID := uuid.NewString()
	shared := g.sharedData(buildID)

	pages := make([]*page, 0, len(files))
	g.Reporter.Start(len(files))
	for i, f := range files {
		g.Reporter.Update(i+1, f.RelPath)
		p, err := g.renderPage(md, tmpl, shared, stamps, f)
		if err != nil {
			return 0, fmt.Errorf("rendering %s: %w", f.RelPath, err)
		}
		pages = append(pages, p)
	}
	g.Reporter.Finish()

	assets, err := g.copyPageAssets(pages)
	if err != nil {
		return 0, err
	}
	known := g.knownTargets(files)
	for _, route := range assets {
		known[route] = true
	}
	if dead := findDeadLinks(pages, known); len(dead) > 0 {
		err := deadLinksError(dead)
		if !cfg.IgnoreDeadLinks {
			return 0, err
		}
		g.Logger.Warn().Int("count", len(dead)).Msg(err.Error())
	}

	if err := g.writeAssets(pages); err != nil {
		return 0, err
	}
	if cfg.Sitemap.Hostname != "" {
		if err := g.writeSitemap(pages); err != nil {
			return 0, err
		}
	}

	g.Logger.Info().Int("pages", len(pages)).Str("out", g.OutputDir).Str("build", buildID).Msg("site generated")
	return len(pages), nil
}

// checkAssets fails the build when the logo or a local head asset is missing.
func (g *SiteGenerator) checkAssets() error {
	var refs []string
	if logo := g.Config.Theme.Logo; strings.HasPrefix(logo, "/") {
		refs = append(refs, logo)
	}
	refs = append(refs, localAssets(g.Config.HeadTags())...)

	for _, ref := range refs {
		path := filepath.Join(g.Config.PublicDir(), filepath.FromSlash(strings.TrimPrefix(ref, "/")))
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("resolving asset %s: %w", ref, err)
		}
	}
	return nil
}

// prepareOutput empties the output directory, refusing paths that would
// take the sources with them.
func (g *SiteGenerator) prepareOutput() error {
	out, err := filepath.Abs(g.OutputDir)
	if err != nil {
		return err
	}
	src, err := filepath.Abs(g.Config.SrcDir)
	if err != nil {
		return err
	}
	wd, _ := os.Getwd()
	if out == wd || out == filepath.Dir(out) || strings.HasPrefix(src+string(filepath.Separator), out+string(filepath.Separator)) {
		return fmt.Errorf("refusing to use %s as output directory", g.OutputDir)
	}
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("cleaning output directory: %w", err)
	}
	return os.MkdirAll(out, 0o755)
}

// sharedData holds the template fields common to every page.
func (g *SiteGenerator) sharedData(buildID string) pageData {
	cfg := g.Config
	logo := ""
	if cfg.Theme.Logo != "" {
		logo = withBase(cfg.Base, cfg.Theme.Logo)
	}
	return pageData{
		SiteTitle:  cfg.Theme.SiteTitle,
		Base:       cfg.Base,
		Head:       renderHead(cfg.HeadTags(), cfg.Base),
		Logo:       logo,
		Social:     cfg.Theme.SocialLinks,
		EditText:   cfg.Theme.EditLink.Text,
		Footer:     cfg.Theme.Footer,
		Search:     cfg.Theme.Search.Provider == config.SearchLocal,
		BuildID:    buildID,
		LiveReload: g.LiveReload,
	}
}

// renderPage converts a single markdown file to an HTML page.
func (g *SiteGenerator) renderPage(md *markdown.Renderer, tmpl *template.Template, data pageData, stamps *Timestamps, f walker.File) (*page, error) {
	cfg := g.Config
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}

	doc, err := md.Convert(content)
	if err != nil {
		return nil, err
	}
	body := rewriteMDLinks(string(doc.HTML), cfg.CleanURLs)

	scan, err := scanHTML(body)
	if err != nil {
		return nil, fmt.Errorf("scanning rendered html: %w", err)
	}

	route := routeFor(f.RelPath, cfg.CleanURLs)
	p := &page{
		RelPath:     f.RelPath,
		Route:       route,
		Link:        withBase(cfg.Base, route),
		Title:       doc.Front.Title,
		Description: doc.Front.Description,
		links:       scan.Links,
		images:      scan.Images,
		text:        scan.Text,
	}
	if p.Title == "" {
		p.Title = extractTitle(doc.Heading, f.RelPath)
	}
	if p.Description == "" {
		p.Description = cfg.Description
	}
	if stamps != nil && enabled(doc.Front.LastUpdated) {
		p.LastUpdated = stamps.LastUpdated(f.Path)
		if p.LastUpdated.IsZero() {
			p.LastUpdated = g.Now()
		}
	}

	data.Lang = cfg.LocaleFor(route).Lang
	data.Title = p.Title
	data.Description = p.Description
	data.Content = template.HTML(prefixBase(body, cfg.Base))
	data.Nav = navLinks(cfg, route)
	if enabled(doc.Front.Sidebar) {
		data.Sidebar = sidebarGroups(cfg, route)
	}
	if enabled(doc.Front.EditLink) {
		data.EditURL = cfg.Theme.EditLink.URL(f.RelPath)
	}
	data.LastUpdated = p.LastUpdated

	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(outputFor(f.RelPath)))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return nil, err
	}

	g.Logger.Debug().Str("page", f.RelPath).Str("route", route).Msg("rendered")
	return p, nil
}

// knownTargets lists every path an internal link may resolve to.
func (g *SiteGenerator) knownTargets(files []walker.File) map[string]bool {
	known := make(map[string]bool)
	for _, f := range files {
		for _, alias := range routeAliases(f.RelPath, g.Config.CleanURLs) {
			known[alias] = true
		}
	}
	public := g.Config.PublicDir()
	_ = filepath.Walk(public, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(public, path); err == nil {
			known["/"+filepath.ToSlash(rel)] = true
		}
		return nil
	})
	return known
}

// writeAssets writes the stylesheets, script and search index.
func (g *SiteGenerator) writeAssets(pages []*page) error {
	assetsDir := filepath.Join(g.OutputDir, "assets")
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return err
	}

	highlight, err := markdown.HighlightCSS(g.Config.Markdown.Theme)
	if err != nil {
		return fmt.Errorf("building highlight css: %w", err)
	}
	files := map[string]string{
		"style.css":     cssContent,
		"highlight.css": highlight,
		"script.js":     scriptJS(),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(assetsDir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}

	if g.Config.Theme.Search.Provider == config.SearchLocal {
		if err := WriteSearchIndex(BuildSearchIndex(pages), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
			return fmt.Errorf("writing search index: %w", err)
		}
	}
	return nil
}

// writeSitemap writes sitemap.xml, dropping routes the exclude rules reject.
func (g *SiteGenerator) writeSitemap(pages []*page) error {
	items := make([]sitemap.Item, 0, len(pages))
	for _, p := range pages {
		items = append(items, sitemap.Item{URL: p.Link, LastMod: p.LastUpdated})
	}
	items = sitemap.Apply(items, sitemap.ExcludeContaining(g.Config.Sitemap.Exclude...))

	f, err := os.Create(filepath.Join(g.OutputDir, "sitemap.xml"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := sitemap.Write(f, g.Config.Sitemap.Hostname, items); err != nil {
		return fmt.Errorf("writing sitemap: %w", err)
	}
	return nil
}

func enabled(flag *bool) bool {
	return flag == nil || *flag
}

// copyDir copies the tree at src into dst.
func copyDir(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return err
	}
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
