package site

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-spring-projects/website/internal/config"
	"github.com/go-spring-projects/website/internal/locale"
)

// LiveReloadPath is where the dev server accepts reload websocket clients.
const LiveReloadPath = "/__livereload"

// pageData is what pageTemplate renders.
type pageData struct {
	Lang        string
	Title       string
	Description string
	SiteTitle   string
	Base        string
	Head        template.HTML
	Logo        string
	Nav         []navLink
	Sidebar     []sidebarGroup
	Social      []config.SocialLink
	Content     template.HTML
	EditURL     string
	EditText    string
	LastUpdated time.Time
	Footer      config.Footer
	Search      bool
	BuildID     string
	LiveReload  bool
}

type navLink struct {
	Text     string
	Link     string
	External bool
	Active   bool
}

type sidebarGroup struct {
	Text  string
	Items []navLink
}

// navLinks resolves the nav bar for a page, marking the entry that owns route.
func navLinks(cfg *config.Config, route string) []navLink {
	links := make([]navLink, 0, len(cfg.Theme.Nav))
	for _, n := range cfg.Theme.Nav {
		l := navLink{Text: n.Text, Link: n.Link, External: n.External()}
		if !l.External {
			l.Active = n.Link != "/" && strings.HasPrefix(route, strings.TrimSuffix(n.Link, "/"))
			l.Link = withBase(cfg.Base, n.Link)
		}
		links = append(links, l)
	}
	return links
}

// sidebarGroups resolves the sidebar sections matching route.
func sidebarGroups(cfg *config.Config, route string) []sidebarGroup {
	sections := cfg.Theme.Sidebar.Lookup(route)
	groups := make([]sidebarGroup, 0, len(sections))
	for _, sec := range sections {
		g := sidebarGroup{Text: sec.Text}
		for _, item := range sec.Items {
			g.Items = append(g.Items, navLink{
				Text:     item.Text,
				Link:     withBase(cfg.Base, item.Link),
				External: isExternal(item.Link),
				Active:   item.Link == route,
			})
		}
		groups = append(groups, g)
	}
	return groups
}

// pageTemplate is the Go html/template for each documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteTitle}}</title>
  {{if .Description}}<meta name="description" content="{{.Description}}">{{end}}
  <meta name="generator" content="sitegen {{.BuildID}}">
  <script>(function(){try{var t=localStorage.getItem("sitegen-theme");if(!t&&window.matchMedia("(prefers-color-scheme: dark)").matches)t="dark";if(t)document.documentElement.setAttribute("data-theme",t);}catch(e){}})();</script>
  <link rel="stylesheet" href="{{.Base}}assets/style.css">
  <link rel="stylesheet" href="{{.Base}}assets/highlight.css">
  {{.Head}}
</head>
<body data-base="{{.Base}}">
  <header class="navbar">
    <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">
      <svg width="22" height="22" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
      </svg>
    </button>
    <a class="brand" href="{{.Base}}">
      {{if .Logo}}<img class="brand-logo" src="{{.Logo}}" alt="">{{end}}
      <span class="brand-title">{{.SiteTitle}}</span>
    </a>
    {{if .Search}}
    <div class="search">
      <input type="search" id="search-input" placeholder="Search" autocomplete="off">
      <ul class="search-results" id="search-results"></ul>
    </div>
    {{end}}
    <nav class="nav-links">
      {{range .Nav}}<a href="{{.Link}}"{{if .Active}} class="active"{{end}}{{if .External}} target="_blank" rel="noreferrer"{{end}}>{{.Text}}</a>{{end}}
    </nav>
    <div class="social-links">
      {{range .Social}}<a href="{{.Link}}" class="social-{{.Icon}}" aria-label="{{.Icon}}" target="_blank" rel="noreferrer">{{.Icon}}</a>{{end}}
    </div>
    <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
      <svg class="sun-icon" width="18" height="18" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><circle cx="12" cy="12" r="5"/></svg>
      <svg class="moon-icon" width="18" height="18" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/></svg>
    </button>
  </header>
  <div class="layout{{if .Sidebar}} has-sidebar{{end}}">
    {{if .Sidebar}}
    <aside class="sidebar" id="sidebar">
      {{range .Sidebar}}
      <section class="sidebar-group">
        <p class="sidebar-group-title">{{.Text}}</p>
        <ul>
          {{range .Items}}<li><a href="{{.Link}}"{{if .Active}} class="active"{{end}}>{{.Text}}</a></li>{{end}}
        </ul>
      </section>
      {{end}}
    </aside>
    <div class="sidebar-overlay" id="sidebar-overlay"></div>
    {{end}}
    <main class="content">
      <article class="page-content">
        {{.Content}}
      </article>
      <div class="page-meta">
        {{if .EditURL}}<a class="edit-link" href="{{.EditURL}}" target="_blank" rel="noreferrer">{{.EditText}}</a>{{end}}
        {{if not .LastUpdated.IsZero}}<span class="last-updated">Last updated: <time datetime="{{.LastUpdated.UTC.Format "2006-01-02T15:04:05Z07:00"}}">{{.LastUpdated.Format "2006-01-02"}}</time></span>{{end}}
      </div>
    </main>
  </div>
  {{if or .Footer.Message .Footer.Copyright}}
  <footer class="footer">
    {{if .Footer.Message}}<p>{{.Footer.Message}}</p>{{end}}
    {{if .Footer.Copyright}}<p>{{.Footer.Copyright}}</p>{{end}}
  </footer>
  {{end}}
  <script src="{{.Base}}assets/script.js"></script>
  {{if .LiveReload}}<script>
  (function(){
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "` + LiveReloadPath + `");
    ws.onmessage = function(e){ if (e.data === "reload") location.reload(); };
  })();
  </script>{{end}}
</body>
</html>`

// cssContent is the stylesheet shared by every page.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-soft: #f6f6f7;
  --text: #213547;
  --text-muted: #6b7280;
  --border: #e2e2e3;
  --accent: #00add8;
  --accent-hover: #007d9c;
  --accent-soft: #e6f7fb;
  --code-bg: #f6f8fa;
  --navbar-height: 60px;
  --sidebar-width: 272px;
  --content-max-width: 820px;
  --shadow: 0 4px 12px rgba(0,0,0,0.08);
}

[data-theme="dark"] {
  --bg: #1b1b1f;
  --bg-soft: #222226;
  --text: #dfdfd6;
  --text-muted: #98989f;
  --border: #2e2e32;
  --accent: #5dc9e2;
  --accent-hover: #8ddbed;
  --accent-soft: #16323a;
  --code-bg: #161618;
  --shadow: 0 4px 12px rgba(0,0,0,0.4);
}

/* ============ Reset & Base ============ */
*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

html {
  font-size: 16px;
  scroll-behavior: smooth;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
}

a {
  color: var(--accent);
  text-decoration: none;
}

a:hover {
  color: var(--accent-hover);
}

/* ============ Navbar ============ */
.navbar {
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  height: var(--navbar-height);
  display: flex;
  align-items: center;
  gap: 20px;
  padding: 0 24px;
  background: var(--bg);
  border-bottom: 1px solid var(--border);
  z-index: 100;
}

.brand {
  display: flex;
  align-items: center;
  gap: 8px;
  font-weight: 600;
  color: var(--text);
}

.brand-logo {
  height: 28px;
}

.nav-links {
  display: flex;
  gap: 20px;
  margin-left: auto;
}

.nav-links a {
  color: var(--text);
  font-size: 0.9rem;
  font-weight: 500;
}

.nav-links a.active,
.nav-links a:hover {
  color: var(--accent);
}

.social-links a {
  color: var(--text-muted);
  font-size: 0.85rem;
}

.theme-toggle,
.menu-toggle {
  background: none;
  border: none;
  color: var(--text-muted);
  cursor: pointer;
}

.menu-toggle {
  display: none;
}

.theme-toggle .moon-icon,
[data-theme="dark"] .theme-toggle .sun-icon {
  display: none;
}

[data-theme="dark"] .theme-toggle .moon-icon {
  display: inline;
}

/* ============ Search ============ */
.search {
  position: relative;
}

#search-input {
  width: 220px;
  padding: 6px 12px;
  border: 1px solid var(--border);
  border-radius: 8px;
  background: var(--bg-soft);
  color: var(--text);
  font-size: 0.85rem;
  outline: none;
}

#search-input:focus {
  border-color: var(--accent);
}

.search-results {
  position: absolute;
  top: 40px;
  left: 0;
  width: 360px;
  max-height: 420px;
  overflow-y: auto;
  list-style: none;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 8px;
  box-shadow: var(--shadow);
  display: none;
}

.search-results.visible {
  display: block;
}

.search-results li a {
  display: block;
  padding: 8px 12px;
  color: var(--text);
}

.search-results li a:hover {
  background: var(--accent-soft);
}

.search-results .summary {
  display: block;
  font-size: 0.8rem;
  color: var(--text-muted);
}

/* ============ Layout ============ */
.layout {
  padding-top: var(--navbar-height);
}

.sidebar {
  position: fixed;
  top: var(--navbar-height);
  bottom: 0;
  left: 0;
  width: var(--sidebar-width);
  overflow-y: auto;
  padding: 24px;
  background: var(--bg-soft);
  border-right: 1px solid var(--border);
}

.sidebar-group + .sidebar-group {
  margin-top: 20px;
}

.sidebar-group-title {
  font-weight: 700;
  font-size: 0.9rem;
  margin-bottom: 6px;
}

.sidebar ul {
  list-style: none;
}

.sidebar a {
  display: block;
  padding: 4px 0;
  color: var(--text-muted);
  font-size: 0.88rem;
}

.sidebar a.active {
  color: var(--accent);
  font-weight: 600;
}

.sidebar-overlay {
  display: none;
}

.content {
  max-width: var(--content-max-width);
  margin: 0 auto;
  padding: 40px 32px 64px;
}

.has-sidebar .content {
  margin-left: calc(var(--sidebar-width) + max(0px, (100vw - var(--sidebar-width) - var(--content-max-width)) / 2));
}

/* ============ Page Content ============ */
.page-content h1 { font-size: 2rem; margin: 0 0 24px; }
.page-content h2 { font-size: 1.5rem; margin: 40px 0 16px; padding-top: 24px; border-top: 1px solid var(--border); }
.page-content h3 { font-size: 1.2rem; margin: 32px 0 12px; }
.page-content p,
.page-content ul,
.page-content ol,
.page-content table,
.page-content pre { margin: 16px 0; }
.page-content ul,
.page-content ol { padding-left: 1.25rem; }

.page-content code {
  font-family: "SFMono-Regular", Menlo, Consolas, monospace;
  font-size: 0.875em;
  background: var(--code-bg);
  padding: 2px 6px;
  border-radius: 4px;
}

.page-content pre {
  background: var(--code-bg);
  border-radius: 8px;
  padding: 16px 20px;
  overflow-x: auto;
}

.page-content pre code {
  background: none;
  padding: 0;
}

.page-content img {
  max-width: 100%;
  cursor: zoom-in;
}

.page-content table {
  border-collapse: collapse;
  width: 100%;
}

.page-content th,
.page-content td {
  border: 1px solid var(--border);
  padding: 8px 12px;
  text-align: left;
}

.page-content blockquote {
  border-left: 3px solid var(--accent);
  padding-left: 16px;
  color: var(--text-muted);
}

.page-meta {
  display: flex;
  justify-content: space-between;
  margin-top: 48px;
  font-size: 0.85rem;
  color: var(--text-muted);
}

.footer {
  padding: 32px 24px;
  text-align: center;
  font-size: 0.85rem;
  color: var(--text-muted);
  border-top: 1px solid var(--border);
}

/* ============ Responsive ============ */
@media (max-width: 960px) {
  .menu-toggle { display: block; }
  .nav-links, .social-links { display: none; }
  .sidebar { transform: translateX(-100%); transition: transform 0.2s; z-index: 90; }
  .sidebar.open { transform: none; }
  .sidebar-overlay.visible { display: block; position: fixed; inset: 0; background: rgba(0,0,0,0.4); z-index: 80; }
  .has-sidebar .content { margin-left: auto; }
  #search-input { width: 140px; }
}
`

// jsContent drives the theme toggle, mobile sidebar, local search, image
// gallery and language cookie. The %COOKIE_*% markers are filled in by scriptJS.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var base = document.body.getAttribute("data-base") || "/";

  // ===== Theme toggle =====
  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      var next = html.getAttribute("data-theme") === "dark" ? "light" : "dark";
      html.setAttribute("data-theme", next);
      try { localStorage.setItem("sitegen-theme", next); } catch(e) {}
    });
  }

  // ===== Sidebar toggle (mobile) =====
  var menuToggle = document.getElementById("menu-toggle");
  var sidebar = document.getElementById("sidebar");
  var overlay = document.getElementById("sidebar-overlay");

  function toggleSidebar() {
    if (!sidebar) return;
    sidebar.classList.toggle("open");
    overlay.classList.toggle("visible");
  }

  if (menuToggle) menuToggle.addEventListener("click", toggleSidebar);
  if (overlay) overlay.addEventListener("click", toggleSidebar);

  // ===== Language cookie =====
  // Mirrors the page language into the cookie the host uses to pick a
  // locale on the next request. Only written when it changes.
  function readCookie(name) {
    var parts = document.cookie ? document.cookie.split("; ") : [];
    for (var i = 0; i < parts.length; i++) {
      var kv = parts[i].split("=");
      if (kv[0] === name) return decodeURIComponent(kv.slice(1).join("="));
    }
    return null;
  }

  var lang = html.getAttribute("lang");
  if (lang && readCookie("%COOKIE_NAME%") !== lang) {
    document.cookie = "%COOKIE_NAME%=" + encodeURIComponent(lang) + "; expires=%COOKIE_EXPIRES%; path=%COOKIE_PATH%";
  }

  // ===== Image gallery =====
  if (typeof Fancybox !== "undefined") {
    Fancybox.bind("[data-fancybox]");
  }

  // ===== Local search =====
  var searchInput = document.getElementById("search-input");
  var searchResults = document.getElementById("search-results");
  var searchIndex = null;

  function loadIndex() {
    if (searchIndex) return Promise.resolve(searchIndex);
    return fetch(base + "search-index.json")
      .then(function(r) { return r.json(); })
      .then(function(data) { searchIndex = data; return data; });
  }

  function escapeHTML(s) {
    var d = document.createElement("div");
    d.textContent = s;
    return d.innerHTML;
  }

  function render(query, entries) {
    var terms = query.toLowerCase().split(/\s+/).filter(Boolean);
    var hits = entries.map(function(e) {
      var title = e.title.toLowerCase();
      var body = (e.summary + " " + e.content).toLowerCase();
      var score = 0;
      for (var i = 0; i < terms.length; i++) {
        if (title.indexOf(terms[i]) !== -1) score += 10;
        else if (body.indexOf(terms[i]) !== -1) score += 1;
        else return null;
      }
      return { entry: e, score: score };
    }).filter(Boolean).sort(function(a, b) { return b.score - a.score; }).slice(0, 10);

    searchResults.innerHTML = hits.map(function(h) {
      return '<li><a href="' + h.entry.path + '">' + escapeHTML(h.entry.title) +
        '<span class="summary">' + escapeHTML(h.entry.summary || "") + '</span></a></li>';
    }).join("") || "<li><a>No results</a></li>";
    searchResults.classList.add("visible");
  }

  if (searchInput && searchResults) {
    searchInput.addEventListener("input", function() {
      var query = this.value.trim();
      if (query === "") {
        searchResults.classList.remove("visible");
        return;
      }
      loadIndex().then(function(entries) { render(query, entries); }).catch(function() {});
    });
    document.addEventListener("keydown", function(e) {
      if (e.key === "/" && document.activeElement !== searchInput) {
        e.preventDefault();
        searchInput.focus();
      } else if (e.key === "Escape") {
        searchResults.classList.remove("visible");
        searchInput.blur();
      }
    });
  }
})();
`

// scriptJS returns the client script with the language cookie attributes
// taken from the same definition the server writes.
func scriptJS() string {
	c := locale.Cookie("")
	return strings.NewReplacer(
		"%COOKIE_NAME%", c.Name,
		"%COOKIE_EXPIRES%", c.Expires.UTC().Format(http.TimeFormat),
		"%COOKIE_PATH%", c.Path,
	).Replace(jsContent)
}
