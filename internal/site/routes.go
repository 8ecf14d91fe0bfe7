package site

import (
	"path"
	"regexp"
	"strings"
)

// routeFor maps a page source path to the route it is served under.
// index.md files own their directory route.
func routeFor(relPath string, cleanURLs bool) string {
	p := strings.TrimSuffix(relPath, ".md")
	switch {
	case p == "index":
		return "/"
	case strings.HasSuffix(p, "/index"):
		return "/" + strings.TrimSuffix(p, "index")
	case cleanURLs:
		return "/" + p
	default:
		return "/" + p + ".html"
	}
}

// outputFor maps a page source path to its file under the output directory.
func outputFor(relPath string) string {
	return strings.TrimSuffix(relPath, ".md") + ".html"
}

// routeAliases lists every spelling of a page's route that links may use.
func routeAliases(relPath string, cleanURLs bool) []string {
	out := "/" + outputFor(relPath)
	aliases := []string{routeFor(relPath, cleanURLs), out, strings.TrimSuffix(out, ".html")}
	if r := routeFor(relPath, true); r != "/" && strings.HasSuffix(r, "/") {
		aliases = append(aliases, strings.TrimSuffix(r, "/"))
	}
	return aliases
}

var hrefAttr = regexp.MustCompile(`href="([^"]*)"`)

// rewriteMDLinks turns links to markdown sources into page routes, keeping
// any fragment. Absolute URLs are left alone.
func rewriteMDLinks(content string, cleanURLs bool) string {
	return hrefAttr.ReplaceAllStringFunc(content, func(attr string) string {
		href := hrefAttr.FindStringSubmatch(attr)[1]
		if isExternal(href) {
			return attr
		}
		target, frag := href, ""
		if i := strings.IndexByte(href, '#'); i >= 0 {
			target, frag = href[:i], href[i:]
		}
		if !strings.HasSuffix(target, ".md") {
			return attr
		}
		target = strings.TrimSuffix(target, ".md")
		switch {
		case target == "index" || strings.HasSuffix(target, "/index"):
			target = strings.TrimSuffix(target, "index")
			if target == "" {
				target = "./"
			}
		case !cleanURLs:
			target += ".html"
		}
		return `href="` + target + frag + `"`
	})
}

// withBase prefixes site-absolute links with the deployment base.
func withBase(base, link string) string {
	if base == "" || base == "/" || !strings.HasPrefix(link, "/") || strings.HasPrefix(link, "//") {
		return link
	}
	return base + strings.TrimPrefix(link, "/")
}

// prefixBase applies withBase to every href and src attribute in content.
var urlAttr = regexp.MustCompile(`(href|src)="(/[^"]*)"`)

func prefixBase(content, base string) string {
	if base == "" || base == "/" {
		return content
	}
	return urlAttr.ReplaceAllStringFunc(content, func(attr string) string {
		m := urlAttr.FindStringSubmatch(attr)
		return m[1] + `="` + withBase(base, m[2]) + `"`
	})
}

// resolveLink resolves href relative to the page route. It reports false for
// links that leave the site or only point inside the current page.
func resolveLink(pageRoute, href string) (string, bool) {
	if href == "" || strings.HasPrefix(href, "#") || isExternal(href) {
		return "", false
	}
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	if strings.Contains(href, ":") {
		// mailto:, tel:, javascript: and friends.
		return "", false
	}
	if strings.HasPrefix(href, "/") {
		return cleanPath(href), true
	}
	dir := pageRoute
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir(dir) + "/"
	}
	return cleanPath(dir + href), true
}

// cleanPath is path.Clean that keeps a trailing slash.
func cleanPath(p string) string {
	c := path.Clean(p)
	if strings.HasSuffix(p, "/") && c != "/" {
		c += "/"
	}
	return c
}

func isExternal(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") || strings.HasPrefix(link, "//")
}

// extractTitle returns the page's first h1, or a name derived from the filename.
func extractTitle(heading, relPath string) string {
	if heading = strings.TrimSpace(heading); heading != "" {
		return heading
	}
	name := strings.TrimSuffix(path.Base(relPath), ".md")
	if name == "index" && path.Dir(relPath) != "." {
		name = path.Base(path.Dir(relPath))
	}
	return formatName(name)
}

// formatName converts a file or directory slug to a human-readable name.
func formatName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
