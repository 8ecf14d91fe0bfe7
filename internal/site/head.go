package site

import (
	"html"
	"html/template"
	"sort"
	"strings"

	"github.com/go-spring-projects/website/internal/config"
)

// voidElements never take content or a closing tag.
var voidElements = map[string]bool{
	"base": true, "link": true, "meta": true,
}

// renderHead serialises head tags verbatim, in order. Attributes are sorted
// by name so output is stable; empty values become boolean attributes.
func renderHead(tags []config.HeadTag, base string) template.HTML {
	var b strings.Builder
	for _, t := range tags {
		b.WriteString("<")
		b.WriteString(t.Tag)

		names := make([]string, 0, len(t.Attrs))
		for name := range t.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			v := t.Attrs[name]
			b.WriteString(" ")
			b.WriteString(name)
			if v == "" {
				continue
			}
			if name == "href" || name == "src" {
				v = withBase(base, v)
			}
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(v))
			b.WriteString(`"`)
		}
		b.WriteString(">")

		if !voidElements[t.Tag] {
			b.WriteString(t.Content)
			b.WriteString("</")
			b.WriteString(t.Tag)
			b.WriteString(">")
		}
		b.WriteString("\n")
	}
	return template.HTML(b.String())
}

// localAssets returns the site-absolute href/src values of the head tags,
// which must exist in the public directory.
func localAssets(tags []config.HeadTag) []string {
	var out []string
	for _, t := range tags {
		for _, name := range []string{"href", "src"} {
			v := t.Attrs[name]
			if strings.HasPrefix(v, "/") && !strings.HasPrefix(v, "//") {
				out = append(out, v)
			}
		}
	}
	return out
}
