// Package markdown turns page sources into HTML fragments for the theme.
package markdown

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/go-spring-projects/website/internal/config"
)

// FrontMatter holds the per-page options read from a YAML header.
// Nil switches mean "use the site setting".
type FrontMatter struct {
	Title       string
	Description string
	EditLink    *bool
	LastUpdated *bool
	Sidebar     *bool
}

// Document is a converted page.
type Document struct {
	HTML  []byte
	Front FrontMatter
	// Heading is the text of the first level-1 heading, if any.
	Heading string
}

// Renderer converts markdown with the site's extensions registered once.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a Renderer for the given markdown options.
func New(cfg config.MarkdownConfig) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			meta.Meta,
			highlighting.NewHighlighting(
				highlighting.WithStyle(cfg.Theme.Light),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
			ImageAttributes(cfg.ImageAttrs),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Convert renders src to HTML and extracts its front matter.
func (r *Renderer) Convert(src []byte) (*Document, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	root := r.md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))
	if err := r.md.Renderer().Render(&buf, src, root); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	front, err := meta.TryGet(ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}
	return &Document{HTML: buf.Bytes(), Front: toFrontMatter(front), Heading: firstHeading(root, src)}, nil
}

// firstHeading returns the plain text of the first h1 in the document.
// Headings inside code blocks are not headings, so they never match.
func firstHeading(root ast.Node, src []byte) string {
	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = inlineText(h, src)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

func inlineText(n ast.Node, src []byte) string {
	var b bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(inlineText(c, src))
		}
	}
	return b.String()
}

func toFrontMatter(m map[string]interface{}) FrontMatter {
	var fm FrontMatter
	if s, ok := m["title"].(string); ok {
		fm.Title = s
	}
	if s, ok := m["description"].(string); ok {
		fm.Description = s
	}
	fm.EditLink = boolField(m, "editLink")
	fm.LastUpdated = boolField(m, "lastUpdated")
	fm.Sidebar = boolField(m, "sidebar")
	return fm
}

func boolField(m map[string]interface{}, key string) *bool {
	if b, ok := m[key].(bool); ok {
		return &b
	}
	return nil
}
