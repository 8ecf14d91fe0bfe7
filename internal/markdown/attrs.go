package markdown

import (
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// imageAttrs is an AST transformer that sets a fixed attribute set on every
// image node of a document.
type imageAttrs struct {
	names  []string
	values map[string]string
}

// ImageAttributes returns an extension that attaches attrs to every image,
// e.g. {"data-fancybox": "gallery"} to group images into one lightbox gallery.
func ImageAttributes(attrs map[string]string) goldmark.Extender {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return &imageAttrs{names: names, values: attrs}
}

// Extend implements goldmark.Extender.
func (e *imageAttrs) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(e, 500),
	))
}

// Transform implements parser.ASTTransformer.
func (e *imageAttrs) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	if len(e.names) == 0 {
		return
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindImage {
			return ast.WalkContinue, nil
		}
		for _, name := range e.names {
			n.SetAttributeString(name, []byte(e.values[name]))
		}
		return ast.WalkSkipChildren, nil
	})
}
