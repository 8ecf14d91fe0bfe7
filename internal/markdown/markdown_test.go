package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-spring-projects/website/internal/config"
)

func TestConvertAddsGalleryAttribute(t *testing.T) {
	r := New(config.DefaultConfig().Markdown)

	doc, err := r.Convert([]byte("# Shots\n\n![first](/a.png)\n\ntext ![second](/b.png)\n"))
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.Equal(t, 2, strings.Count(html, `data-fancybox="gallery"`), html)
	assert.Contains(t, html, `<h1 id="shots">Shots</h1>`)
}

func TestConvertNoImageAttrs(t *testing.T) {
	r := New(config.MarkdownConfig{Theme: config.HighlightTheme{Light: "github", Dark: "dracula"}})

	doc, err := r.Convert([]byte("![x](/x.png)"))
	require.NoError(t, err)
	assert.NotContains(t, string(doc.HTML), "data-fancybox")
}

func TestConvertHighlightsWithClasses(t *testing.T) {
	r := New(config.DefaultConfig().Markdown)

	doc, err := r.Convert([]byte("```go\npackage main\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, string(doc.HTML), `class="chroma"`)
}

func TestConvertHeading(t *testing.T) {
	r := New(config.DefaultConfig().Markdown)

	tests := []struct {
		src, want string
	}{
		{"# Go *Spring* Docs\n\n# Second\n", "Go Spring Docs"},
		{"```sh\n# not a title\n```\n\n## Sub\n", ""},
		{"Setext Title\n============\n", "Setext Title"},
		{"---\ntitle: Front\n---\n# Body\n", "Body"},
	}
	for _, tt := range tests {
		doc, err := r.Convert([]byte(tt.src))
		require.NoError(t, err)
		assert.Equal(t, tt.want, doc.Heading, tt.src)
	}
}

func TestConvertFrontMatter(t *testing.T) {
	r := New(config.DefaultConfig().Markdown)

	src := "---\ntitle: Custom\ndescription: About it\neditLink: false\nsidebar: false\n---\n\n# Heading\n"
	doc, err := r.Convert([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "Custom", doc.Front.Title)
	assert.Equal(t, "About it", doc.Front.Description)
	require.NotNil(t, doc.Front.EditLink)
	assert.False(t, *doc.Front.EditLink)
	require.NotNil(t, doc.Front.Sidebar)
	assert.False(t, *doc.Front.Sidebar)
	assert.Nil(t, doc.Front.LastUpdated)
	assert.NotContains(t, string(doc.HTML), "title: Custom")
}

func TestHighlightCSS(t *testing.T) {
	css, err := HighlightCSS(config.HighlightTheme{Light: "github", Dark: "dracula"})
	require.NoError(t, err)

	assert.Contains(t, css, ".chroma")
	assert.Contains(t, css, DarkScope+" .chroma")
}

func TestScopeCSS(t *testing.T) {
	in := "/* Keyword */ .chroma .k, .chroma .kd { color: #fff }\n.bg { color: #000 }\n"
	got := scopeCSS(in, ".dark")
	want := "/* Keyword */ .dark .chroma .k, .dark .chroma .kd { color: #fff }\n.dark .bg { color: #000 }\n"
	assert.Equal(t, want, got)
}
