package markdown

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/go-spring-projects/website/internal/config"
)

// DarkScope is the selector that activates the dark palette.
const DarkScope = `[data-theme="dark"]`

// HighlightCSS returns the stylesheet for highlighted code blocks: the light
// style unscoped, followed by the dark style scoped under DarkScope.
func HighlightCSS(theme config.HighlightTheme) (string, error) {
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var light, dark bytes.Buffer
	if err := formatter.WriteCSS(&light, styles.Get(theme.Light)); err != nil {
		return "", fmt.Errorf("writing %s css: %w", theme.Light, err)
	}
	if err := formatter.WriteCSS(&dark, styles.Get(theme.Dark)); err != nil {
		return "", fmt.Errorf("writing %s css: %w", theme.Dark, err)
	}
	return light.String() + scopeCSS(dark.String(), DarkScope), nil
}

// scopeCSS prefixes every selector of a one-rule-per-line stylesheet.
func scopeCSS(css, scope string) string {
	var b strings.Builder
	for _, line := range strings.Split(css, "\n") {
		open := strings.Index(line, "{")
		if open < 0 {
			if line != "" {
				b.WriteString(line)
				b.WriteByte('\n')
			}
			continue
		}
		head, rule := line[:open], line[open:]
		comment := ""
		if end := strings.Index(head, "*/"); end >= 0 {
			comment, head = head[:end+2]+" ", head[end+2:]
		}
		selectors := strings.Split(head, ",")
		for i, s := range selectors {
			selectors[i] = scope + " " + strings.TrimSpace(s)
		}
		b.WriteString(comment)
		b.WriteString(strings.Join(selectors, ", "))
		b.WriteByte(' ')
		b.WriteString(rule)
		b.WriteByte('\n')
	}
	return b.String()
}
