package site

import (
	"encoding/json"
	"os"
)

// maxSearchContent caps the text stored per page in the search index.
const maxSearchContent = 2000

// SearchEntry represents a single searchable page in the documentation.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex builds the local search index from rendered pages.
func BuildSearchIndex(pages []*page) []SearchEntry {
	entries := make([]SearchEntry, 0, len(pages))
	for _, p := range pages {
		content := p.text
		if len(content) > maxSearchContent {
			content = truncateUTF8(content, maxSearchContent)
		}
		entries = append(entries, SearchEntry{
			Path:    p.Link,
			Title:   p.Title,
			Summary: p.Description,
			Content: content,
		})
	}
	return entries
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
