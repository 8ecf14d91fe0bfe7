// Package sitemap writes sitemap.xml for the generated pages.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Item is one page candidate for the sitemap. URL is the site-relative route.
type Item struct {
	URL     string
	LastMod time.Time
}

// Filter decides whether an item is kept.
type Filter func(Item) bool

// ExcludeContaining drops every item whose URL contains any of substrs.
func ExcludeContaining(substrs ...string) Filter {
	return func(it Item) bool {
		for _, s := range substrs {
			if strings.Contains(it.URL, s) {
				return false
			}
		}
		return true
	}
}

// Apply returns the items accepted by every filter, preserving order.
func Apply(items []Item, filters ...Filter) []Item {
	out := make([]Item, 0, len(items))
next:
	for _, it := range items {
		for _, f := range filters {
			if !f(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

type urlset struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Write encodes items as a sitemap rooted at hostname.
func Write(w io.Writer, hostname string, items []Item) error {
	base, err := url.Parse(hostname)
	if err != nil {
		return fmt.Errorf("parsing hostname %q: %w", hostname, err)
	}

	set := urlset{Xmlns: xmlns, URLs: make([]urlEntry, 0, len(items))}
	for _, it := range items {
		ref, err := url.Parse(it.URL)
		if err != nil {
			return fmt.Errorf("parsing item url %q: %w", it.URL, err)
		}
		e := urlEntry{Loc: base.ResolveReference(ref).String()}
		if !it.LastMod.IsZero() {
			e.LastMod = it.LastMod.UTC().Format(time.RFC3339)
		}
		set.URLs = append(set.URLs, e)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encoding sitemap: %w", err)
	}
	return enc.Flush()
}
