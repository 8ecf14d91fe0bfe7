package site

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/html"
)

// ErrDeadLinks is wrapped by the build error when internal links are broken.
var ErrDeadLinks = errors.New("dead links found")

// ErrMissingAssets is wrapped by the build error when a page embeds a local
// image that exists neither in the public directory nor beside the page.
var ErrMissingAssets = errors.New("missing page assets")

// scanResult is what the generator needs from a rendered page body.
type scanResult struct {
	Links  []string // href values of <a> elements, in document order
	Images []string // src values of <img> and <source> elements
	Text   string   // visible text, whitespace collapsed
}

// scanHTML tokenizes a rendered fragment once, collecting anchors, images and text.
func scanHTML(fragment string) (scanResult, error) {
	var res scanResult
	var text strings.Builder
	skip := 0

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return res, err
			}
			res.Text = strings.Join(strings.Fields(text.String()), " ")
			return res, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "a":
				for _, a := range tok.Attr {
					if a.Key == "href" {
						res.Links = append(res.Links, a.Val)
					}
				}
			case "img", "source":
				for _, a := range tok.Attr {
					if a.Key == "src" {
						res.Images = append(res.Images, a.Val)
					}
				}
			case "script", "style":
				skip++
			}
			if tok.Data == "p" || tok.Data == "li" || strings.HasPrefix(tok.Data, "h") {
				text.WriteByte(' ')
			}
		case html.EndTagToken:
			tok := z.Token()
			if (tok.Data == "script" || tok.Data == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				text.Write(z.Text())
				text.WriteByte(' ')
			}
		}
	}
}

// deadLink is one unresolved internal link.
type deadLink struct {
	Page string // source path of the page containing the link
	Href string
}

// findDeadLinks checks every internal link against the known targets.
func findDeadLinks(pages []*page, known map[string]bool) []deadLink {
	var dead []deadLink
	for _, p := range pages {
		for _, href := range p.links {
			target, internal := resolveLink(p.Route, href)
			if !internal || known[target] {
				continue
			}
			dead = append(dead, deadLink{Page: p.RelPath, Href: href})
		}
	}
	sort.SliceStable(dead, func(i, j int) bool { return dead[i].Page < dead[j].Page })
	return dead
}

// deadLinksError folds the dead links into one error wrapping ErrDeadLinks.
func deadLinksError(dead []deadLink) error {
	var errs *multierror.Error
	for _, d := range dead {
		errs = multierror.Append(errs, fmt.Errorf("%s: %s", d.Page, d.Href))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeadLinks, err)
	}
	return nil
}

// copyPageAssets resolves every local image a page embeds. Site-absolute
// images must be in the public directory. Relative ones may also sit beside
// the source file, in which case they are copied next to the rendered page.
// It returns the routes of the copied files.
func (g *SiteGenerator) copyPageAssets(pages []*page) ([]string, error) {
	public := g.Config.PublicDir()
	copied := make(map[string]bool)
	var routes []string
	var errs *multierror.Error
	for _, p := range pages {
		for _, src := range p.images {
			target, local := resolveLink(p.Route, src)
			if !local || copied[target] {
				continue
			}
			rel := filepath.FromSlash(strings.TrimPrefix(target, "/"))
			if fileExists(filepath.Join(public, rel)) {
				continue
			}
			from := filepath.Join(g.Config.SrcDir, rel)
			if strings.HasPrefix(src, "/") || !fileExists(from) {
				errs = multierror.Append(errs, fmt.Errorf("%s: %s", p.RelPath, src))
				continue
			}
			to := filepath.Join(g.OutputDir, rel)
			if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
				return nil, err
			}
			if err := copyFile(from, to); err != nil {
				return nil, fmt.Errorf("copying %s: %w", src, err)
			}
			copied[target] = true
			routes = append(routes, target)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingAssets, err)
	}
	return routes, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
