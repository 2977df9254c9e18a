package site

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapURL is a single sitemap entry
type SitemapURL struct {
	Loc     string
	LastMod string
}

// Sitemap collects routes and renders them as a sitemap document
type Sitemap struct {
	base *url.URL
	urls []SitemapURL
	seen map[string]int
}

// NewSitemap creates a sitemap whose relative routes resolve against siteURL
func NewSitemap(siteURL string) (*Sitemap, error) {
	base, err := url.Parse(siteURL)
	if err != nil || !base.IsAbs() {
		return nil, fmt.Errorf("site url %q must be absolute", siteURL)
	}
	return &Sitemap{base: base, seen: make(map[string]int)}, nil
}

// Add records loc. Repeated locations keep the first entry and only fill in a
// missing lastmod.
func (s *Sitemap) Add(loc, lastmod string) error {
	abs, err := s.resolve(loc)
	if err != nil {
		return err
	}
	if i, ok := s.seen[abs]; ok {
		if s.urls[i].LastMod == "" {
			s.urls[i].LastMod = lastmod
		}
		return nil
	}
	s.seen[abs] = len(s.urls)
	s.urls = append(s.urls, SitemapURL{Loc: abs, LastMod: lastmod})
	return nil
}

// URLs returns the entries with absolute locations in natural order
func (s *Sitemap) URLs() []SitemapURL {
	urls := append([]SitemapURL(nil), s.urls...)
	sort.SliceStable(urls, func(i, j int) bool {
		return natural.Less(urls[i].Loc, urls[j].Loc)
	})
	return urls
}

// Len returns the number of distinct entries
func (s *Sitemap) Len() int {
	return len(s.urls)
}

// Document renders the urlset
func (s *Sitemap) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNS)
	for _, u := range s.URLs() {
		el := urlset.CreateElement("url")
		el.CreateElement("loc").SetText(u.Loc)
		if u.LastMod != "" {
			el.CreateElement("lastmod").SetText(u.LastMod)
		}
	}
	doc.Indent(2)
	return doc
}

// WriteFile writes the sitemap to path, creating parent directories
func (s *Sitemap) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create sitemap directory: %w", err)
	}
	if err := s.Document().WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return nil
}

func (s *Sitemap) resolve(loc string) (string, error) {
	ref, err := url.Parse(loc)
	if err != nil {
		return "", fmt.Errorf("sitemap loc %q: %w", loc, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	return s.base.ResolveReference(ref).String(), nil
}
