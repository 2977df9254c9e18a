package site

import (
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ruby-ist/portfolio/cmd/folio/internal/config"
)

// DataFileName is the default records override inside the content directory
const DataFileName = "data.yaml"

// Site is the loaded content of a project
type Site struct {
	Data  *Data
	Items []Item
}

// Load reads the records override and every configured collection under root
func Load(root string, cfg *config.Config, log *zap.Logger) (*Site, error) {
	if log == nil {
		log = zap.NewNop()
	}
	content := cfg.Content
	if content == nil {
		content = config.DefaultConfig().Content
	}
	dir := filepath.Join(root, content.Dir)

	dataFile := content.DataFile
	if dataFile == "" {
		dataFile = filepath.Join(content.Dir, DataFileName)
	}
	data, err := LoadData(filepath.Join(root, dataFile))
	if err != nil {
		return nil, err
	}

	s := &Site{Data: data}
	var errs error
	for _, col := range content.Collections {
		items, err := LoadCollection(dir, col)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("collection %s: %w", col.Name, err))
		}
		log.Debug("Loaded collection", zap.String("collection", col.Name), zap.Int("items", len(items)))
		s.Items = append(s.Items, items...)
	}
	if errs != nil {
		return nil, errs
	}
	return s, nil
}

// Routes returns the routes of every page item
func (s *Site) Routes() []string {
	var routes []string
	for _, it := range s.Items {
		if it.Route != "" {
			routes = append(routes, it.Route)
		}
	}
	return routes
}

// Sitemap builds the sitemap from configured entries, blog records and
// collection pages
func (s *Site) Sitemap(cfg *config.Config) (*Sitemap, error) {
	sm, err := NewSitemap(cfg.Site.URL)
	if err != nil {
		return nil, err
	}

	var errs error
	if cfg.Sitemap != nil {
		for _, u := range cfg.Sitemap.URLs {
			errs = multierr.Append(errs, sm.Add(u.Loc, u.LastMod))
		}
	}
	for _, b := range s.Data.Blogs {
		errs = multierr.Append(errs, sm.Add(b.Loc, b.LastMod))
	}
	for _, it := range s.Items {
		if it.Route != "" {
			errs = multierr.Append(errs, sm.Add(it.Route, it.LastMod()))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return sm, nil
}

// Prerender builds the prerender manifest
func (s *Site) Prerender(cfg *config.Config) *Prerender {
	crawl := true
	var configured []string
	if cfg.Prerender != nil {
		crawl = cfg.Prerender.CrawlLinks
		configured = cfg.Prerender.Routes
	}
	return NewPrerender(crawl, configured, s.Data.BlogRoutes(), s.Routes())
}
