package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
)

// Prerender lists the routes a static host renders ahead of time
type Prerender struct {
	CrawlLinks bool     `json:"crawlLinks"`
	Routes     []string `json:"routes"`
}

// NewPrerender merges routes, dropping duplicates and empty entries
func NewPrerender(crawlLinks bool, routes ...[]string) *Prerender {
	p := &Prerender{CrawlLinks: crawlLinks, Routes: []string{}}
	seen := make(map[string]bool)
	for _, group := range routes {
		for _, r := range group {
			if r == "" || seen[r] {
				continue
			}
			seen[r] = true
			p.Routes = append(p.Routes, r)
		}
	}
	sort.Sort(natural.StringSlice(p.Routes))
	return p
}

// WriteFile writes the manifest as indented JSON
func (p *Prerender) WriteFile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create prerender directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
