// Package site holds the portfolio's content: the static project, repository
// and blog records, markdown collections, and the sitemap and prerender
// manifests built from them.
package site

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ProjectType is how project screenshots are laid out
type ProjectType string

const (
	Responsive ProjectType = "responsive"
	Mobile     ProjectType = "mobile"
)

// Project is a showcased web project
type Project struct {
	ID               int         `yaml:"id" json:"id"`
	Title            string      `yaml:"title" json:"title"`
	Name             string      `yaml:"name" json:"name"`
	Description      string      `yaml:"description" json:"description"`
	URL              string      `yaml:"url" json:"url"`
	ImagesCount      int         `yaml:"imagesCount" json:"imagesCount"`
	Type             ProjectType `yaml:"type" json:"type"`
	HeightWidthRatio float64     `yaml:"heightWidthRatio" json:"heightWidthRatio"`
}

// GitHubRepo is a showcased open source repository
type GitHubRepo struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	URL         string `yaml:"url" json:"url"`
}

// LastMod is a route with its last modification date
type LastMod struct {
	Loc     string `yaml:"loc" json:"loc"`
	LastMod string `yaml:"lastmod,omitempty" json:"lastmod,omitempty"`
}

// Data is the site's static records
type Data struct {
	Projects []Project    `yaml:"projects,omitempty"`
	Repos    []GitHubRepo `yaml:"repos,omitempty"`
	Blogs    []LastMod    `yaml:"blogs,omitempty"`
}

// DefaultData returns the built-in records
func DefaultData() *Data {
	return &Data{
		Projects: []Project{
			{
				ID:    1,
				Title: "GeoBits",
				Name:  "geobits",
				Description: "GeoBITs is a custom-built web mapping and navigation platform developed exclusively for the " +
					"Bannari Amman Institute of Technology campus. Built without relying on any third-party map APIs, " +
					"it features an SVG map meticulously drawn using Illustrator, combined with a satellite layer " +
					"stitched from satellite images. The platform supports dynamic route rendering through SVG animations " +
					"and uses Dijkstra’s algorithm to compute the shortest paths. It provides detailed information " +
					"for every building, class, and lab, allows users to pin, share, and navigate to locations, " +
					"and offers real-time, indoor-style location tracking by mapping device latitude and longitude to the campus layout.",
				URL:              "https://geobits.onrender.com",
				ImagesCount:      5,
				Type:             Responsive,
				HeightWidthRatio: 0.63,
			},
			{
				ID:    2,
				Title: "Local Ledger",
				Name:  "local_ledger",
				Description: "Local Ledger is a minimal Progressive Web App (PWA) that helps you track expenses effortlessly. " +
					"It works completely offline, with features like filters for organizing transactions, " +
					"interactive graphs for visualizing spending, and import/export options for easy data management. " +
					"With a clean, simple interface, it offers a secure and hassle-free way to manage your finances on your mobile.",
				URL:              "https://local-ledger.onrender.com",
				ImagesCount:      7,
				Type:             Mobile,
				HeightWidthRatio: 2.35,
			},
			{
				ID:    3,
				Title: "Ruby on Wasm",
				Name:  "ruby_on_wasm",
				Description: "RubyOnWasm is a fully browser-based Ruby interpreter built with WebAssembly, " +
					"requiring no backend server. Powered by Ruby 3.2.0’s WASI support, it runs CRuby " +
					"directly in the browser and other WASM environments. The platform includes " +
					"syntax highlighting, code execution, copy support, keyboard shortcuts, and " +
					"native sharing via the Web Share API.",
				URL:              "https://rubyonwasm.onrender.com",
				ImagesCount:      3,
				Type:             Responsive,
				HeightWidthRatio: 0.63,
			},
		},
		Repos: []GitHubRepo{
			{
				ID:    1,
				Title: "Weaviate Record",
				Description: "Weaviate Record is an ORM for Weaviate vector database that follows " +
					"the same conventions as the ActiveRecord and brings the power of " +
					"Vector database and Retrieval augmented generation (RAG) to your " +
					"Ruby/Rails application.",
				URL: "https://github.com/ruby-ist/weaviate_record",
			},
			{
				ID:    2,
				Title: "Dijkstra Trace",
				Description: "Dijkstra trace is an ruby gem to find the shortest path between two " +
					"places in the graph using the Dijkstra algorithm. The user would " +
					"first need to create an object for the graph and can add edges of " +
					"that graph object. The edge name can be a number, character or " +
					"strings. After adding the edges, the shortest path between any two " +
					"edges can be easily calculated.",
				URL: "https://github.com/ruby-ist/dijkstra_trace",
			},
		},
		Blogs: []LastMod{
			{Loc: "/blogs/consequences_of_using_mixins_at_the_top_level", LastMod: "2026-01-07"},
		},
	}
}

// LoadData reads path and overrides the built-in records with every section
// it defines. A missing file yields the defaults.
func LoadData(path string) (*Data, error) {
	data := DefaultData()
	if path == "" {
		return data, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var override Data
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if override.Projects != nil {
		data.Projects = override.Projects
	}
	if override.Repos != nil {
		data.Repos = override.Repos
	}
	if override.Blogs != nil {
		data.Blogs = override.Blogs
	}

	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return data, nil
}

// Validate checks every record and returns all problems found
func (d *Data) Validate() error {
	var errs error

	ids := make(map[int]bool)
	for _, p := range d.Projects {
		if ids[p.ID] {
			errs = multierr.Append(errs, fmt.Errorf("project %d: duplicate id", p.ID))
		}
		ids[p.ID] = true
		if p.Type != Responsive && p.Type != Mobile {
			errs = multierr.Append(errs, fmt.Errorf("project %d: type %q must be responsive or mobile", p.ID, p.Type))
		}
		if p.ImagesCount < 0 {
			errs = multierr.Append(errs, fmt.Errorf("project %d: negative imagesCount", p.ID))
		}
	}

	ids = make(map[int]bool)
	for _, r := range d.Repos {
		if ids[r.ID] {
			errs = multierr.Append(errs, fmt.Errorf("repo %d: duplicate id", r.ID))
		}
		ids[r.ID] = true
	}

	for i, b := range d.Blogs {
		if b.Loc == "" {
			errs = multierr.Append(errs, fmt.Errorf("blog %d: loc is required", i))
		}
	}
	return errs
}

// BlogRoutes returns the route of every blog record
func (d *Data) BlogRoutes() []string {
	routes := make([]string, len(d.Blogs))
	for i, b := range d.Blogs {
		routes[i] = b.Loc
	}
	return routes
}
