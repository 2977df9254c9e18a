package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/ruby-ist/portfolio/pkg/styling"
)

// FileName is the project configuration file looked up in the project root
const FileName = "folio.yaml"

// Config represents the folio.yaml configuration
type Config struct {
	// Site identity, used for absolute sitemap URLs
	Site SiteConfig `yaml:"site"`

	// Content collections
	Content *ContentConfig `yaml:"content,omitempty"`

	// Extra sitemap entries
	Sitemap *SitemapConfig `yaml:"sitemap,omitempty"`

	// Routes rendered at build time
	Prerender *PrerenderConfig `yaml:"prerender,omitempty"`

	// Utility CSS generation
	Styling *StylingConfig `yaml:"styling,omitempty"`

	// Development server configuration
	Dev *DevConfig `yaml:"dev,omitempty"`

	// Scan cache configuration
	Cache *CacheConfig `yaml:"cache,omitempty"`

	// Logging configuration
	Log *LogConfig `yaml:"log,omitempty"`
}

// SiteConfig describes the published site
type SiteConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// ContentConfig contains content collection configuration
type ContentConfig struct {
	// Directory holding markdown content
	Dir string `yaml:"dir,omitempty"`

	// Optional YAML file overriding the built-in project/repo/blog records
	DataFile string `yaml:"data,omitempty"`

	Collections []CollectionConfig `yaml:"collections,omitempty"`
}

// CollectionConfig defines one content collection
type CollectionConfig struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Source string `yaml:"source"`
	// Route prefix for items of a page collection
	Prefix string `yaml:"prefix,omitempty"`
}

// SitemapURL is an explicit sitemap entry
type SitemapURL struct {
	Loc     string `yaml:"loc"`
	LastMod string `yaml:"lastmod,omitempty"`
}

// SitemapConfig contains sitemap configuration
type SitemapConfig struct {
	Output string       `yaml:"output,omitempty"`
	URLs   []SitemapURL `yaml:"urls,omitempty"`
}

// PrerenderConfig mirrors the framework's prerender settings
type PrerenderConfig struct {
	CrawlLinks bool     `yaml:"crawlLinks"`
	Routes     []string `yaml:"routes,omitempty"`
	Output     string   `yaml:"output,omitempty"`
}

// StylingConfig contains utility CSS configuration
type StylingConfig struct {
	// Directories scanned for class names
	Sources []string `yaml:"sources,omitempty"`

	// File extensions scanned
	Extensions []string `yaml:"extensions,omitempty"`

	// Path of the generated stylesheet, relative to the output directory
	Output string `yaml:"output,omitempty"`

	// Stylesheets defining the theme's custom properties
	ThemeFiles []string `yaml:"themeFiles,omitempty"`

	// Match fixed/absolute/relative anywhere in a class name
	LegacyPosition bool `yaml:"legacyPosition,omitempty"`

	Fonts *styling.WebFonts `yaml:"fonts,omitempty"`

	Breakpoints []styling.Breakpoint `yaml:"breakpoints,omitempty"`
}

// DevConfig contains development server configuration
type DevConfig struct {
	Port int    `yaml:"port,omitempty"`
	Host string `yaml:"host,omitempty"`
}

// CacheConfig contains scan cache configuration
type CacheConfig struct {
	Path   string        `yaml:"path,omitempty"`
	MaxAge time.Duration `yaml:"maxAge,omitempty"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	// none, normal or debug
	Level string `yaml:"level,omitempty"`
}

// Load loads configuration from folio.yaml in projectPath
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, FileName)

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	ApplyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", configPath, err)
	}
	return &config, nil
}

// Save saves configuration to folio.yaml in projectPath
func Save(config *Config, projectPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, FileName), data, 0644)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	fonts := styling.DefaultWebFonts()
	return &Config{
		Site: SiteConfig{
			URL:  "https://srira.me",
			Name: "Srira's Portfolio",
		},
		Content: &ContentConfig{
			Dir: "content",
			Collections: []CollectionConfig{
				{Name: "blogs", Type: "page", Source: "**/*"},
			},
		},
		Sitemap: &SitemapConfig{
			Output: "sitemap.xml",
			URLs: []SitemapURL{
				{Loc: "/origami", LastMod: "2025-11-29"},
			},
		},
		Prerender: &PrerenderConfig{
			CrawlLinks: true,
			Output:     "prerender.json",
		},
		Styling: &StylingConfig{
			Sources:     []string{"app"},
			Extensions:  []string{".vue", ".html", ".md"},
			Output:      "uno.css",
			ThemeFiles:  []string{"app/assets/css/theme.css"},
			Fonts:       &fonts,
			Breakpoints: styling.DefaultBreakpoints(),
		},
		Dev: &DevConfig{
			Port: 3000,
			Host: "localhost",
		},
		Cache: &CacheConfig{
			Path:   ".folio/cache.db",
			MaxAge: 7 * 24 * time.Hour,
		},
		Log: &LogConfig{
			Level: "normal",
		},
	}
}

// ApplyDefaults fills missing sections and fields with default values
func ApplyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Site.URL == "" {
		config.Site.URL = defaults.Site.URL
	}
	if config.Site.Name == "" {
		config.Site.Name = defaults.Site.Name
	}

	if config.Content == nil {
		config.Content = defaults.Content
	} else {
		if config.Content.Dir == "" {
			config.Content.Dir = defaults.Content.Dir
		}
		if config.Content.Collections == nil {
			config.Content.Collections = defaults.Content.Collections
		}
	}

	if config.Sitemap == nil {
		config.Sitemap = defaults.Sitemap
	} else if config.Sitemap.Output == "" {
		config.Sitemap.Output = defaults.Sitemap.Output
	}

	if config.Prerender == nil {
		config.Prerender = defaults.Prerender
	} else if config.Prerender.Output == "" {
		config.Prerender.Output = defaults.Prerender.Output
	}

	if config.Styling == nil {
		config.Styling = defaults.Styling
	} else {
		s := config.Styling
		if len(s.Sources) == 0 {
			s.Sources = defaults.Styling.Sources
		}
		if len(s.Extensions) == 0 {
			s.Extensions = defaults.Styling.Extensions
		}
		if s.Output == "" {
			s.Output = defaults.Styling.Output
		}
		if s.ThemeFiles == nil {
			s.ThemeFiles = defaults.Styling.ThemeFiles
		}
		if s.Fonts == nil {
			s.Fonts = defaults.Styling.Fonts
		}
		if len(s.Breakpoints) == 0 {
			s.Breakpoints = defaults.Styling.Breakpoints
		}
	}

	if config.Dev == nil {
		config.Dev = defaults.Dev
	} else {
		if config.Dev.Port == 0 {
			config.Dev.Port = defaults.Dev.Port
		}
		if config.Dev.Host == "" {
			config.Dev.Host = defaults.Dev.Host
		}
	}

	if config.Cache == nil {
		config.Cache = defaults.Cache
	} else {
		if config.Cache.Path == "" {
			config.Cache.Path = defaults.Cache.Path
		}
		if config.Cache.MaxAge == 0 {
			config.Cache.MaxAge = defaults.Cache.MaxAge
		}
	}

	if config.Log == nil {
		config.Log = defaults.Log
	} else if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.Site.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("site.url %q must be an absolute URL", c.Site.URL)
	}

	if c.Styling != nil {
		for _, bp := range c.Styling.Breakpoints {
			if bp.Name == "" {
				return errors.New("styling.breakpoints: name is required")
			}
			if _, err := bp.Pixels(); err != nil {
				return fmt.Errorf("styling.breakpoints: %w", err)
			}
		}
	}

	if c.Dev != nil && (c.Dev.Port < 1 || c.Dev.Port > 65535) {
		return fmt.Errorf("dev.port %d out of range", c.Dev.Port)
	}

	if c.Log != nil {
		switch c.Log.Level {
		case "none", "normal", "debug":
		default:
			return fmt.Errorf("log.level %q must be one of none, normal, debug", c.Log.Level)
		}
	}

	if c.Content != nil {
		for _, col := range c.Content.Collections {
			if col.Name == "" {
				return errors.New("content.collections: name is required")
			}
			if col.Type != "page" && col.Type != "data" {
				return fmt.Errorf("content.collections[%s]: type %q must be page or data", col.Name, col.Type)
			}
			if col.Source != "" && !doublestar.ValidatePattern(col.Source) {
				return fmt.Errorf("content.collections[%s]: invalid source glob %q", col.Name, col.Source)
			}
		}
	}
	return nil
}

// Breakpoints returns the configured responsive breakpoints
func (c *Config) Breakpoints() []styling.Breakpoint {
	if c.Styling != nil && len(c.Styling.Breakpoints) > 0 {
		return c.Styling.Breakpoints
	}
	return styling.DefaultBreakpoints()
}
