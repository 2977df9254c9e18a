package site

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/ruby-ist/portfolio/cmd/folio/internal/config"
)

// ErrInvalidFrontmatter is returned for documents that do not satisfy the
// collection schema
var ErrInvalidFrontmatter = errors.New("invalid frontmatter")

var frontmatterDelim = []byte("---")

// Frontmatter is the schema of a page collection document
type Frontmatter struct {
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
}

// Item is one document of a collection
type Item struct {
	Collection string
	// Path is slash-separated and relative to the content directory
	Path string
	// Route is empty for data collections
	Route string
	Frontmatter
	Body    []byte
	ModTime time.Time
}

// LastMod returns the item date as a sitemap date, or "" when the date is
// not a recognizable calendar date
func (it Item) LastMod() string {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, it.Date); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return ""
}

// LoadCollection reads every document under dir matching the collection
// source glob. Documents failing the schema are reported together.
func LoadCollection(dir string, col config.CollectionConfig) ([]Item, error) {
	var items []Item
	var errs error

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchGlob(col.Source, rel) || !isDocument(col.Type, rel) {
			return nil
		}

		item, err := loadItem(p, rel, col)
		if err != nil {
			errs = multierr.Append(errs, err)
			return nil
		}
		items = append(items, item)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return natural.Less(items[i].Path, items[j].Path)
	})
	return items, errs
}

func isDocument(typ, rel string) bool {
	switch strings.ToLower(path.Ext(rel)) {
	case ".md":
		return true
	case ".yml", ".yaml":
		return typ == "data"
	}
	return false
}

func loadItem(file, rel string, col config.CollectionConfig) (Item, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return Item{}, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	info, err := os.Stat(file)
	if err != nil {
		return Item{}, err
	}

	item := Item{
		Collection: col.Name,
		Path:       rel,
		ModTime:    info.ModTime(),
	}

	if col.Type == "data" {
		item.Body = raw
		return item, nil
	}

	fm, body, err := splitFrontmatter(raw)
	if err != nil {
		return Item{}, fmt.Errorf("%s: %w", rel, err)
	}
	if err := yaml.Unmarshal(fm, &item.Frontmatter); err != nil {
		return Item{}, fmt.Errorf("%s: %w: %v", rel, ErrInvalidFrontmatter, err)
	}
	if err := item.Frontmatter.validate(); err != nil {
		return Item{}, fmt.Errorf("%s: %w", rel, err)
	}
	item.Body = body
	item.Route = Route(col.Prefix, rel)
	return item, nil
}

func (f Frontmatter) validate() error {
	if f.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidFrontmatter)
	}
	if f.Tags == nil {
		return fmt.Errorf("%w: tags is required", ErrInvalidFrontmatter)
	}
	return nil
}

// splitFrontmatter separates a leading "---" delimited YAML block from the
// markdown body
func splitFrontmatter(raw []byte) ([]byte, []byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	first, rest, _ := bytes.Cut(raw, []byte("\n"))
	if !bytes.Equal(bytes.TrimSpace(first), frontmatterDelim) {
		return nil, nil, fmt.Errorf("%w: missing frontmatter", ErrInvalidFrontmatter)
	}

	var fm []byte
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), frontmatterDelim) {
			return fm, rest, nil
		}
		fm = append(fm, line...)
		fm = append(fm, '\n')
	}
	return nil, nil, fmt.Errorf("%w: unterminated frontmatter", ErrInvalidFrontmatter)
}

// Route returns the page route for a document path relative to the content
// directory. Segments are slugified and a trailing index is dropped.
func Route(prefix, rel string) string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	var segments []string
	for _, seg := range strings.Split(rel, "/") {
		if s := slug.Make(seg); s != "" {
			segments = append(segments, s)
		}
	}
	if n := len(segments); n > 0 && segments[n-1] == "index" {
		segments = segments[:n-1]
	}

	return path.Join("/", prefix, strings.Join(segments, "/"))
}

// matchGlob matches slash-separated paths against the collection source.
// An empty pattern matches everything.
func matchGlob(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
