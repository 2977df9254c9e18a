// Package scan finds utility class names in the site's source files.
// Markup files (.html, .vue, .md) are tokenized: class attributes are read,
// valueless attributes are taken as attributify utilities and script bodies
// fall back to string literals. Any other configured extension is scanned for
// quoted string literals split on whitespace.
package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/ruby-ist/portfolio/internal/cache"
	"github.com/ruby-ist/portfolio/pkg/styling"
)

// markupExtensions are tokenized as HTML
var markupExtensions = map[string]bool{
	".html": true,
	".vue":  true,
	".md":   true,
}

// booleanAttributes are valueless HTML and SFC attributes that are never
// utilities
var booleanAttributes = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"download":        true,
	"hidden":          true,
	"inert":           true,
	"ismap":           true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"nomodule":        true,
	"novalidate":      true,
	"open":            true,
	"playsinline":     true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"scoped":          true,
	"selected":        true,
	"setup":           true,
}

// extractorVersion is part of every cache hash so that results cached by an
// older extractor are rescanned
const extractorVersion = "2"

// skipDirs are never descended into
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

var (
	literalRegex = regexp.MustCompile("'([^']*)'|\"([^\"]*)\"|`([^`]*)`")
	tokenRegex   = regexp.MustCompile(`^!?-?[A-Za-z][A-Za-z0-9:_./%#!-]*$`)
)

// Config holds scanner configuration
type Config struct {
	// Root is the project root; file keys are relative to it
	Root string

	// Sources are directories (relative to Root) to walk
	Sources []string

	// Extensions are the file extensions scanned, with leading dot
	Extensions []string

	// Exclude lists directories (relative to Root) to skip, such as the output dir
	Exclude []string

	// Cache stores per-file results between runs; nil disables caching
	Cache *cache.Cache

	Logger *zap.Logger
}

// Result is the outcome of a scan
type Result struct {
	// Files maps a slash-separated path relative to Root to its tokens
	Files map[string][]string

	// Scanned counts files read and tokenized
	Scanned int

	// Cached counts files served from the cache
	Cached int
}

// Scanner walks source directories and extracts class tokens
type Scanner struct {
	config     Config
	extensions map[string]bool
	exclude    map[string]bool
	sources    []string
	logger     *zap.Logger
}

// New creates a scanner
func New(config Config) *Scanner {
	if config.Root == "" {
		config.Root = "."
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scanner{
		config:     config,
		extensions: make(map[string]bool),
		exclude:    make(map[string]bool),
		logger:     logger.Named("scan"),
	}
	for _, ext := range config.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extensions[strings.ToLower(ext)] = true
	}
	for _, dir := range config.Exclude {
		s.exclude[filepath.Clean(filepath.Join(config.Root, dir))] = true
	}
	for _, dir := range config.Sources {
		s.sources = append(s.sources, filepath.Clean(filepath.Join(config.Root, dir)))
	}
	return s
}

// Accepts reports whether path has a scanned extension, lies inside a
// source directory and outside skipped directories.
func (s *Scanner) Accepts(path string) bool {
	if !s.extensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	path = filepath.Clean(path)
	if len(s.sources) > 0 && !slices.ContainsFunc(s.sources, func(src string) bool {
		rel, err := filepath.Rel(src, path)
		return err == nil && !strings.HasPrefix(rel, "..")
	}) {
		return false
	}
	dir := filepath.Dir(path)
	for {
		if s.exclude[dir] || s.skipDir(filepath.Base(dir)) {
			return false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return true
		}
		dir = parent
	}
}

// Key returns the result key for a file path
func (s *Scanner) Key(path string) string {
	rel, err := filepath.Rel(s.config.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Scan walks every source directory and extracts tokens from matching files
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	var files []string
	for _, src := range s.config.Sources {
		root := filepath.Join(s.config.Root, src)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && (s.skipDir(d.Name()) || s.exclude[filepath.Clean(path)]) {
					return filepath.SkipDir
				}
				return nil
			}
			if s.extensions[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("Source directory missing", zap.String("dir", root))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	result := &Result{Files: make(map[string][]string, len(files))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tokens, cached, err := s.scanFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			result.Files[s.Key(path)] = tokens
			if cached {
				result.Cached++
			} else {
				result.Scanned++
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("Scan complete",
		zap.Int("files", len(result.Files)),
		zap.Int("scanned", result.Scanned),
		zap.Int("cached", result.Cached))
	return result, nil
}

// ScanFile extracts tokens from a single file
func (s *Scanner) ScanFile(path string) ([]string, error) {
	tokens, _, err := s.scanFile(path)
	return tokens, err
}

// Forget drops the cached result for a removed file
func (s *Scanner) Forget(path string) {
	if s.config.Cache == nil {
		return
	}
	if err := s.config.Cache.Delete(s.Key(path)); err != nil {
		s.logger.Warn("Failed to drop cache entry", zap.String("file", path), zap.Error(err))
	}
}

func (s *Scanner) scanFile(path string) ([]string, bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	key := s.Key(path)
	hash := extractorVersion + ":" + cache.Hash(src)
	if s.config.Cache != nil {
		if tokens, ok := s.config.Cache.Get(key, hash); ok {
			return tokens, true, nil
		}
	}

	tokens := Extract(src, filepath.Ext(path))

	if s.config.Cache != nil {
		if err := s.config.Cache.Put(key, hash, tokens); err != nil {
			s.logger.Warn("Failed to cache scan result", zap.String("file", key), zap.Error(err))
		}
	}
	return tokens, false, nil
}

func (s *Scanner) skipDir(name string) bool {
	return skipDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// Extract returns the sorted, de-duplicated class tokens found in src.
// ext selects markup tokenizing or the string literal fallback.
func Extract(src []byte, ext string) []string {
	seen := make(map[string]bool)
	add := func(value string) {
		for _, tok := range strings.Fields(value) {
			if tokenRegex.MatchString(tok) {
				seen[tok] = true
			}
		}
	}

	addAttr := func(name string) {
		seen[styling.AttributeToken(name)] = true
	}

	if markupExtensions[strings.ToLower(ext)] {
		extractMarkup(src, add, addAttr)
	} else {
		extractLiterals(string(src), add)
	}

	tokens := make([]string, 0, len(seen))
	for tok := range seen {
		tokens = append(tokens, tok)
	}
	slices.Sort(tokens)
	return tokens
}

func extractMarkup(src []byte, add func(string), addAttr func(string)) {
	z := html.NewTokenizer(bytes.NewReader(src))
	inScript := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			tag, hasAttr := z.TagName()
			inScript = string(tag) == "script"
			for hasAttr {
				var name, value []byte
				name, value, hasAttr = z.TagAttr()
				switch key := string(name); key {
				case "class":
					add(string(value))
				case ":class", "v-bind:class":
					extractLiterals(string(value), add)
				default:
					if len(value) == 0 && isAttributeUtility(key) {
						addAttr(key)
					}
				}
			}
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if inScript {
				extractLiterals(string(z.Text()), add)
			}
		}
	}
}

// isAttributeUtility reports whether a valueless attribute may be a utility
// written in attributify form
func isAttributeUtility(name string) bool {
	if booleanAttributes[name] || !tokenRegex.MatchString(name) {
		return false
	}
	for _, p := range []string{"v-", "data-", "aria-"} {
		if strings.HasPrefix(name, p) {
			return false
		}
	}
	return true
}

func extractLiterals(src string, add func(string)) {
	for _, m := range literalRegex.FindAllStringSubmatch(src, -1) {
		for _, group := range m[1:] {
			if group != "" {
				add(group)
			}
		}
	}
}
