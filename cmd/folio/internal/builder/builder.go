// Package builder runs the folio build: it scans sources for class names,
// generates the utility stylesheet, checks it against the theme and writes the
// sitemap and prerender manifests.
package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ruby-ist/portfolio/cmd/folio/internal/config"
	"github.com/ruby-ist/portfolio/cmd/folio/internal/scan"
	"github.com/ruby-ist/portfolio/cmd/folio/internal/site"
	"github.com/ruby-ist/portfolio/cmd/folio/internal/theme"
	"github.com/ruby-ist/portfolio/internal/cache"
	"github.com/ruby-ist/portfolio/pkg/styling"
)

// Options configures a Builder
type Options struct {
	// Root is the project directory holding folio.yaml
	Root string

	// Output is the build directory, relative to Root unless absolute
	Output string

	Config *config.Config

	// Cache is optional
	Cache *cache.Cache

	Logger *zap.Logger
}

// Report summarizes a build
type Report struct {
	Files     int
	Scanned   int
	Cached    int
	Utilities int
	Warnings  []theme.Warning
	Sitemap   int
	Routes    int
	Duration  time.Duration
}

// Builder owns the state reused between incremental rebuilds
type Builder struct {
	root   string
	output string
	cfg    *config.Config

	scanner   *scan.Scanner
	generator *styling.Generator
	registry  *styling.Registry
	theme     *theme.Theme

	// per source file errors from the last generation
	failures map[string]error

	mu  sync.Mutex
	log *zap.Logger
}

// New creates a builder for the project described by opts
func New(opts Options) (*Builder, error) {
	if opts.Config == nil {
		return nil, errors.New("builder: config is required")
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Output == "" {
		opts.Output = "dist"
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	output := opts.Output
	if !filepath.IsAbs(output) {
		output = filepath.Join(opts.Root, output)
	}

	cfg := opts.Config
	config.ApplyDefaults(cfg)
	gen, err := NewGenerator(cfg, log)
	if err != nil {
		return nil, err
	}
	b := &Builder{
		root:      opts.Root,
		output:    output,
		cfg:       cfg,
		generator: gen,
		registry:  styling.NewRegistry(gen.Preflights()...),
		theme:     theme.New(),
		failures:  make(map[string]error),
		log:       log.Named("build"),
	}

	var exclude []string
	if rel, err := filepath.Rel(opts.Root, output); err == nil && !strings.HasPrefix(rel, "..") {
		exclude = append(exclude, rel)
	}
	b.scanner = scan.New(scan.Config{
		Root:       opts.Root,
		Sources:    cfg.Styling.Sources,
		Extensions: cfg.Styling.Extensions,
		Exclude:    exclude,
		Cache:      opts.Cache,
		Logger:     log,
	})
	return b, nil
}

// NewGenerator builds the utility generator configured by cfg: the default
// rule table with web font utilities, strict and breakpoint variants and the
// font import preflight.
func NewGenerator(cfg *config.Config, log *zap.Logger) (*styling.Generator, error) {
	var tableOpts []styling.Option
	var genOpts []styling.GeneratorOption

	if cfg.Styling != nil && cfg.Styling.LegacyPosition {
		tableOpts = append(tableOpts, styling.WithLegacyPosition())
	}
	if cfg.Styling != nil && cfg.Styling.Fonts != nil {
		tableOpts = append(tableOpts, styling.WithGroups(cfg.Styling.Fonts.Group()))
		genOpts = append(genOpts, styling.WithPreflight(cfg.Styling.Fonts.Import()))
	}
	breakpoints, err := styling.BreakpointVariant(cfg.Breakpoints())
	if err != nil {
		return nil, err
	}
	genOpts = append(genOpts,
		styling.WithVariants(styling.StrictVariant(), breakpoints),
		styling.WithLogger(log),
	)
	return styling.NewGenerator(styling.DefaultTable(tableOpts...), genOpts...), nil
}

// Generator returns the generator the builder resolves class names with
func (b *Builder) Generator() *styling.Generator {
	return b.generator
}

// OutputDir returns the resolved output directory
func (b *Builder) OutputDir() string {
	return b.output
}

// Scanner returns the source scanner
func (b *Builder) Scanner() *scan.Scanner {
	return b.scanner
}

// Build runs a full build. Class names that fail to resolve fail the build
// and nothing is written.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	result, err := b.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	b.registry.Reset()
	b.failures = make(map[string]error)
	for file, tokens := range result.Files {
		b.generate(file, tokens)
	}

	report := &Report{
		Files:   len(result.Files),
		Scanned: result.Scanned,
		Cached:  result.Cached,
	}
	if err := b.finish(report, true); err != nil {
		return nil, err
	}
	report.Duration = time.Since(start)

	b.log.Info("Build complete",
		zap.Int("files", report.Files),
		zap.Int("cached", report.Cached),
		zap.Int("utilities", report.Utilities),
		zap.Int("sitemap", report.Sitemap),
		zap.Duration("took", report.Duration))
	return report, nil
}

// Update rebuilds after the given files changed. Deleted files drop their
// utilities; theme and content changes refresh the theme check and manifests.
func (b *Builder) Update(ctx context.Context, paths []string) (*Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	report := &Report{}
	siteChanged := false

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if b.isContent(path) {
			siteChanged = true
		}
		if !b.scanner.Accepts(path) {
			continue
		}

		key := b.scanner.Key(path)
		tokens, err := b.scanner.ScanFile(path)
		if errors.Is(err, os.ErrNotExist) {
			b.registry.Remove(key)
			delete(b.failures, key)
			b.scanner.Forget(path)
			b.log.Debug("Source removed", zap.String("file", key))
			continue
		}
		if err != nil {
			return nil, err
		}
		b.generate(key, tokens)
		report.Files++
		report.Scanned++
	}

	if err := b.finish(report, siteChanged); err != nil {
		return nil, err
	}
	report.Duration = time.Since(start)

	b.log.Info("Rebuilt",
		zap.Int("changed", len(paths)),
		zap.Int("utilities", report.Utilities),
		zap.Duration("took", report.Duration))
	return report, nil
}

// CSS returns the current stylesheet
func (b *Builder) CSS() string {
	return b.registry.CSS()
}

func (b *Builder) generate(file string, tokens []string) {
	sheet, err := b.generator.Generate(tokens)
	b.registry.Set(file, sheet)
	if err != nil {
		b.failures[file] = err
		return
	}
	delete(b.failures, file)
}

// errs combines the recorded failures in file order
func (b *Builder) errs() error {
	files := make([]string, 0, len(b.failures))
	for f := range b.failures {
		files = append(files, f)
	}
	sort.Strings(files)

	var errs error
	for _, f := range files {
		for _, err := range multierr.Errors(b.failures[f]) {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f, err))
		}
	}
	return errs
}

func (b *Builder) finish(report *Report, writeSite bool) error {
	if err := b.errs(); err != nil {
		return err
	}

	th, err := theme.Load(b.themeFiles(), b.log)
	if err != nil {
		return err
	}
	b.theme = th

	sheet := &styling.Sheet{Utilities: b.registry.Utilities()}
	report.Utilities = len(sheet.Utilities)
	report.Warnings = b.theme.Check(sheet)
	for _, w := range report.Warnings {
		b.log.Warn("Undefined theme property", zap.String("token", w.Token), zap.String("property", w.Property))
	}

	if err := b.writeStylesheet(); err != nil {
		return err
	}
	if !writeSite {
		return nil
	}
	return b.writeSite(report)
}

func (b *Builder) writeStylesheet() error {
	path := filepath.Join(b.output, b.cfg.Styling.Output)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.registry.CSS()), 0644); err != nil {
		return fmt.Errorf("failed to write stylesheet: %w", err)
	}
	return nil
}

func (b *Builder) writeSite(report *Report) error {
	s, err := site.Load(b.root, b.cfg, b.log)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	sm, err := s.Sitemap(b.cfg)
	if err != nil {
		return err
	}
	if err := sm.WriteFile(filepath.Join(b.output, b.cfg.Sitemap.Output)); err != nil {
		return err
	}
	report.Sitemap = sm.Len()

	pre := s.Prerender(b.cfg)
	if err := pre.WriteFile(filepath.Join(b.output, b.cfg.Prerender.Output)); err != nil {
		return fmt.Errorf("failed to write prerender manifest: %w", err)
	}
	report.Routes = len(pre.Routes)
	return nil
}

func (b *Builder) themeFiles() []string {
	files := make([]string, len(b.cfg.Styling.ThemeFiles))
	for i, f := range b.cfg.Styling.ThemeFiles {
		files[i] = filepath.Join(b.root, f)
	}
	return files
}

func (b *Builder) isContent(path string) bool {
	if b.cfg.Content == nil {
		return false
	}
	dir := filepath.Join(b.root, b.cfg.Content.Dir)
	rel, err := filepath.Rel(dir, path)
	return err == nil && !strings.HasPrefix(rel, "..")
}
