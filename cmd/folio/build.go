package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ruby-ist/portfolio/cmd/folio/internal/builder"
	"github.com/ruby-ist/portfolio/cmd/folio/internal/config"
	"github.com/ruby-ist/portfolio/internal/cache"
)

func newBuildCommand(g *globals) *cobra.Command {
	var output string
	var noCache bool
	var clean bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the stylesheet, sitemap and prerender manifest",
		Long: `Scans the configured sources for class names, generates the utility
stylesheet, checks it against the theme and writes sitemap.xml and
prerender.json to the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runBuild(ctx, g.dir, output, cfg, log, !noCache, clean)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "dist", "Output directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Rescan every file instead of using the scan cache")
	cmd.Flags().BoolVar(&clean, "clean", false, "Clear the scan cache before building")

	return cmd
}

func runBuild(ctx context.Context, dir, output string, cfg *config.Config, log *zap.Logger, useCache, clean bool) error {
	var c *cache.Cache
	if useCache {
		var err error
		c, err = openCache(dir, cfg, log)
		if err != nil {
			log.Warn("Scan cache unavailable, scanning every file", zap.Error(err))
		} else {
			defer c.Close()
			if clean {
				if err := c.Clear(); err != nil {
					return fmt.Errorf("failed to clear scan cache: %w", err)
				}
			}
		}
	}

	b, err := builder.New(builder.Options{
		Root:   dir,
		Output: output,
		Config: cfg,
		Cache:  c,
		Logger: log,
	})
	if err != nil {
		return err
	}

	report, err := b.Build(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if c != nil {
		stats := c.GetStats()
		log.Debug("Scan cache",
			zap.Int64("hits", stats.Hits),
			zap.Int64("misses", stats.Misses),
			zap.Int("entries", stats.Entries))
	}
	if n := len(report.Warnings); n > 0 {
		log.Warn("Theme check found undefined properties", zap.Int("count", n))
	}
	return nil
}

// openCache opens the scan cache and drops entries older than its max age
func openCache(dir string, cfg *config.Config, log *zap.Logger) (*cache.Cache, error) {
	cc := cache.DefaultConfig()
	if cfg.Cache != nil {
		cc.Path = cfg.Cache.Path
		cc.MaxAge = cfg.Cache.MaxAge
	}
	if !filepath.IsAbs(cc.Path) {
		cc.Path = filepath.Join(dir, cc.Path)
	}

	c, err := cache.New(cc)
	if err != nil {
		return nil, err
	}
	if n, err := c.Prune(); err != nil {
		log.Warn("Failed to prune scan cache", zap.Error(err))
	} else if n > 0 {
		log.Debug("Pruned scan cache", zap.Int("entries", n))
	}
	return c, nil
}
