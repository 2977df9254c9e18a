package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ruby-ist/portfolio/cmd/folio/internal/builder"
	"github.com/ruby-ist/portfolio/cmd/folio/internal/config"
	"github.com/ruby-ist/portfolio/internal/cache"
	"github.com/ruby-ist/portfolio/pkg/live"
)

const (
	debounceDelay   = 100 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

type devServer struct {
	root    string
	builder *builder.Builder
	live    *live.Server
	watcher *fsnotify.Watcher
	log     *zap.Logger
}

func newDevCommand(g *globals) *cobra.Command {
	var port int
	var host string
	var output string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Builds the project, serves the output directory and rebuilds when sources
change. Connected browsers reload after every successful rebuild and show an
overlay when a rebuild fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			// CLI takes precedence
			if port != 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDev(ctx, g.dir, output, cfg, log)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run the dev server on (defaults to folio.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind the dev server to (defaults to folio.yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "dist", "Output directory")

	return cmd
}

func runDev(ctx context.Context, dir, output string, cfg *config.Config, log *zap.Logger) error {
	c, err := openCache(dir, cfg, log)
	if err != nil {
		log.Warn("Scan cache unavailable, scanning every file", zap.Error(err))
	} else {
		defer c.Close()
	}

	s, err := newDevServer(dir, output, cfg, c, log)
	if err != nil {
		return err
	}
	defer s.watcher.Close()

	// a failing initial build is reported and fixed by the next save
	if _, err := s.builder.Build(ctx); err != nil {
		log.Error("Initial build failed", zap.Error(err))
	}

	addr := net.JoinHostPort(cfg.Dev.Host, strconv.Itoa(cfg.Dev.Port))
	srv := &http.Server{
		Addr:    addr,
		Handler: s.handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Dev server running", zap.String("url", "http://"+addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return s.watch(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down dev server")

		s.live.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newDevServer(dir, output string, cfg *config.Config, c *cache.Cache, log *zap.Logger) (*devServer, error) {
	b, err := builder.New(builder.Options{
		Root:   dir,
		Output: output,
		Config: cfg,
		Cache:  c,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	s := &devServer{
		root:    dir,
		builder: b,
		live:    live.NewServer(log),
		watcher: watcher,
		log:     log.Named("dev"),
	}
	if err := s.addWatches(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to setup watcher: %w", err)
	}
	return s, nil
}

// addWatches watches dir and its subdirectories, skipping hidden
// directories, node_modules and the output directory
func (s *devServer) addWatches(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != s.root && s.ignoredDir(p) {
			return filepath.SkipDir
		}
		return s.watcher.Add(p)
	})
}

func (s *devServer) ignoredDir(p string) bool {
	name := filepath.Base(p)
	if strings.HasPrefix(name, ".") || name == "node_modules" {
		return true
	}
	return s.inOutput(p)
}

func (s *devServer) inOutput(p string) bool {
	rel, err := filepath.Rel(s.builder.OutputDir(), p)
	return err == nil && !strings.HasPrefix(rel, "..")
}

func (s *devServer) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if s.inOutput(event.Name) {
		return false
	}
	for dir := filepath.Dir(event.Name); dir != s.root && dir != "." && dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		if s.ignoredDir(dir) {
			return false
		}
	}
	return !strings.HasPrefix(filepath.Base(event.Name), ".")
}

// watch collects file events and rebuilds once they settle
func (s *devServer) watch(ctx context.Context) error {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	var pending []string
	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil

		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := s.addWatches(event.Name); err != nil {
						s.log.Warn("Failed to watch directory", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			if !slices.Contains(pending, event.Name) {
				pending = append(pending, event.Name)
			}
			debounce.Reset(debounceDelay)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("Watcher error", zap.Error(err))

		case <-debounce.C:
			changed := pending
			pending = nil
			if len(changed) > 0 {
				s.rebuild(ctx, changed)
			}
		}
	}
}

// rebuild updates the build for changed paths and notifies browsers
func (s *devServer) rebuild(ctx context.Context, changed []string) {
	if _, err := s.builder.Update(ctx, changed); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Error("Rebuild failed", zap.Error(err))
		s.live.Error(err)
		return
	}

	files := make([]string, len(changed))
	for i, p := range changed {
		files[i] = s.builder.Scanner().Key(p)
	}
	n := s.live.Reload(files...)
	s.log.Debug("Reload sent", zap.Strings("files", files), zap.Int("clients", n))
}

func (s *devServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(live.SocketPath, s.live.HandleWebSocket)
	mux.HandleFunc(live.ScriptPath, live.ServeScript)
	mux.HandleFunc("/", s.serveOutput)
	return mux
}

// serveOutput serves the build output. HTML pages get the reload client.
func (s *devServer) serveOutput(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	file := filepath.Join(s.builder.OutputDir(), filepath.FromSlash(name))

	info, err := os.Stat(file)
	if err == nil && info.IsDir() {
		file = filepath.Join(file, "index.html")
		_, err = os.Stat(file)
	}
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	if strings.EqualFold(filepath.Ext(file), ".html") {
		page, err := os.ReadFile(file)
		if err != nil {
			http.Error(w, "failed to read page", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(live.InjectScript(page))
		return
	}
	http.ServeFile(w, r, file)
}
