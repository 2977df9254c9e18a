package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ruby-ist/portfolio/cmd/folio/internal/config"
	"github.com/ruby-ist/portfolio/internal/logging"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// globals holds the persistent flags shared by every command
type globals struct {
	dir      string
	logLevel string
}

func main() {
	var g globals

	var rootCmd = &cobra.Command{
		Use:   "folio",
		Short: "folio - portfolio site build toolkit",
		Long: `folio scans the portfolio sources for utility class names, generates the
atomic stylesheet, and writes the sitemap and prerender manifests. It also
serves the build with live reload during development.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&g.dir, "cwd", "C", ".", "Project directory")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: none, normal or debug (defaults to folio.yaml)")

	rootCmd.AddCommand(newResolveCommand(&g))
	rootCmd.AddCommand(newBuildCommand(&g))
	rootCmd.AddCommand(newDevCommand(&g))
	rootCmd.AddCommand(newExploreCommand(&g))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load reads folio.yaml from the project directory and builds the logger it
// configures. The --log-level flag takes precedence over the file.
func (g *globals) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(g.dir)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Log.Level
	if g.logLevel != "" {
		level = g.logLevel
	}
	log, err := logging.New(level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
