package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/ruby-ist/portfolio/cmd/folio/internal/builder"
	"github.com/ruby-ist/portfolio/cmd/folio/internal/ui"
	"github.com/ruby-ist/portfolio/pkg/styling"
)

func newResolveCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <class>...",
		Short: "Show the CSS generated for class names",
		Long: `Resolves each class name against the utility rules and prints its
declarations, raw CSS and media query. Exits non-zero if any class name fails.`,
		Example: `  folio resolve mt-4 md:p-1-2 strict:color-primary`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			gen, err := builder.NewGenerator(cfg, log)
			if err != nil {
				return err
			}
			return runResolve(cmd.OutOrStdout(), gen, args)
		},
	}
	return cmd
}

// runResolve prints every resolution and returns the combined failures
func runResolve(w io.Writer, gen *styling.Generator, tokens []string) error {
	var errs error
	for i, token := range tokens {
		r := ui.Resolve(gen, strings.TrimSpace(token))
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, r.Render())
		if r.Failed() {
			errs = multierr.Append(errs, r.Err)
		}
	}
	return errs
}
