package main

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ruby-ist/portfolio/cmd/folio/internal/builder"
	"github.com/ruby-ist/portfolio/cmd/folio/internal/ui"
)

func newExploreCommand(g *globals) *cobra.Command {
	var noSuggest bool

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Try class names interactively",
		Long: `Opens a terminal playground that resolves the class name being typed on
every keystroke. Class names used in the project are offered for completion.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			// the playground owns the terminal
			log := zap.NewNop()

			b, err := builder.New(builder.Options{Root: g.dir, Config: cfg, Logger: log})
			if err != nil {
				return err
			}

			var suggestions []string
			if !noSuggest {
				result, err := b.Scanner().Scan(cmd.Context())
				if err != nil {
					return err
				}
				for _, tokens := range result.Files {
					suggestions = append(suggestions, tokens...)
				}
				slices.Sort(suggestions)
				suggestions = slices.Compact(suggestions)
			}

			p := tea.NewProgram(ui.NewExplore(b.Generator(), suggestions), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("explore failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSuggest, "no-suggest", false, "Do not scan the project for completions")

	return cmd
}
