package styling

import (
	"net/url"
	"slices"
	"strings"
)

const googleFontsAPI = "https://fonts.googleapis.com/css2"

var fontFallbacks = map[string]string{
	"sans":  "ui-sans-serif,system-ui,sans-serif",
	"serif": "ui-serif,Georgia,serif",
	"mono":  "ui-monospace,SFMono-Regular,monospace",
}

// WebFonts declares font families loaded from a web font provider.
// Families is keyed by the utility suffix, so "sans" yields a font-sans class.
type WebFonts struct {
	Provider string              `yaml:"provider"`
	Families map[string][]string `yaml:"families"`
}

// DefaultWebFonts returns the fonts used across the site
func DefaultWebFonts() WebFonts {
	return WebFonts{
		Provider: "google",
		Families: map[string][]string{
			"sans": {"Bellefair", "Life Savers", "Wix Madefor Text", "Tilt Warp", "Inter"},
		},
	}
}

func (w WebFonts) keys() []string {
	keys := make([]string, 0, len(w.Families))
	for k := range w.Families {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Import returns the @import statement loading every family, or "" when
// there is nothing to load or the provider is not google.
func (w WebFonts) Import() string {
	if w.Provider != "google" {
		return ""
	}

	var names []string
	for _, k := range w.keys() {
		for _, name := range w.Families[k] {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return ""
	}

	params := make([]string, 0, len(names)+1)
	for _, name := range names {
		params = append(params, "family="+url.QueryEscape(name))
	}
	params = append(params, "display=swap")
	return "@import url('" + googleFontsAPI + "?" + strings.Join(params, "&") + "');"
}

// Group returns the font-<key> utilities
func (w WebFonts) Group() Group {
	g := Group{Name: "fonts"}
	for _, k := range w.keys() {
		quoted := make([]string, 0, len(w.Families[k])+1)
		for _, name := range w.Families[k] {
			quoted = append(quoted, `"`+name+`"`)
		}
		if fb, ok := fontFallbacks[k]; ok {
			quoted = append(quoted, fb)
		}
		g.Rules = append(g.Rules, Static("font-"+k, Decl("font-family", strings.Join(quoted, ","))))
	}
	return g
}
