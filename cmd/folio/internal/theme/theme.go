// Package theme reads the custom properties a site theme defines and checks
// generated utilities against them.
package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"github.com/ruby-ist/portfolio/pkg/styling"
)

// Theme is the set of custom properties defined by one or more stylesheets
type Theme struct {
	props map[string]string
}

// Warning reports a utility that refers to an undefined custom property
type Warning struct {
	Token    string
	Property string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s uses var(%s) which the theme does not define", w.Token, w.Property)
}

// New returns an empty theme
func New() *Theme {
	return &Theme{props: make(map[string]string)}
}

// Load parses every stylesheet in paths into one theme.
// Missing files are logged and skipped.
func Load(paths []string, log *zap.Logger) (*Theme, error) {
	if log == nil {
		log = zap.NewNop()
	}
	t := New()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("Theme stylesheet not found", zap.String("file", path))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read theme %s: %w", path, err)
		}
		if err := t.Parse(data); err != nil {
			return nil, fmt.Errorf("theme %s: %w", path, err)
		}
		log.Debug("Parsed theme", zap.String("file", path), zap.Int("properties", len(t.props)))
	}
	return t, nil
}

// Parse adds the custom properties declared in data.
// Declarations nested in at-rules (media queries, supports) count too.
func (t *Theme) Parse(data []byte) error {
	p := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, name := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		case css.CustomPropertyGrammar:
			var value strings.Builder
			for _, v := range p.Values() {
				value.Write(v.Data)
			}
			t.props[string(name)] = strings.TrimSpace(value.String())
		}
	}
}

// Has reports whether the theme defines property, including its leading "--"
func (t *Theme) Has(property string) bool {
	_, ok := t.props[property]
	return ok
}

// Value returns the raw value of property
func (t *Theme) Value(property string) (string, bool) {
	v, ok := t.props[property]
	return v, ok
}

// Names returns the defined properties in natural order
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.props))
	for name := range t.props {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Len returns the number of defined properties
func (t *Theme) Len() int {
	return len(t.props)
}

// Check returns a warning for every var() reference in the sheet's
// utilities that the theme does not define.
func (t *Theme) Check(sheet *styling.Sheet) []Warning {
	if sheet == nil {
		return nil
	}
	var warnings []Warning
	for _, u := range sheet.Utilities {
		seen := make(map[string]bool)
		for _, ref := range References([]byte(u.CSS())) {
			if seen[ref] || t.Has(ref) {
				continue
			}
			seen[ref] = true
			warnings = append(warnings, Warning{Token: u.Token, Property: ref})
		}
	}
	return warnings
}

// References lists the custom properties named by var() calls in src,
// in order of appearance.
func References(src []byte) []string {
	var refs []string
	l := css.NewLexer(parse.NewInput(bytes.NewReader(src)))
	inVar := false
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return refs
		case css.FunctionToken:
			inVar = strings.EqualFold(string(data), "var(")
		case css.WhitespaceToken:
			// var( --name )
		case css.CustomPropertyNameToken:
			if inVar {
				refs = append(refs, string(data))
			}
			inVar = false
		default:
			inVar = false
		}
	}
}
