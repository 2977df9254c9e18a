package styling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// VariantMatch describes how a variant prefix changes the emitted rule
type VariantMatch struct {
	// Matcher is the class name with the prefix removed
	Matcher string
	// Media is a media query wrapping the rule, if any
	Media string
	// MediaOrder sorts media-wrapped rules; larger breakpoints come later
	MediaOrder int
	// Important appends !important to every declaration value
	Important bool
}

// Variant recognizes a prefix on a class name
type Variant func(matcher string) (VariantMatch, bool)

// StrictVariant handles "strict:" prefixed names, which emit !important declarations
func StrictVariant() Variant {
	return func(matcher string) (VariantMatch, bool) {
		rest, ok := strings.CutPrefix(matcher, "strict:")
		if !ok {
			return VariantMatch{}, false
		}
		return VariantMatch{Matcher: rest, Important: true}, true
	}
}

// Breakpoint is a named min-width for responsive variants
type Breakpoint struct {
	Name  string `yaml:"name"`
	Width string `yaml:"width"`
}

// ErrInvalidBreakpoint is returned for breakpoints without a name or a px width
var ErrInvalidBreakpoint = errors.New("invalid breakpoint")

// Pixels returns the breakpoint width in px
func (b Breakpoint) Pixels() (int, error) {
	n, ok := strings.CutSuffix(b.Width, "px")
	if !ok {
		return 0, fmt.Errorf("%w %s: width %q must be in px", ErrInvalidBreakpoint, b.Name, b.Width)
	}
	px, err := strconv.Atoi(n)
	if err != nil || px < 0 {
		return 0, fmt.Errorf("%w %s: width %q must be in px", ErrInvalidBreakpoint, b.Name, b.Width)
	}
	return px, nil
}

// DefaultBreakpoints are the site theme's responsive breakpoints
func DefaultBreakpoints() []Breakpoint {
	return []Breakpoint{
		{Name: "sm", Width: "320px"},
		{Name: "md", Width: "720px"},
		{Name: "lg", Width: "1080px"},
	}
}

// BreakpointVariant handles "<name>:" prefixes, wrapping rules in a min-width media query.
// Every breakpoint needs a name and a px width.
func BreakpointVariant(bps []Breakpoint) (Variant, error) {
	widths := make([]int, len(bps))
	for i, bp := range bps {
		if bp.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidBreakpoint)
		}
		px, err := bp.Pixels()
		if err != nil {
			return nil, err
		}
		widths[i] = px
	}
	bps = append([]Breakpoint(nil), bps...)

	return func(matcher string) (VariantMatch, bool) {
		for i, bp := range bps {
			rest, ok := strings.CutPrefix(matcher, bp.Name+":")
			if !ok {
				continue
			}
			return VariantMatch{
				Matcher:    rest,
				Media:      "(min-width: " + bp.Width + ")",
				MediaOrder: widths[i] + 1,
			}, true
		}
		return VariantMatch{}, false
	}, nil
}

// applyVariants strips variant prefixes until none applies
func applyVariants(token string, variants []Variant) VariantMatch {
	acc := VariantMatch{Matcher: token}
	for {
		applied := false
		for _, v := range variants {
			m, ok := v(acc.Matcher)
			if !ok {
				continue
			}
			acc.Matcher = m.Matcher
			acc.Important = acc.Important || m.Important
			if m.Media != "" {
				if acc.Media == "" {
					acc.Media = m.Media
				} else {
					acc.Media += " and " + m.Media
				}
				acc.MediaOrder = max(acc.MediaOrder, m.MediaOrder)
			}
			applied = true
			break
		}
		if !applied {
			return acc
		}
	}
}
