package ui

import (
	"errors"
	"strings"

	"github.com/ruby-ist/portfolio/pkg/styling"
)

// Resolution is a class name resolved for display
type Resolution struct {
	Token   string
	Utility styling.Utility
	Matched bool
	Err     error
}

// Resolve resolves token with g
func Resolve(g *styling.Generator, token string) Resolution {
	u, ok, err := g.Parse(token)
	return Resolution{Token: token, Utility: u, Matched: ok, Err: err}
}

// Failed reports whether the token failed to resolve
func (r Resolution) Failed() bool {
	return r.Err != nil
}

// Render formats the resolution as an indented block:
//
//	md:mt-4
//	  @media (min-width: 720px)
//	  margin-top: 4px;
func (r Resolution) Render() string {
	var b strings.Builder
	b.WriteString(tokenStyle.Render(r.Token))
	b.WriteByte('\n')

	switch {
	case r.Err != nil:
		writeLine(&b, errorStyle.Render("error: "+reason(r.Err)))
	case !r.Matched:
		writeLine(&b, mutedStyle.Render("no match"))
	default:
		u := r.Utility
		if u.Media != "" {
			writeLine(&b, mediaStyle.Render("@media "+u.Media))
		}
		for _, e := range u.Result.Declarations {
			writeLine(&b, propertyStyle.Render(e.Property)+": "+e.Value+";")
		}
		if u.Result.Kind == styling.MappingWithRaw && u.Result.Raw != "" {
			writeLine(&b, mutedStyle.Render("raw: ")+u.Result.Raw)
		}
	}
	return b.String()
}

func writeLine(b *strings.Builder, s string) {
	b.WriteString("  ")
	b.WriteString(s)
	b.WriteByte('\n')
}

// reason drops the token prefix already shown as the heading
func reason(err error) string {
	var te *styling.TokenError
	if errors.As(err, &te) {
		return te.Err.Error()
	}
	return err.Error()
}
