package styling

import (
	"fmt"
	"regexp"
)

// Entry is a single CSS declaration
type Entry struct {
	Property string
	Value    string
}

// Declarations is an ordered list of CSS declarations.
// Order is preserved so generated stylesheets are stable.
type Declarations []Entry

// Decl builds Declarations from alternating property/value pairs.
// A trailing property without a value is ignored.
func Decl(pairs ...string) Declarations {
	decls := make(Declarations, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		decls = append(decls, Entry{Property: pairs[i], Value: pairs[i+1]})
	}
	return decls
}

// Map returns the declarations keyed by property
func (d Declarations) Map() map[string]string {
	m := make(map[string]string, len(d))
	for _, e := range d {
		m[e.Property] = e.Value
	}
	return m
}

// Get returns the value of a property, if declared
func (d Declarations) Get(property string) (string, bool) {
	for _, e := range d {
		if e.Property == property {
			return e.Value, true
		}
	}
	return "", false
}

// Kind tells which shape a Result has
type Kind int

const (
	// NoMatch means the token is not a recognized utility
	NoMatch Kind = iota
	// Mapping is a plain property/value mapping
	Mapping
	// MappingWithRaw is a mapping plus a raw CSS fragment emitted verbatim
	MappingWithRaw
)

func (k Kind) String() string {
	switch k {
	case Mapping:
		return "mapping"
	case MappingWithRaw:
		return "mapping+raw"
	default:
		return "no-match"
	}
}

// Result is the outcome of resolving a utility class name
type Result struct {
	Kind         Kind
	Declarations Declarations
	Raw          string
}

// Matched reports whether the token resolved to declarations
func (r Result) Matched() bool {
	return r.Kind != NoMatch
}

// Declare returns a Mapping result for one property
func Declare(property, value string) (Result, error) {
	return Result{Kind: Mapping, Declarations: Decl(property, value)}, nil
}

// WithRaw returns a result pairing declarations with a raw CSS fragment
func WithRaw(decls Declarations, raw string) Result {
	return Result{Kind: MappingWithRaw, Declarations: decls, Raw: raw}
}

// Transform turns the capture groups of a matched pattern into a Result.
// groups excludes the full match; unmatched optional groups are empty strings.
type Transform func(groups []string) (Result, error)

// Rule pairs a matcher with the way a match becomes CSS.
// A rule matches either a literal token exactly or a regular expression.
type Rule struct {
	literal   string
	pattern   *regexp.Regexp
	static    Result
	transform Transform
}

// Static creates a rule matching exactly one token
func Static(token string, decls Declarations) Rule {
	return Rule{
		literal: token,
		static:  Result{Kind: Mapping, Declarations: decls},
	}
}

// Pattern creates a rule matching a regular expression.
// It panics if expr does not compile; rule tables are built at startup.
func Pattern(expr string, transform Transform) Rule {
	return Rule{
		pattern:   regexp.MustCompile(expr),
		transform: transform,
	}
}

// Arity returns the number of capture groups handed to the transform
func (r Rule) Arity() int {
	if r.pattern == nil {
		return 0
	}
	return r.pattern.NumSubexp()
}

// String returns the matcher source
func (r Rule) String() string {
	if r.pattern != nil {
		return r.pattern.String()
	}
	return r.literal
}

func (r Rule) match(token string) (Result, bool, error) {
	if r.pattern == nil {
		if token != r.literal {
			return Result{}, false, nil
		}
		return r.static, true, nil
	}

	m := r.pattern.FindStringSubmatch(token)
	if m == nil {
		return Result{}, false, nil
	}
	res, err := r.transform(m[1:])
	if err != nil {
		return Result{}, true, err
	}
	return res, true, nil
}

// TokenError ties a resolution failure to the class name that caused it
type TokenError struct {
	Token string
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s: %v", e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}
