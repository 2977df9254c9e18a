package styling

import (
	"errors"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Utility is a class name resolved to CSS
type Utility struct {
	Token    string
	Selector string
	Result   Result
	Media    string

	mediaOrder int
	ruleIndex  int
}

// CSS renders the utility rule, including its raw fragment and media wrapper
func (u Utility) CSS() string {
	var b strings.Builder
	if u.Media != "" {
		b.WriteString("@media " + u.Media + "{\n")
	}
	b.WriteString(u.Selector)
	b.WriteByte('{')
	for _, e := range u.Result.Declarations {
		b.WriteString(e.Property)
		b.WriteByte(':')
		b.WriteString(e.Value)
		b.WriteByte(';')
	}
	b.WriteString("}\n")
	if u.Result.Kind == MappingWithRaw && u.Result.Raw != "" {
		b.WriteString(u.Result.Raw)
		b.WriteByte('\n')
	}
	if u.Media != "" {
		b.WriteString("}\n")
	}
	return b.String()
}

func lessUtility(a, b Utility) bool {
	if a.mediaOrder != b.mediaOrder {
		return a.mediaOrder < b.mediaOrder
	}
	if a.ruleIndex != b.ruleIndex {
		return a.ruleIndex < b.ruleIndex
	}
	return natural.Less(a.Token, b.Token)
}

func sortUtilities(us []Utility) {
	sort.SliceStable(us, func(i, j int) bool {
		return lessUtility(us[i], us[j])
	})
}

// Sheet is the output of one generation pass
type Sheet struct {
	Preflights []string
	Utilities  []Utility
}

// CSS renders the whole stylesheet
func (s *Sheet) CSS() string {
	var b strings.Builder
	for _, p := range s.Preflights {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	for _, u := range s.Utilities {
		b.WriteString(u.CSS())
	}
	return b.String()
}

// Tokens returns the class names that produced CSS
func (s *Sheet) Tokens() []string {
	tokens := make([]string, len(s.Utilities))
	for i, u := range s.Utilities {
		tokens[i] = u.Token
	}
	return tokens
}

// Generator turns scanned class names into a stylesheet
type Generator struct {
	table      *Table
	variants   []Variant
	preflights []string
	log        *zap.Logger
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithVariants sets the variants recognized in front of class names
func WithVariants(variants ...Variant) GeneratorOption {
	return func(g *Generator) {
		g.variants = append(g.variants, variants...)
	}
}

// WithPreflight adds CSS emitted ahead of all utilities
func WithPreflight(css string) GeneratorOption {
	return func(g *Generator) {
		if css != "" {
			g.preflights = append(g.preflights, css)
		}
	}
}

// WithLogger sets the generator logger
func WithLogger(log *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGenerator creates a generator over table
func NewGenerator(table *Table, opts ...GeneratorOption) *Generator {
	g := &Generator{
		table: table,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.Named("generator")
	return g
}

const (
	attrOpen  = "["
	attrClose = `=""]`
)

// AttributeToken returns the token for a utility written as a bare attribute,
// <div flex mt-4>. Its rule is selected with [name=""] instead of a class.
func AttributeToken(name string) string {
	return attrOpen + name + attrClose
}

func attributeName(token string) (string, bool) {
	if !strings.HasPrefix(token, attrOpen) || !strings.HasSuffix(token, attrClose) {
		return token, false
	}
	name := token[len(attrOpen) : len(token)-len(attrClose)]
	return name, name != ""
}

// Preflights returns the CSS emitted ahead of all utilities
func (g *Generator) Preflights() []string {
	return append([]string(nil), g.preflights...)
}

// Parse resolves a single class name, variants included.
// ok is false when the name is not a utility.
func (g *Generator) Parse(token string) (u Utility, ok bool, err error) {
	name, attr := attributeName(token)
	vm := applyVariants(name, g.variants)
	res, idx, err := g.table.lookup(vm.Matcher)
	if err != nil {
		return Utility{}, false, &TokenError{Token: token, Err: unwrapToken(err)}
	}
	if !res.Matched() {
		return Utility{}, false, nil
	}

	if vm.Important {
		decls := make(Declarations, len(res.Declarations))
		for i, e := range res.Declarations {
			decls[i] = Entry{Property: e.Property, Value: e.Value + " !important"}
		}
		res.Declarations = decls
	}

	selector := "." + EscapeSelector(token)
	if attr {
		selector = attrOpen + EscapeSelector(name) + attrClose
	}

	return Utility{
		Token:      token,
		Selector:   selector,
		Result:     res,
		Media:      vm.Media,
		mediaOrder: vm.MediaOrder,
		ruleIndex:  idx,
	}, true, nil
}

// Generate resolves every distinct token. Tokens that are not utilities are
// skipped. Tokens that fail to resolve are left out of the sheet and their
// errors are returned combined, alongside the sheet for the rest.
func (g *Generator) Generate(tokens []string) (*Sheet, error) {
	sheet := &Sheet{Preflights: append([]string(nil), g.preflights...)}
	seen := make(map[string]struct{}, len(tokens))

	var errs error
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}

		u, ok, err := g.Parse(t)
		if err != nil {
			g.log.Debug("Rejected class name", zap.String("token", t), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		if ok {
			sheet.Utilities = append(sheet.Utilities, u)
		}
	}

	sortUtilities(sheet.Utilities)
	g.log.Debug("Generated utilities",
		zap.Int("candidates", len(seen)),
		zap.Int("utilities", len(sheet.Utilities)),
		zap.Int("errors", len(multierr.Errors(errs))))
	return sheet, errs
}

func unwrapToken(err error) error {
	var te *TokenError
	if errors.As(err, &te) {
		return te.Err
	}
	return err
}
