package styling

// Group is a list of rules scoped to one CSS concern
type Group struct {
	Name  string
	Rules []Rule
}

// Table is an ordered, immutable set of rule groups.
// The first rule whose matcher is satisfied wins.
// A Table is safe for concurrent use.
type Table struct {
	groups []Group
}

type tableOptions struct {
	legacyPosition bool
	extra          []Group
}

// Option configures DefaultTable
type Option func(*tableOptions)

// WithLegacyPosition matches fixed/absolute/relative anywhere in a class name
// instead of requiring the whole name.
func WithLegacyPosition() Option {
	return func(o *tableOptions) {
		o.legacyPosition = true
	}
}

// WithGroups appends extra rule groups after the built-in ones
func WithGroups(groups ...Group) Option {
	return func(o *tableOptions) {
		o.extra = append(o.extra, groups...)
	}
}

// NewTable creates a table from groups in priority order
func NewTable(groups ...Group) *Table {
	gs := make([]Group, len(groups))
	for i, g := range groups {
		gs[i] = Group{Name: g.Name, Rules: append([]Rule(nil), g.Rules...)}
	}
	return &Table{groups: gs}
}

// DefaultTable returns the site's utility rules in registration order:
// box, display, position, color, typography, animation, static, list, table.
func DefaultTable(opts ...Option) *Table {
	var o tableOptions
	for _, opt := range opts {
		opt(&o)
	}

	groups := []Group{
		{Name: "box", Rules: boxRules()},
		{Name: "display", Rules: displayRules()},
		{Name: "position", Rules: positionRules(o.legacyPosition)},
		{Name: "color", Rules: colorRules()},
		{Name: "typography", Rules: typographyRules()},
		{Name: "animation", Rules: animationRules()},
		{Name: "static", Rules: staticRules()},
		{Name: "list", Rules: listRules()},
		{Name: "table", Rules: tableRules()},
	}
	groups = append(groups, o.extra...)
	return NewTable(groups...)
}

// Groups returns the group names in priority order
func (t *Table) Groups() []string {
	names := make([]string, len(t.groups))
	for i, g := range t.groups {
		names[i] = g.Name
	}
	return names
}

// Len returns the total number of rules
func (t *Table) Len() int {
	n := 0
	for _, g := range t.groups {
		n += len(g.Rules)
	}
	return n
}

// Resolve resolves a utility class name.
// A token that matches no rule yields a NoMatch result and a nil error.
// Errors are *TokenError wrapping ErrInvalidUnit or ErrUnsupportedShorthand.
func (t *Table) Resolve(token string) (Result, error) {
	res, _, err := t.lookup(token)
	return res, err
}

// lookup resolves token and also reports the global index of the matching rule,
// or -1 when nothing matched.
func (t *Table) lookup(token string) (Result, int, error) {
	idx := 0
	for _, g := range t.groups {
		for _, r := range g.Rules {
			res, ok, err := r.match(token)
			if err != nil {
				return Result{}, idx, &TokenError{Token: token, Err: err}
			}
			if ok {
				return res, idx, nil
			}
			idx++
		}
	}
	return Result{Kind: NoMatch}, -1, nil
}
