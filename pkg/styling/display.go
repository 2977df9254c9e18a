package styling

// passthrough maps the single capture of a pattern straight into property.
// Keyword values are not validated; browsers drop invalid ones.
func passthrough(expr, property string) Rule {
	return Pattern(expr, func(g []string) (Result, error) {
		return Declare(property, g[0])
	})
}

func displayRules() []Rule {
	return []Rule{
		// flexbox
		Static("flex", Decl("display", "flex")),
		passthrough(`^flex-(\d+)$`, "flex"),
		passthrough(`^align-i-([a-z-]+)$`, "align-items"),
		passthrough(`^align-c-([a-z-]+)$`, "align-content"),
		passthrough(`^align-s-([a-z-]+)$`, "align-self"),
		passthrough(`^just-i-([a-z-]+)$`, "justify-items"),
		passthrough(`^just-c-([a-z-]+)$`, "justify-content"),
		passthrough(`^(row|column)$`, "flex-direction"),
		passthrough(`^(wrap|nowrap)$`, "flex-wrap"),
		Pattern(`^gap-(\d+)(\w{1,3})?`, func(g []string) (Result, error) {
			v, err := dimension(g[0], g[1])
			if err != nil {
				return Result{}, err
			}
			return Declare("gap", v)
		}),

		// grid
		Static("grid", Decl("display", "grid")),
		passthrough(`^place-i-([a-z-]+)$`, "place-items"),

		// display
		Static("inline-block", Decl("display", "inline-block")),
		Static("block", Decl("display", "block")),
		Static("no-display", Decl("display", "none")),
		Static("inline-flex", Decl("display", "inline-flex")),

		// overflow
		Pattern(`^oflow-(x|y)?-?(\w+)$`, func(g []string) (Result, error) {
			if g[0] != "" {
				return Declare("overflow-"+g[0], g[1])
			}
			return Declare("overflow", g[1])
		}),

		// scrollbar
		Pattern(`^no-scrollbar$`, func([]string) (Result, error) {
			return WithRaw(
				Decl("-ms-overflow-style", "none", "scrollbar-width", "none"),
				".no-scrollbar::-webkit-scrollbar {display: none;}",
			), nil
		}),
		passthrough(`^scrollbar-w-(\w+)$`, "scrollbar-width"),
		Pattern(`^scrollbar-color-([-a-z]+)--([-a-z]+)$`, func(g []string) (Result, error) {
			return Declare("scrollbar-color", "var(--"+g[0]+") var(--"+g[1]+")")
		}),

		Static("pointer", Decl("cursor", "pointer")),

		// visibility
		Static("hidden", Decl("visibility", "hidden")),
		Static("visible", Decl("visibility", "visible")),

		passthrough(`^opacity-([\d.]+)$`, "opacity"),
	}
}
