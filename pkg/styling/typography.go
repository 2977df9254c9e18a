package styling

func typographyRules() []Rule {
	return []Rule{
		// font
		Pattern(`^font-s-([0-9.]+)(\w{1,3})?$`, func(g []string) (Result, error) {
			v, err := dimension(g[0], g[1])
			if err != nil {
				return Result{}, err
			}
			return Declare("font-size", v)
		}),
		passthrough(`^font-w-([a-z0-9]+)$`, "font-weight"),
		Pattern(`^font-f-(.+)$`, func(g []string) (Result, error) {
			return Declare("font-family", "var(--"+g[0]+")")
		}),

		Pattern(`^lh-([0-9]+)(\w{1,3})?$`, func(g []string) (Result, error) {
			v, err := dimension(g[0], g[1])
			if err != nil {
				return Result{}, err
			}
			return Declare("line-height", v)
		}),

		passthrough(`^ta-(\w+)$`, "text-align"),

		Static("no-underline", Decl("text-decoration", "none")),
		Static("transform-none", Decl("text-transform", "none")),
		Static("break-word", Decl("word-break", "break-word")),
		Static("ellipsis", Decl("text-overflow", "ellipsis")),
		passthrough(`^ws-(\w+)$`, "white-space"),
	}
}
