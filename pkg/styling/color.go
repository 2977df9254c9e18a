package styling

// Colors are references into the theme's custom properties.
// Whether --<name> is defined is the stylesheet's concern.
func colorRules() []Rule {
	return []Rule{
		Pattern(`^color-([\w-]+)$`, func(g []string) (Result, error) {
			return Declare("color", "var(--"+g[0]+")")
		}),
		Pattern(`^bg-color-([\w-]+)$`, func(g []string) (Result, error) {
			return Declare("background-color", "var(--"+g[0]+")")
		}),
		Static("no-bg", Decl("background", "none")),
	}
}
