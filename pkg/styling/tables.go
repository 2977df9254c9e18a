package styling

func tableRules() []Rule {
	return []Rule{
		Static("table-fixed", Decl("table-layout", "fixed")),
		Static("table-auto", Decl("table-layout", "auto")),
		Static("bd-collapse", Decl("border-collapse", "collapse")),
		Static("bd-separate", Decl("border-collapse", "separate")),
		Pattern(`^bd-spacing-(\d+)(\w{1,3})?$`, func(g []string) (Result, error) {
			v, err := dimension(g[0], g[1])
			if err != nil {
				return Result{}, err
			}
			return Declare("border-spacing", v)
		}),
		passthrough(`^caption-(top|bottom)$`, "caption-side"),
	}
}
