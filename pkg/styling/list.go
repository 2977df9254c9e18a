package styling

func listRules() []Rule {
	return []Rule{
		Static("list-none", Decl("list-style", "none")),
		passthrough(`^list-style-([a-z-]+)$`, "list-style-type"),
		passthrough(`^list-pos-(inside|outside)$`, "list-style-position"),
	}
}
