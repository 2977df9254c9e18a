package styling

func positionRules(legacy bool) []Rule {
	keyword := `^(fixed|absolute|relative)$`
	if legacy {
		keyword = `(fixed|absolute|relative)`
	}

	return []Rule{
		passthrough(keyword, "position"),

		// offsets
		Pattern(`^(-)?(t|r|b|l)-([\d.]+)(\w{1,3})?$`, func(g []string) (Result, error) {
			negative, style, value, unit := g[0], g[1], g[2], g[3]
			property, err := MapProperty(style)
			if err != nil {
				return Result{}, err
			}
			v, err := dimension(value, unit)
			if err != nil {
				return Result{}, err
			}
			return Declare(property, negative+v)
		}),

		Pattern(`^(t|r|b|l)-var-([\w-]+)$`, func(g []string) (Result, error) {
			property, err := MapProperty(g[0])
			if err != nil {
				return Result{}, err
			}
			return Declare(property, "var(--"+g[1]+")")
		}),

		Pattern(`^(-)?z-(\d+)$`, func(g []string) (Result, error) {
			return Declare("z-index", g[0]+g[1])
		}),

		passthrough(`^float-(\w+)$`, "float"),
		passthrough(`^clear-(\w+)$`, "clear"),
	}
}
