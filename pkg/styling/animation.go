package styling

func animationRules() []Rule {
	return []Rule{
		passthrough(`^anime-name-(.+)$`, "animation-name"),

		// duration in seconds or milliseconds
		Pattern(`^anime-time-(\d+)(s|ms)$`, func(g []string) (Result, error) {
			return Declare("animation-duration", g[0]+g[1])
		}),

		passthrough(`^anime-iter-(.+)$`, "animation-iteration-count"),
		passthrough(`^anime-ease-(.+)$`, "animation-timing-function"),

		// opt out
		Static("no-transform", Decl("transform", "none")),
		Static("no-transition", Decl("transition", "none")),
	}
}
