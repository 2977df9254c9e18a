package styling

const noiseTexture = `url("https://cdn.jsdelivr.net/gh/ruby-ist/MyPortfolioV2@main/public/noise.avif")`

func staticRules() []Rule {
	return []Rule{
		Static("noisy-background", Decl("background-image", noiseTexture)),
		Static("noisy-highlighted-background", Decl("background-image", noiseTexture+", var(--highlight-background)")),
		Static("eased-theme-transition", Decl("transition", "background-color 0.2s ease, color 0.2s ease")),
		Static("image-loaded-transition", Decl("transition", "opacity 0.2s ease-in-out")),
	}
}
