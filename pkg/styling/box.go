package styling

import (
	"strings"
)

func borderSide(code string) string {
	if code == "" {
		return "border-"
	}
	return "border-" + side(code) + "-"
}

func sizeProperty(style string) string {
	if style == "h" {
		return "height"
	}
	return "width"
}

func boxRules() []Rule {
	return []Rule{
		// single value margin and padding
		Pattern(`^(-)?(m|p)(t|r|b|l)-(\d+)(\w{1,3})?$`, func(g []string) (Result, error) {
			negative, style, direction, value, unit := g[0], g[1], g[2], g[3], g[4]
			property, err := MapProperty(style)
			if err != nil {
				return Result{}, err
			}
			v, err := dimension(value, unit)
			if err != nil {
				return Result{}, err
			}
			return Declare(property+"-"+side(direction), negative+v)
		}),

		// multi value margin and padding, 1 to 4 values
		Pattern(`^(m|p)-(\d+)(\w{1,3})?(?:-(\d+)(\w{1,3})?)?(?:-(\d+)(\w{1,3})?)?(?:-(\d+)(\w{1,3})?)?$`, func(g []string) (Result, error) {
			property, err := MapProperty(g[0])
			if err != nil {
				return Result{}, err
			}
			values := make([]string, 0, 4)
			for i := 1; i+1 < len(g); i += 2 {
				if g[i] == "" {
					continue
				}
				v, err := dimension(g[i], g[i+1])
				if err != nil {
					return Result{}, err
				}
				values = append(values, v)
			}
			return Declare(property, strings.Join(values, " "))
		}),

		// auto margins
		Pattern(`^m(t|r|b|l)?-auto$`, func(g []string) (Result, error) {
			if g[0] == "" {
				return Declare("margin", "auto")
			}
			return Declare("margin-"+side(g[0]), "auto")
		}),

		// height and width
		Pattern(`^(h|w)-(\d+)(\w{1,3})?`, func(g []string) (Result, error) {
			v, err := dimension(g[1], g[2])
			if err != nil {
				return Result{}, err
			}
			return Declare(sizeProperty(g[0]), v)
		}),

		Pattern(`^(h|w)-var-([\w-]+)$`, func(g []string) (Result, error) {
			return Declare(sizeProperty(g[0]), "var(--"+g[1]+")")
		}),

		// min/max height and width
		Pattern(`^(min|max)-(h|w)-(\d+)(\w{1,3})?`, func(g []string) (Result, error) {
			v, err := dimension(g[2], g[3])
			if err != nil {
				return Result{}, err
			}
			return Declare(g[0]+"-"+sizeProperty(g[1]), v)
		}),

		Static("max-needed-width", Decl("width", "max-content")),
		Static("no-outline", Decl("outline", "none")),
		Static("no-resize", Decl("resize", "none")),
		Static("border-none", Decl("border", "none")),

		// border width
		Pattern(`^(?:border|bd)-(t|r|b|l)?-?(\d+)(\w{1,3})?$`, func(g []string) (Result, error) {
			v, err := dimension(g[1], g[2])
			if err != nil {
				return Result{}, err
			}
			return Declare(borderSide(g[0])+"width", v)
		}),

		// border style
		Pattern(`^(?:border|bd)-(t|r|b|l)?-?(solid|none)$`, func(g []string) (Result, error) {
			return Declare(borderSide(g[0])+"style", g[1])
		}),

		// border color
		Pattern(`^(?:border|bd)-(t|r|b|l)?-?color-([-a-z]+)?$`, func(g []string) (Result, error) {
			return Declare(borderSide(g[0])+"color", "var(--"+g[1]+")")
		}),

		// border radius
		Pattern(`^(?:border|bd)-rad-(\d+)(\w{1,3})?$`, func(g []string) (Result, error) {
			v, err := dimension(g[0], g[1])
			if err != nil {
				return Result{}, err
			}
			return Declare("border-radius", v)
		}),

		// top-left top-right bottom-right bottom-left
		Pattern(`^(?:border|bd)-rad-(\d+)(\w{1,3})?-(\d+)(\w{1,3})?-(\d+)(\w{1,3})?-(\d+)(\w{1,3})?$`, func(g []string) (Result, error) {
			corners := make([]string, 4)
			for i := range corners {
				v, err := dimension(g[2*i], g[2*i+1])
				if err != nil {
					return Result{}, err
				}
				corners[i] = v
			}
			return Declare("border-radius", strings.Join(corners, " "))
		}),

		Pattern(`^box-size-([-a-z]+)$`, func(g []string) (Result, error) {
			return Declare("box-sizing", g[0])
		}),

		Pattern(`^backdrop-blur-(\d+)(\w{1,3})?$`, func(g []string) (Result, error) {
			v, err := dimension(g[0], g[1])
			if err != nil {
				return Result{}, err
			}
			return Declare("backdrop-filter", "blur("+v+")")
		}),

		Pattern(`^aspect-ratio-var-([\w-]+)$`, func(g []string) (Result, error) {
			return Declare("aspect-ratio", "var(--"+g[0]+")")
		}),
	}
}
