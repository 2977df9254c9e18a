package styling

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func newTestGenerator(opts ...GeneratorOption) *Generator {
	breakpoints, err := BreakpointVariant(DefaultBreakpoints())
	if err != nil {
		panic(err)
	}
	opts = append([]GeneratorOption{
		WithVariants(StrictVariant(), breakpoints),
	}, opts...)
	return NewGenerator(DefaultTable(), opts...)
}

func TestGenerator_Parse(t *testing.T) {
	g := newTestGenerator()

	u, ok, err := g.Parse("mt-4")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ".mt-4", u.Selector)
	assert.Equal(t, ".mt-4{margin-top:4px;}\n", u.CSS())

	_, ok, err = g.Parse("card")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerator_StrictVariant(t *testing.T) {
	g := newTestGenerator()

	u, ok, err := g.Parse("strict:p-1-2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `.strict\:p-1-2{padding:1px 2px !important;}`+"\n", u.CSS())

	u, ok, err = g.Parse("strict:no-scrollbar")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "none !important", u.Result.Declarations.Map()["scrollbar-width"])
	assert.Equal(t, ".no-scrollbar::-webkit-scrollbar {display: none;}", u.Result.Raw)
}

func TestGenerator_BreakpointVariant(t *testing.T) {
	g := newTestGenerator()

	u, ok, err := g.Parse("md:strict:mt-4")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "(min-width: 720px)", u.Media)
	assert.Equal(t,
		"@media (min-width: 720px){\n"+`.md\:strict\:mt-4{margin-top:4px !important;}`+"\n}\n",
		u.CSS())
}

func TestGenerator_AttributeUtility(t *testing.T) {
	g := newTestGenerator()

	assert.Equal(t, `[flex=""]`, AttributeToken("flex"))

	u, ok, err := g.Parse(AttributeToken("flex"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[flex=""]{display:flex;}`+"\n", u.CSS())

	u, ok, err = g.Parse(AttributeToken("sm:strict:mt-4"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "(min-width: 320px)", u.Media)
	assert.Equal(t, `[sm\:strict\:mt-4=""]`, u.Selector)

	_, ok, err = g.Parse(AttributeToken("card"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = g.Parse(AttributeToken("mt-4xy"))
	require.ErrorIs(t, err, ErrInvalidUnit)
	assert.True(t, strings.HasPrefix(err.Error(), `[mt-4xy=""]: `))

	_, ok, err = g.Parse(`[=""]`)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerator_ErrorCarriesFullToken(t *testing.T) {
	g := newTestGenerator()

	_, _, err := g.Parse("lg:mt-4xy")
	require.ErrorIs(t, err, ErrInvalidUnit)
	assert.True(t, strings.HasPrefix(err.Error(), "lg:mt-4xy: "))
}

func TestGenerator_Generate(t *testing.T) {
	g := newTestGenerator(WithPreflight("/* preflight */"))

	sheet, err := g.Generate([]string{
		"mt-10", "lg:flex", "mt-2", "card", "flex", "mt-2", "md:flex", "mt-4xy", "h-1zzz",
	})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, ErrInvalidUnit)

	// rule order, then natural order, media rules last by width
	assert.Equal(t, []string{"mt-2", "mt-10", "flex", "md:flex", "lg:flex"}, sheet.Tokens())

	css := sheet.CSS()
	assert.True(t, strings.HasPrefix(css, "/* preflight */\n"))
	assert.Equal(t, 1, strings.Count(css, ".mt-2{"))
	assert.NotContains(t, css, "card")
}

func TestGenerator_GenerateClean(t *testing.T) {
	sheet, err := newTestGenerator().Generate([]string{"no-scrollbar", "color-primary"})
	require.NoError(t, err)

	assert.Equal(t,
		".no-scrollbar{-ms-overflow-style:none;scrollbar-width:none;}\n"+
			".no-scrollbar::-webkit-scrollbar {display: none;}\n"+
			".color-primary{color:var(--primary);}\n",
		sheet.CSS())
}

func TestEscapeSelector(t *testing.T) {
	tests := map[string]string{
		"mt-4":          "mt-4",
		"-mt-4":         "-mt-4",
		"strict:mt-4":   `strict\:mt-4`,
		"t-1.5":         `t-1\.5`,
		"1col":          `\31 col`,
		"-1":            `-\31 `,
		"-":             `\-`,
		"w-50%":         `w-50\%`,
		"bg-[url(x)]":   `bg-\[url\(x\)\]`,
		"font-f-sans_2": "font-f-sans_2",
	}
	for in, want := range tests {
		assert.Equal(t, want, EscapeSelector(in), in)
	}
}

func TestWebFonts(t *testing.T) {
	fonts := DefaultWebFonts()

	assert.Equal(t,
		"@import url('https://fonts.googleapis.com/css2?family=Bellefair&family=Life+Savers"+
			"&family=Wix+Madefor+Text&family=Tilt+Warp&family=Inter&display=swap');",
		fonts.Import())

	table := DefaultTable(WithGroups(fonts.Group()))
	res, err := table.Resolve("font-sans")
	require.NoError(t, err)
	assert.Equal(t,
		`"Bellefair","Life Savers","Wix Madefor Text","Tilt Warp","Inter",ui-sans-serif,system-ui,sans-serif`,
		res.Declarations.Map()["font-family"])

	assert.Empty(t, WebFonts{Provider: "bunny", Families: fonts.Families}.Import())
	assert.Empty(t, WebFonts{Provider: "google"}.Import())
}

func TestBreakpoint_Pixels(t *testing.T) {
	px, err := Breakpoint{Name: "md", Width: "720px"}.Pixels()
	require.NoError(t, err)
	assert.Equal(t, 720, px)

	_, err = Breakpoint{Name: "md", Width: "45em"}.Pixels()
	assert.ErrorIs(t, err, ErrInvalidBreakpoint)
}

func TestBreakpointVariant_Invalid(t *testing.T) {
	tests := map[string][]Breakpoint{
		"em width":    {{Name: "sm", Width: "320px"}, {Name: "md", Width: "45em"}},
		"not a width": {{Name: "md", Width: "wide px"}},
		"negative":    {{Name: "md", Width: "-1px"}},
		"no name":     {{Width: "720px"}},
	}
	for name, bps := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := BreakpointVariant(bps)
			assert.ErrorIs(t, err, ErrInvalidBreakpoint)
			assert.Nil(t, v)
		})
	}

	v, err := BreakpointVariant(nil)
	require.NoError(t, err)
	_, ok := v("md:mt-4")
	assert.False(t, ok)
}
