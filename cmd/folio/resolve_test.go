package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ruby-ist/portfolio/cmd/folio/internal/builder"
	"github.com/ruby-ist/portfolio/cmd/folio/internal/config"
	"github.com/ruby-ist/portfolio/pkg/styling"
)

func TestRunResolve(t *testing.T) {
	gen, err := builder.NewGenerator(config.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	var out bytes.Buffer
	err = runResolve(&out, gen, []string{"font-sans", "lg:strict:mt-2", "unknown"})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "font-sans\n  font-family: \"Bellefair\",\"Life Savers\",\"Wix Madefor Text\",\"Tilt Warp\",\"Inter\",ui-sans-serif,system-ui,sans-serif;\n")
	assert.Contains(t, got, "lg:strict:mt-2\n  @media (min-width: 1080px)\n  margin-top: 2px !important;\n")
	assert.Contains(t, got, "\nunknown\n  no match\n")
}

func TestRunResolve_Failures(t *testing.T) {
	gen, err := builder.NewGenerator(config.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	var out bytes.Buffer
	err = runResolve(&out, gen, []string{"mt-1q", "flex", "w-4zz"})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, styling.ErrInvalidUnit)

	var te *styling.TokenError
	require.ErrorAs(t, multierr.Errors(err)[1], &te)
	assert.Equal(t, "w-4zz", te.Token)

	assert.Contains(t, out.String(), "flex\n  display: flex;\n")
}
