package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_SplitsStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	log, err := newLogger("normal", &out, &errOut, false, false)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("built stylesheet", zap.Int("utilities", 12))
	log.Error("build failed", zap.Error(errors.New("boom")))
	require.NoError(t, log.Sync())

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "INFO")
	assert.Contains(t, out.String(), "folio")
	assert.Contains(t, out.String(), "built stylesheet")
	assert.NotContains(t, out.String(), "build failed")
	assert.Contains(t, errOut.String(), "build failed")
}

func TestNewLogger_Debug(t *testing.T) {
	var out bytes.Buffer
	log, err := newLogger("debug", &out, &out, false, false)
	require.NoError(t, err)

	log.Debug("scanning")
	assert.Contains(t, out.String(), "scanning")
}

func TestNewLogger_Levels(t *testing.T) {
	log, err := New("none")
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = New("verbose")
	assert.Error(t, err)
}
