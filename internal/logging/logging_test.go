package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Setup(Options{Level: "warn", Format: "json", Out: &buf}))

	log.Info().Msg("hidden")
	log.Warn().Str("component", "test").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "test", line["component"])
}

func TestSetupFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairscan.log")
	var buf bytes.Buffer
	require.NoError(t, Setup(Options{Level: "debug", Format: "console", File: path, Out: &buf}))

	log.Debug().Msg("to both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to both"`)
	assert.Contains(t, buf.String(), "to both")
}

func TestSetupInvalidFormat(t *testing.T) {
	assert.Error(t, Setup(Options{Format: "xml"}))
}
