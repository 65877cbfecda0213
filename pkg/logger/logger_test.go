package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warning "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNew_JSONConCamposFijos(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "cantar-api", PlantID: "plant-cluj", Output: &buf})

	l.Debug().Msg("no se escribe")
	c := l.Component("cantar.console")
	c.Info().Str("code", "C261016-001").Msg("pesaje nuevo en cola")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "cantar-api", line["service"])
	assert.Equal(t, "plant-cluj", line["plant_id"])
	assert.Equal(t, "cantar.console", line["component"])
	assert.Equal(t, "C261016-001", line["code"])
}
