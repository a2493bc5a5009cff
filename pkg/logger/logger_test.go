package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/pkg/logger"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestNew_CamposDelServicio(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "almacen-api", Version: "1.4.0", Output: &buf})

	log.Info().Str("number", "RCP-0001").Msg("recepción validada")

	m := lastLine(t, &buf)
	assert.Equal(t, "almacen-api", m["service"])
	assert.Equal(t, "1.4.0", m["version"])
	assert.Equal(t, "RCP-0001", m["number"])
	assert.Equal(t, "info", m["level"])
	assert.Contains(t, m, "time")
}

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Service: "almacen-api", Output: &buf})

	log.Component("deliveries").Warn().Msg("stock bajo")

	m := lastLine(t, &buf)
	assert.Equal(t, "deliveries", m["component"])
	assert.Equal(t, "almacen-api", m["service"])
	assert.NotContains(t, m, "version", "sin versión no se emite el campo")
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Output: &buf})

	log.Info().Msg("oculto")
	assert.Zero(t, buf.Len())

	log.Error().Msg("visible")
	assert.Equal(t, "visible", lastLine(t, &buf)["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" warning "))
	assert.Equal(t, zerolog.TraceLevel, logger.ParseLevel("trace"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verbose"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
}
