package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_FirstCallWins(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	first := Init(Options{Level: "warn", Output: &buf})
	second := Init(Options{Level: "debug"})

	assert.Equal(t, first.GetLevel(), second.GetLevel())
	assert.Equal(t, zerolog.WarnLevel, first.GetLevel())

	first.Info().Msg("dropped")
	first.Warn().Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestGet_BuildsDefaultLogger(t *testing.T) {
	Reset()
	defer Reset()

	log := Get()
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"Warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "input %q", in)
	}
}
