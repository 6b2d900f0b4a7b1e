package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"off":     zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := ParseLevel(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := ParseLevel("")
	assert.False(t, ok)
	_, ok = ParseLevel("loud")
	assert.False(t, ok)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:     "error",
		EnvLogTimestamp: "false",
		EnvLogNoColor:   "1",
	}
	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnv(&cfg, func(k string) string { return env[k] })
	assert.Equal(t, zerolog.ErrorLevel, cfg.Level)
	assert.False(t, cfg.Timestamp)
	assert.True(t, cfg.NoColor)

	cfg = DefaultConfig(ProfileTest)
	ApplyEnv(&cfg, func(string) string { return "junk" })
	assert.Equal(t, zerolog.DebugLevel, cfg.Level)
}

func TestNew(t *testing.T) {
	var out bytes.Buffer
	l := New("zcdump", Config{Level: zerolog.InfoLevel, NoColor: true, Out: &out})
	l.Debug().Msg("hidden")
	l.Info().Int("frames", 3).Msg("decoded")
	s := out.String()
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, s, "decoded")
	assert.Contains(t, s, "frames=3")
	assert.Contains(t, s, "app=zcdump")
}
