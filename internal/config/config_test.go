package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)
	require.Equal(t, "5175", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.True(t, cfg.WordsStrict)
	require.False(t, cfg.AllowFixedAnswer)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("WORDS_STRICT", "false")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("WORDS_DB", "./data/words.db")

	cfg, err := Parse()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.False(t, cfg.WordsStrict)
	require.Equal(t, 90*time.Minute, cfg.SessionTTL)
	require.Equal(t, "./data/words.db", cfg.WordsDB)
}

func TestParseInvalid(t *testing.T) {
	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "soon")
		_, err := Parse()
		require.Error(t, err)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "0s")
		_, err := Parse()
		require.Error(t, err)
	})
}
