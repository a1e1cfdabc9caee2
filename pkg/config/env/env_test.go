package env

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookups(t *testing.T) {
	t.Setenv("NP_STRING", "  value ")
	t.Setenv("NP_BLANK", "  ")
	t.Setenv("NP_BOOL", "true")
	t.Setenv("NP_FLOAT", "2.5")
	t.Setenv("NP_INT", "3")
	t.Setenv("NP_DURATION", "1500ms")
	t.Setenv("NP_BAD", "abc")
	t.Setenv("NP_NEGATIVE", "-1")

	assert.Equal(t, "value", String("NP_STRING", "def"))
	assert.Equal(t, "def", String("NP_BLANK", "def"))

	b, err := Bool("NP_BOOL", false)
	require.NoError(t, err)
	assert.True(t, b)

	f, err := Float("NP_FLOAT", 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	n, err := Int("NP_INT", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	d, err := Duration("NP_DURATION", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	d, err = Duration("NP_UNSET", time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)

	_, err = Bool("NP_BAD", false)
	assert.Error(t, err)
	_, err = Float("NP_NEGATIVE", 0)
	assert.Error(t, err)
	for _, v := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "1e400"} {
		t.Setenv("NP_NON_FINITE", v)
		_, err = Float("NP_NON_FINITE", 0)
		assert.Error(t, err, v)
	}
	_, err = Int("NP_BAD", 0)
	assert.Error(t, err)
	_, err = Duration("NP_NEGATIVE", 0)
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		value    string
		expected slog.Level
	}{
		{value: "", expected: slog.LevelInfo},
		{value: "DEBUG", expected: slog.LevelDebug},
		{value: "warn", expected: slog.LevelWarn},
		{value: "error", expected: slog.LevelError},
		{value: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("NP_LOG_LEVEL", tt.value)
			assert.Equal(t, tt.expected, LogLevel("NP_LOG_LEVEL"))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("NP_FROM_FILE=loaded\n"), 0o600))

	t.Setenv("ENV_PATH", path)
	t.Setenv("NP_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("NP_FROM_FILE"))

	require.NoError(t, LoadDotEnv("", "unused"))
	assert.Equal(t, "loaded", os.Getenv("NP_FROM_FILE"))

	t.Setenv("ENV_PATH", filepath.Join(dir, "missing.env"))
	assert.NoError(t, LoadDotEnv("production", "unused"))
	assert.Error(t, LoadDotEnv("local", "unused"))
}
