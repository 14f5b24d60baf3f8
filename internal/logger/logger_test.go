package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("info"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write text lines with key values", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: InfoLevel, Output: &buf})

		log.Info("[ok] acme.png", "size", "400x400")
		log.Debug("hidden")

		out := buf.String()
		assert.Contains(t, out, "[ok] acme.png")
		assert.Contains(t, out, "size=400x400")
		assert.NotContains(t, out, "hidden")
	})

	t.Run("Should write JSON when requested", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: DebugLevel, Output: &buf, JSON: true})

		log.Warn("[skip] blank.png", "reason", "image has no visible content")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "[skip] blank.png", entry["msg"])
		assert.Equal(t, "image has no visible content", entry["reason"])
	})

	t.Run("Should fall back to defaults for nil config", func(t *testing.T) {
		assert.NotNil(t, NewLogger(nil))
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expected := NewLogger(TestConfig())
		ctx := ContextWithLogger(context.Background(), expected)

		assert.Equal(t, expected, FromContext(ctx))
	})

	t.Run("Should return default logger when missing or wrong type", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
		ctx := context.WithValue(context.Background(), LoggerCtxKey, "not a logger")
		assert.NotNil(t, FromContext(ctx))
	})

	t.Run("Should use the logger installed with SetDefault", func(t *testing.T) {
		previous := FromContext(context.Background())
		t.Cleanup(func() { SetDefault(previous) })

		custom := NewLogger(TestConfig())
		SetDefault(custom)

		assert.Equal(t, custom, FromContext(context.Background()))
	})
}
