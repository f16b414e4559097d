// File: lixenwraith/logprops/context_source_test.go
package logprops_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/lixenwraith/logprops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contextProperties = map[string]string{
	"log4j2.app.StatusLogger.level":   "DEBUG",
	"log4j2.*.StatusLogger.level":     "WARN",
	"log4j2.batch.AsyncLogger.policy": "Discard",
	"log4j2.statusLoggerLevel":        "INFO",
	"plain":                           "value",
}

func TestContextAwareSource(t *testing.T) {
	t.Run("Lenient", func(t *testing.T) {
		src := logprops.NewContextAwareSource(contextProperties, logprops.FilePriority, false, nil)

		assert.False(t, src.IsStrict())
		assert.Equal(t, []string{"*", "app", "batch"}, src.Contexts())
		assert.Len(t, src.PropertyNames(), len(contextProperties))

		value, ok := src.ContextProperty("app", "StatusLogger.level")
		assert.True(t, ok)
		assert.Equal(t, "DEBUG", value)

		value, ok = src.ContextProperty("", "StatusLogger.level")
		assert.True(t, ok)
		assert.Equal(t, "WARN", value)

		value, ok = src.Property("log4j2.batch.AsyncLogger.policy")
		assert.True(t, ok)
		assert.Equal(t, "Discard", value)

		value, ok = src.Property("log4j2.statusLoggerLevel")
		assert.True(t, ok, "malformed keys stay addressable in the default context")
		assert.Equal(t, "INFO", value)
		assert.True(t, src.Contains("plain"))

		assert.False(t, src.Contains("log4j2.batch.StatusLogger.level"))
		assert.Empty(t, src.NormalForm([]string{"status"}))
	})

	t.Run("Strict", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		src := logprops.NewContextAwareSource(contextProperties, logprops.FilePriority, true, logger)

		assert.True(t, src.IsStrict())
		assert.Len(t, src.PropertyNames(), 3)
		assert.False(t, src.Contains("plain"))
		assert.False(t, src.Contains("log4j2.statusLoggerLevel"))

		logged := buf.String()
		assert.Contains(t, logged, "Ignoring malformed context property key")
		assert.Contains(t, logged, "key=plain")
		assert.Contains(t, logged, "key=log4j2.statusLoggerLevel")
	})

	t.Run("In Environment", func(t *testing.T) {
		src := logprops.NewContextAwareSource(contextProperties, logprops.FilePriority, false, nil)
		env := logprops.New(src)

		tests := []struct {
			context string
			want    string
		}{
			{"app", "DEBUG"},
			{"batch", "WARN"},
			{"*", "WARN"},
		}
		for _, tt := range tests {
			value, ok := env.ContextProperty(tt.context, "StatusLogger.level")
			require.True(t, ok, tt.context)
			assert.Equal(t, tt.want, value, tt.context)
		}
		assert.Equal(t, "INFO", env.StringOr("log4j.status-logger-level", ""))
	})
}
