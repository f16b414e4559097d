// File: lixenwraith/logprops/env_source_test.go
package logprops_test

import (
	"os"
	"testing"

	"github.com/lixenwraith/logprops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentVariables(t *testing.T) {
	t.Run("Basic Environment Loading", func(t *testing.T) {
		t.Setenv("LOG4J_STATUS_LOGGER_LEVEL", "DEBUG")
		t.Setenv("LOG4J_ASYNC_QUEUE_SIZE", "4096")
		t.Setenv("LOG4J_ENABLE_JMX", "true")

		env := logprops.New(logprops.NewEnvironmentSource())

		assert.Equal(t, "DEBUG", env.StringOr("log4j2.statusLoggerLevel", ""))
		assert.Equal(t, 4096, env.Int("log4j.asyncQueueSize", 0))
		assert.True(t, env.Bool("log4j2.enableJmx", false))
	})

	t.Run("Reload Captures Changes", func(t *testing.T) {
		t.Setenv("LOG4J_RELOAD_PROBE", "before")
		src := logprops.NewEnvironmentSource()
		env := logprops.New(src)
		assert.Equal(t, "before", env.StringOr("log4j2.reloadProbe", ""))

		t.Setenv("LOG4J_RELOAD_PROBE", "after")
		assert.Equal(t, "before", env.StringOr("log4j2.reloadProbe", ""))

		require.NoError(t, env.Reload())
		assert.Equal(t, "after", env.StringOr("log4j2.reloadProbe", ""))

		require.NoError(t, os.Unsetenv("LOG4J_RELOAD_PROBE"))
		require.NoError(t, env.Reload())
		assert.False(t, env.HasProperty("log4j2.reloadProbe"))
	})

	t.Run("Enumeration", func(t *testing.T) {
		t.Setenv("LOG4J_ENUMERATED", "1")
		src := logprops.NewEnvironmentSource()

		assert.Equal(t, logprops.EnvironmentPriority, src.Priority())
		assert.Contains(t, src.PropertyNames(), "LOG4J_ENUMERATED")
		assert.True(t, src.Contains("LOG4J_ENUMERATED"))
		assert.IsNonDecreasing(t, src.PropertyNames())
	})

	t.Run("System Properties Take Precedence", func(t *testing.T) {
		t.Setenv("LOG4J_PRECEDENCE_PROBE", "environment")
		env := logprops.New(
			logprops.NewEnvironmentSource(),
			logprops.NewMapSource(map[string]string{"log4j2.precedenceProbe": "system"}, logprops.SystemPropertiesPriority),
		)
		assert.Equal(t, "system", env.StringOr("LOG4J_PRECEDENCE_PROBE", ""))
		assert.Equal(t, "system", env.StringOr("log4j2.precedenceProbe", ""))
	})
}
