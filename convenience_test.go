// FILE: lixenwraith/logprops/convenience_test.go
package logprops_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/logprops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQuickFunctions tests the convenience Quick functions
func TestQuickFunctions(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "quick.properties")
	require.NoError(t, os.WriteFile(configFile, []byte("log4j2.quickLevel = TRACE\n"), 0644))

	t.Run("Quick", func(t *testing.T) {
		env, err := logprops.Quick(configFile)
		require.NoError(t, err)
		assert.Equal(t, "TRACE", env.StringOr("log4j2.quickLevel", ""))
		assert.Equal(t, "TRACE", env.StringOr("LOG4J_QUICK_LEVEL", ""))
	})

	t.Run("QuickWithoutFile", func(t *testing.T) {
		env, err := logprops.Quick("")
		require.NoError(t, err)
		assert.False(t, env.HasProperty("log4j2.quickLevel"))
	})

	t.Run("QuickMissingFile", func(t *testing.T) {
		env, err := logprops.Quick(filepath.Join(tmpDir, "missing.properties"))
		assert.ErrorIs(t, err, logprops.ErrConfigNotFound)
		assert.NotNil(t, env)
	})

	t.Run("MustQuickPanic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			env := logprops.MustQuick(configFile)
			assert.NotNil(t, env)
		})

		broken := filepath.Join(tmpDir, "broken.json")
		require.NoError(t, os.WriteFile(broken, []byte(`[]`), 0644))
		assert.Panics(t, func() {
			logprops.MustQuick(broken)
		})
	})
}

// TestDebugAndDump tests debug output functions
func TestDebugAndDump(t *testing.T) {
	low := logprops.NewMapSource(map[string]string{
		"log4j2.status.level": "WARN",
		"log4j2.status.dest":  "err",
	}, 0)
	high := logprops.NewMapSource(map[string]string{
		"log4j2.status.level": "ERROR",
		"log4j2.async":        "true",
	}, 100)
	env := logprops.New(high, low)

	t.Run("Debug", func(t *testing.T) {
		debug := env.Debug()

		assert.Contains(t, debug, "Property Debug Info")
		assert.Contains(t, debug, "Sources (resolution order):")
		assert.Contains(t, debug, "1. *logprops.MapSource (priority 0)")
		assert.Contains(t, debug, "2. *logprops.MapSource (priority 100)")
		assert.Contains(t, debug, "log4j2.status.level:")
		assert.Contains(t, debug, "Current: WARN")
		assert.Contains(t, debug, "1. *logprops.MapSource: WARN")
		assert.Contains(t, debug, "2. *logprops.MapSource: ERROR")
	})

	t.Run("Dump", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, env.Dump(&buf))

		output := buf.String()
		assert.Contains(t, output, "[log4j2.status]")
		assert.Contains(t, output, `level = "WARN"`)

		var decoded map[string]any
		_, err := toml.Decode(output, &decoded)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"log4j2": map[string]any{
				"async": "true",
				"status": map[string]any{
					"level": "WARN",
					"dest":  "err",
				},
			},
		}, decoded)
	})
}
