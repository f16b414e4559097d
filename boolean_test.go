// File: lixenwraith/logprops/boolean_test.go
package logprops_test

import (
	"testing"

	"github.com/lixenwraith/logprops"
	"github.com/stretchr/testify/assert"
)

func TestBooleanProperty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		found   bool
		want    logprops.BooleanProperty
		resolve bool // with absentDefault=false, presentDefault=true
	}{
		{"Absent", "", false, logprops.Absent, false},
		{"PresentEmpty", "", true, logprops.Present, true},
		{"True", "true", true, logprops.True, true},
		{"TrueAnyCase", "TrUe", true, logprops.True, true},
		{"PaddedTrue", " true ", true, logprops.False, false},
		{"False", "false", true, logprops.False, false},
		{"Other", "yes", true, logprops.False, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logprops.ParseBooleanProperty(tt.value, tt.found)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.resolve, got.Resolve(false, true))
		})
	}

	t.Run("IsSet", func(t *testing.T) {
		assert.False(t, logprops.Absent.IsSet())
		assert.True(t, logprops.Present.IsSet())
		assert.Equal(t, "present", logprops.Present.String())
	})
}

func TestEnvironmentBoolean(t *testing.T) {
	env := logprops.New(logprops.NewMapSource(map[string]string{
		"log4j2.empty":   "",
		"log4j2.enabled": "TRUE",
		"log4j2.other":   "on",
	}, 0))

	assert.Equal(t, logprops.Absent, env.BooleanProperty("log4j2.flag"))
	assert.True(t, env.BoolWithDefaults("log4j2.flag", true, false))
	assert.False(t, env.BoolWithDefaults("log4j2.empty", true, false))
	assert.True(t, env.BoolWithDefaults("log4j2.empty", false, true))
	assert.True(t, env.Bool("log4j2.enabled", false))
	assert.False(t, env.Bool("log4j2.other", true))
	assert.True(t, env.Bool("log4j2.empty", true))
}
