// File: lixenwraith/logprops/source_test.go
package logprops_test

import (
	"testing"

	"github.com/lixenwraith/logprops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalForms(t *testing.T) {
	tokens := []string{"foo", "bar", "property"}

	t.Run("Map Source", func(t *testing.T) {
		src := logprops.NewMapSource(nil, 0)
		assert.Equal(t, "log4j2.fooBarProperty", src.NormalForm(tokens))
		assert.Empty(t, src.NormalForm(nil))
	})

	t.Run("Environment Source", func(t *testing.T) {
		src := logprops.NewEnvironmentSource()
		assert.Equal(t, "LOG4J_FOO_BAR_PROPERTY", src.NormalForm(tokens))
		assert.Equal(t, "LOG4J_FOO_BAR_PROPERTY", src.NormalForm(logprops.Tokenize("log4j2.fooBarProperty")))
		assert.Empty(t, src.NormalForm([]string{}))
	})

	t.Run("Func Source", func(t *testing.T) {
		src := logprops.NewFuncSource(nil, 0, nil)
		assert.Equal(t, "log4j2.fooBarProperty", src.NormalForm(tokens))

		custom := logprops.NewFuncSource(nil, 0, func(tokens []string) string { return "custom" })
		assert.Equal(t, "custom", custom.NormalForm(tokens))
	})
}

func TestCompositeKey(t *testing.T) {
	tests := []struct {
		name    string
		context string
		key     string
		want    string
	}{
		{"Default Context", "*", "level", "level"},
		{"Empty Context", "", "level", "level"},
		{"Prefixed", "app", "level", "log4j2.app.level"},
		{"Wildcard", "app", "log4j2.*.StatusLogger.level", "log4j2.app.StatusLogger.level"},
		{"Wildcard Default Context", "*", "log4j2.*.StatusLogger.level", "log4j2.*.StatusLogger.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logprops.CompositeKey(tt.context, tt.key))
		})
	}
}

func TestSourceHelpers(t *testing.T) {
	src := logprops.NewMapSource(map[string]string{
		"log4j2.list":         "a, b;c,, ;d",
		"log4j2.number":       " 42 ",
		"log4j2.big":          "9223372036854775807",
		"log4j2.notNumber":    "4x",
		"log4j2.flag":         "true",
		"log4j2.app.level":    "DEBUG",
		"log4j2.empty.string": "",
	}, 0)

	t.Run("List", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c", "d"}, logprops.List(src, "log4j2.list"))
		assert.Nil(t, logprops.List(src, "log4j2.missing"))
		assert.Empty(t, logprops.List(src, "log4j2.empty.string"))
	})

	t.Run("Numbers", func(t *testing.T) {
		n, ok := logprops.Int(src, "log4j2.number")
		assert.True(t, ok)
		assert.Equal(t, 42, n)

		big, ok := logprops.Int64(src, "log4j2.big")
		assert.True(t, ok)
		assert.Equal(t, int64(9223372036854775807), big)

		_, ok = logprops.Int(src, "log4j2.notNumber")
		assert.False(t, ok)
		_, ok = logprops.Int64(src, "log4j2.missing")
		assert.False(t, ok)
	})

	t.Run("Bool", func(t *testing.T) {
		assert.Equal(t, logprops.True, logprops.Bool(src, "log4j2.flag"))
		assert.Equal(t, logprops.Present, logprops.Bool(src, "log4j2.empty.string"))
		assert.Equal(t, logprops.Absent, logprops.Bool(src, "log4j2.missing"))
	})

	t.Run("Context Property", func(t *testing.T) {
		value, ok := logprops.ContextProperty(src, "app", "level")
		require.True(t, ok)
		assert.Equal(t, "DEBUG", value)

		_, ok = logprops.ContextProperty(src, "other", "level")
		assert.False(t, ok)
	})
}

func TestMapSource(t *testing.T) {
	input := map[string]string{"log4j2.b": "2", "log4j2.a": "1"}
	src := logprops.NewMapSource(input, 7)
	input["log4j2.c"] = "3"

	assert.Equal(t, 7, src.Priority())
	assert.Equal(t, []string{"log4j2.a", "log4j2.b"}, src.PropertyNames())
	assert.False(t, src.Contains("log4j2.c"), "source must copy its input")

	src.Set("log4j2.c", "3")
	assert.True(t, src.Contains("log4j2.c"))
	src.Remove("log4j2.a")
	assert.Equal(t, 2, src.Len())

	t.Run("Case Sensitive", func(t *testing.T) {
		assert.False(t, src.Contains("LOG4J2.B"))
	})

	t.Run("System Properties Singleton", func(t *testing.T) {
		assert.Same(t, logprops.SystemProperties(), logprops.SystemProperties())
		assert.Equal(t, logprops.SystemPropertiesPriority, logprops.SystemProperties().Priority())
	})
}

func TestFuncSource(t *testing.T) {
	calls := 0
	src := logprops.NewFuncSource(func(key string) (string, bool) {
		calls++
		if key == "log4j2.lazy" {
			return "computed", true
		}
		return "", false
	}, 5, nil)

	value, ok := src.Property("log4j2.lazy")
	assert.True(t, ok)
	assert.Equal(t, "computed", value)
	assert.False(t, src.Contains("log4j2.other"))
	assert.Equal(t, 2, calls)

	_, isEnumerable := any(src).(logprops.EnumerableSource)
	assert.False(t, isEnumerable)
}
