package contextdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapAdapter(t *testing.T) {
	source := map[string]any{"b": 2, "a": 1}
	adapter := NewMapAdapter(source)

	source["c"] = 3
	assert.Equal(t, 2, adapter.Size(), "adapter must not observe later writes to the source map")
	assert.False(t, adapter.ContainsKey("c"))

	var keys []string
	adapter.ForEach(func(key string, value any) { keys = append(keys, key) })
	assert.Equal(t, []string{"a", "b"}, keys)

	v, ok := adapter.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	t.Run("Nil", func(t *testing.T) {
		empty := NewMapAdapter(nil)
		assert.True(t, empty.IsEmpty())
		assert.NotNil(t, empty.ToMap())
	})
}
