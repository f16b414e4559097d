package contextdata

import (
	"maps"
	"slices"
)

// MapAdapter is an immutable ReadOnlyStringMap view over a copy of a Go map.
// Traversal follows ascending key order.
type MapAdapter struct {
	entries map[string]any
	keys    []string
}

var _ ReadOnlyStringMap = (*MapAdapter)(nil)

// NewMapAdapter copies entries into a new adapter.
func NewMapAdapter(entries map[string]any) *MapAdapter {
	copied := maps.Clone(entries)
	if copied == nil {
		copied = map[string]any{}
	}
	return &MapAdapter{
		entries: copied,
		keys:    slices.Sorted(maps.Keys(copied)),
	}
}

func (a *MapAdapter) Size() int     { return len(a.keys) }
func (a *MapAdapter) IsEmpty() bool { return len(a.keys) == 0 }

func (a *MapAdapter) Get(key string) (any, bool) {
	v, ok := a.entries[key]
	return v, ok
}

func (a *MapAdapter) ContainsKey(key string) bool {
	_, ok := a.entries[key]
	return ok
}

func (a *MapAdapter) ForEach(visitor BiConsumer) {
	for _, k := range a.keys {
		visitor(k, a.entries[k])
	}
}

func (a *MapAdapter) ForEachState(visitor TriConsumer, state any) {
	for _, k := range a.keys {
		visitor(k, a.entries[k], state)
	}
}

func (a *MapAdapter) ToMap() map[string]any {
	return maps.Clone(a.entries)
}
