// File: lixenwraith/logprops/contextdata/stringmap.go
package contextdata

import "errors"

var (
	// ErrFrozen is returned by every mutator of a frozen map.
	ErrFrozen = errors.New("contextdata: unsupported operation on frozen map")
	// ErrConcurrentModification is returned when a map is mutated while a
	// traversal of the same map is in progress.
	ErrConcurrentModification = errors.New("contextdata: concurrent modification during iteration")
	// ErrInvalidCapacity is returned for negative initial capacities.
	ErrInvalidCapacity = errors.New("contextdata: initial capacity must be at least 0")
)

// BiConsumer receives each key and value during a traversal.
type BiConsumer func(key string, value any)

// TriConsumer receives each key and value plus a caller-supplied state, so
// the visitor itself can be a stateless package-level function.
type TriConsumer func(key string, value any, state any)

// ReadOnlyStringMap is a read-only view of string keys mapped to arbitrary values.
type ReadOnlyStringMap interface {
	// Size returns the number of entries.
	Size() int
	// IsEmpty reports whether the map has no entries.
	IsEmpty() bool
	// Get returns the value for key and whether it is present.
	Get(key string) (any, bool)
	// ContainsKey reports whether key is present.
	ContainsKey(key string) bool
	// ForEach calls visitor for every entry in ascending key order.
	ForEach(visitor BiConsumer)
	// ForEachState calls visitor for every entry, passing state through.
	ForEachState(visitor TriConsumer, state any)
	// ToMap returns a copy of the entries as a Go map.
	ToMap() map[string]any
}

// IndexedReadOnlyStringMap adds positional access over the sorted entries.
type IndexedReadOnlyStringMap interface {
	ReadOnlyStringMap
	// KeyAt returns the key at index, or false if index is out of range.
	KeyAt(index int) (string, bool)
	// ValueAt returns the value at index, or false if index is out of range.
	ValueAt(index int) (any, bool)
	// IndexOfKey returns the position of key, or a negative number
	// (-(insertion point)-1) when absent.
	IndexOfKey(key string) int
}

// StringMap is a mutable string-keyed map that can be frozen.
type StringMap interface {
	ReadOnlyStringMap
	Put(key string, value any) error
	PutAll(source ReadOnlyStringMap) error
	Remove(key string) error
	Clear() error
	Freeze()
	IsFrozen() bool
}

// Value returns the value stored under key converted to V.
// The second result is false when the key is absent or holds another type.
func Value[V any](m ReadOnlyStringMap, key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	raw, ok := m.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(V)
	return v, ok
}
