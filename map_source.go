// File: lixenwraith/logprops/map_source.go
package logprops

import (
	"maps"
	"slices"
	"sync"
)

// MapSource is an in-memory, case-sensitive property table. Its keys are
// spelled "log4j2.camelCase".
type MapSource struct {
	priority   int
	properties map[string]string
	mutex      sync.RWMutex
}

var (
	_ EnumerableSource = (*MapSource)(nil)

	systemProperties     *MapSource
	systemPropertiesOnce sync.Once
)

// NewMapSource creates a source with a copy of properties.
func NewMapSource(properties map[string]string, priority int) *MapSource {
	copied := maps.Clone(properties)
	if copied == nil {
		copied = make(map[string]string)
	}
	return &MapSource{priority: priority, properties: copied}
}

// SystemProperties returns the process-wide property table consulted before
// any other built-in source.
func SystemProperties() *MapSource {
	systemPropertiesOnce.Do(func() {
		systemProperties = NewMapSource(nil, SystemPropertiesPriority)
	})
	return systemProperties
}

func (s *MapSource) Priority() int { return s.priority }

func (s *MapSource) Property(key string) (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	value, ok := s.properties[key]
	return value, ok
}

func (s *MapSource) Contains(key string) bool {
	_, ok := s.Property(key)
	return ok
}

func (s *MapSource) NormalForm(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return "log4j2." + joinAsCamelCase(tokens)
}

// PropertyNames returns the keys in sorted order.
func (s *MapSource) PropertyNames() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Sorted(maps.Keys(s.properties))
}

// Set defines or replaces a property. Environments observe the change
// through the live scan, and in their caches after the next Reload.
func (s *MapSource) Set(key, value string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.properties[key] = value
}

// Remove deletes a property.
func (s *MapSource) Remove(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.properties, key)
}

// Len returns the number of properties.
func (s *MapSource) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.properties)
}
