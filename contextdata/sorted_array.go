// File: lixenwraith/logprops/contextdata/sorted_array.go
package contextdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/bits"
	"reflect"
	"slices"
	"strings"
)

// DefaultInitialCapacity is the capacity used by NewSortedArrayStringMap.
const DefaultInitialCapacity = 4

// SortedArrayStringMap keeps its keys sorted in one slice and the matching
// values at the same positions in a second slice.
//
// The empty key sorts before every other key, so when present it always
// occupies index 0.
//
// A SortedArrayStringMap must be owned by a single goroutine while it is
// mutable. Once frozen it is safe for concurrent readers.
type SortedArrayStringMap struct {
	keys      []string
	values    []any
	size      int
	threshold int
	frozen    bool
	iterating bool
}

var (
	_ IndexedReadOnlyStringMap = (*SortedArrayStringMap)(nil)
	_ StringMap                = (*SortedArrayStringMap)(nil)
)

var emptyMap = func() *SortedArrayStringMap {
	m := &SortedArrayStringMap{threshold: 1}
	m.Freeze()
	return m
}()

// Empty returns a shared frozen map with no entries.
func Empty() *SortedArrayStringMap {
	return emptyMap
}

// NewSortedArrayStringMap creates an empty map with DefaultInitialCapacity.
// Backing storage is allocated on the first Put.
func NewSortedArrayStringMap() *SortedArrayStringMap {
	return &SortedArrayStringMap{threshold: ceilingNextPowerOfTwo(DefaultInitialCapacity)}
}

// NewSortedArrayStringMapWithCapacity creates an empty map whose capacity is
// initialCapacity rounded up to the next power of two.
func NewSortedArrayStringMapWithCapacity(initialCapacity int) (*SortedArrayStringMap, error) {
	if initialCapacity < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, initialCapacity)
	}
	if initialCapacity == 0 {
		initialCapacity = 1
	}
	return &SortedArrayStringMap{threshold: ceilingNextPowerOfTwo(initialCapacity)}, nil
}

// NewSortedArrayStringMapFrom creates a mutable copy of other.
// Copying another SortedArrayStringMap is a bulk slice copy.
func NewSortedArrayStringMapFrom(other ReadOnlyStringMap) *SortedArrayStringMap {
	m := NewSortedArrayStringMap()
	if other == nil {
		return m
	}
	if sorted, ok := other.(*SortedArrayStringMap); ok {
		if sorted != nil {
			m.initFrom(sorted)
		}
		return m
	}
	if other.Size() > 0 {
		m.resize(ceilingNextPowerOfTwo(other.Size()))
	}
	other.ForEachState(putAllVisitor, m)
	return m
}

// Size returns the number of entries.
func (m *SortedArrayStringMap) Size() int {
	return m.size
}

// IsEmpty reports whether the map has no entries.
func (m *SortedArrayStringMap) IsEmpty() bool {
	return m.size == 0
}

// Capacity returns the number of entries the map holds before growing.
func (m *SortedArrayStringMap) Capacity() int {
	return m.threshold
}

// IsFrozen reports whether Freeze has been called.
func (m *SortedArrayStringMap) IsFrozen() bool {
	return m.frozen
}

// Freeze makes the map permanently read-only.
func (m *SortedArrayStringMap) Freeze() {
	m.frozen = true
}

// Get returns the value for key.
func (m *SortedArrayStringMap) Get(key string) (any, bool) {
	index := m.IndexOfKey(key)
	if index < 0 {
		return nil, false
	}
	return m.values[index], true
}

// ContainsKey reports whether key is present.
func (m *SortedArrayStringMap) ContainsKey(key string) bool {
	return m.IndexOfKey(key) >= 0
}

// IndexOfKey binary-searches the sorted keys. A negative result encodes the
// insertion point as -(insertionPoint)-1.
func (m *SortedArrayStringMap) IndexOfKey(key string) int {
	index, found := slices.BinarySearch(m.keys[:m.size], key)
	if found {
		return index
	}
	return -(index + 1)
}

// KeyAt returns the key at index.
func (m *SortedArrayStringMap) KeyAt(index int) (string, bool) {
	if index < 0 || index >= m.size {
		return "", false
	}
	return m.keys[index], true
}

// ValueAt returns the value at index.
func (m *SortedArrayStringMap) ValueAt(index int) (any, bool) {
	if index < 0 || index >= m.size {
		return nil, false
	}
	return m.values[index], true
}

// Put inserts or replaces the value for key.
func (m *SortedArrayStringMap) Put(key string, value any) error {
	if err := m.assertMutable(); err != nil {
		return err
	}
	if m.keys == nil {
		m.inflateTable(m.threshold)
	}
	index := m.IndexOfKey(key)
	if index >= 0 {
		m.values[index] = value
		return nil
	}
	m.insertAt(-(index + 1), key, value)
	return nil
}

// PutAll copies every entry of source into the map, replacing values of
// keys that already exist.
//
// Copying the map into itself, or copying an empty or nil source, never
// modifies the map and succeeds even when the map is frozen.
func (m *SortedArrayStringMap) PutAll(source ReadOnlyStringMap) error {
	if source == nil {
		return nil
	}
	other, sameKind := source.(*SortedArrayStringMap)
	if sameKind && (other == nil || other == m) {
		return nil
	}
	if source.IsEmpty() {
		return nil
	}
	if err := m.assertMutable(); err != nil {
		return err
	}

	if sameKind {
		if m.size == 0 {
			m.initFrom(other)
		} else {
			m.merge(other)
		}
		return nil
	}
	source.ForEachState(putAllVisitor, m)
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (m *SortedArrayStringMap) Remove(key string) error {
	if err := m.assertMutable(); err != nil {
		return err
	}
	index := m.IndexOfKey(key)
	if index < 0 {
		return nil
	}
	copy(m.keys[index:m.size-1], m.keys[index+1:m.size])
	copy(m.values[index:m.size-1], m.values[index+1:m.size])
	m.size--
	m.keys[m.size] = ""
	m.values[m.size] = nil
	return nil
}

// Clear removes all entries but keeps the backing storage.
func (m *SortedArrayStringMap) Clear() error {
	if err := m.assertMutable(); err != nil {
		return err
	}
	clear(m.keys[:m.size])
	clear(m.values[:m.size])
	m.size = 0
	return nil
}

// TrimToSize shrinks the backing storage to the number of entries.
func (m *SortedArrayStringMap) TrimToSize() error {
	if err := m.assertMutable(); err != nil {
		return err
	}
	if len(m.keys) <= m.size {
		return nil
	}
	if m.size == 0 {
		m.keys, m.values, m.threshold = nil, nil, 1
		return nil
	}
	m.resize(m.size)
	return nil
}

// ForEach calls visitor for every entry in ascending key order.
// The visitor must not mutate the map.
func (m *SortedArrayStringMap) ForEach(visitor BiConsumer) {
	if m.size == 0 {
		return
	}
	if !m.frozen {
		prev := m.iterating
		m.iterating = true
		defer func() { m.iterating = prev }()
	}
	for i := 0; i < m.size; i++ {
		visitor(m.keys[i], m.values[i])
	}
}

// ForEachState calls visitor for every entry in ascending key order,
// passing state through unchanged.
func (m *SortedArrayStringMap) ForEachState(visitor TriConsumer, state any) {
	if m.size == 0 {
		return
	}
	if !m.frozen {
		prev := m.iterating
		m.iterating = true
		defer func() { m.iterating = prev }()
	}
	for i := 0; i < m.size; i++ {
		visitor(m.keys[i], m.values[i], state)
	}
}

// ToMap returns a copy of the entries.
func (m *SortedArrayStringMap) ToMap() map[string]any {
	result := make(map[string]any, m.size)
	for i := 0; i < m.size; i++ {
		result[m.keys[i]] = m.values[i]
	}
	return result
}

// Equal reports whether other holds the same keys with equal values.
func (m *SortedArrayStringMap) Equal(other ReadOnlyStringMap) bool {
	if other == nil {
		return false
	}
	if sorted, ok := other.(*SortedArrayStringMap); ok {
		if sorted == m {
			return true
		}
		if sorted == nil || sorted.size != m.size {
			return false
		}
		for i := 0; i < m.size; i++ {
			if m.keys[i] != sorted.keys[i] || !reflect.DeepEqual(m.values[i], sorted.values[i]) {
				return false
			}
		}
		return true
	}
	if other.Size() != m.size {
		return false
	}
	for i := 0; i < m.size; i++ {
		v, ok := other.Get(m.keys[i])
		if !ok || !reflect.DeepEqual(m.values[i], v) {
			return false
		}
	}
	return true
}

// String renders the entries as {key=value, ...}.
func (m *SortedArrayStringMap) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < m.size; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.keys[i])
		b.WriteByte('=')
		fmt.Fprint(&b, m.values[i])
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the map as a JSON object with keys in sorted order.
func (m *SortedArrayStringMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < m.size; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.keys[i])
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[i])
		if err != nil {
			return nil, fmt.Errorf("failed to encode value for key %q: %w", m.keys[i], err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the contents with the entries of a JSON object.
// Numbers are kept as json.Number.
func (m *SortedArrayStringMap) UnmarshalJSON(data []byte) error {
	if err := m.assertMutable(); err != nil {
		return err
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var entries map[string]any
	if err := decoder.Decode(&entries); err != nil {
		return fmt.Errorf("failed to decode context data: %w", err)
	}
	if m.threshold == 0 {
		m.threshold = ceilingNextPowerOfTwo(DefaultInitialCapacity)
	}
	if err := m.Clear(); err != nil {
		return err
	}
	for k, v := range entries {
		if err := m.Put(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (m *SortedArrayStringMap) assertMutable() error {
	if m.frozen {
		return ErrFrozen
	}
	if m.iterating {
		return ErrConcurrentModification
	}
	return nil
}

func (m *SortedArrayStringMap) inflateTable(capacity int) {
	m.threshold = capacity
	m.keys = make([]string, capacity)
	m.values = make([]any, capacity)
}

func (m *SortedArrayStringMap) insertAt(index int, key string, value any) {
	m.ensureCapacity()
	copy(m.keys[index+1:m.size+1], m.keys[index:m.size])
	copy(m.values[index+1:m.size+1], m.values[index:m.size])
	m.keys[index] = key
	m.values[index] = value
	m.size++
}

func (m *SortedArrayStringMap) ensureCapacity() {
	if m.size >= m.threshold || m.size >= len(m.keys) {
		m.resize(max(m.threshold*2, 1))
	}
}

func (m *SortedArrayStringMap) resize(capacity int) {
	keys := make([]string, capacity)
	values := make([]any, capacity)
	copy(keys, m.keys[:m.size])
	copy(values, m.values[:m.size])
	m.keys = keys
	m.values = values
	m.threshold = capacity
}

// initFrom bulk-copies other into this empty map.
func (m *SortedArrayStringMap) initFrom(other *SortedArrayStringMap) {
	if len(m.keys) < other.size {
		m.keys = make([]string, other.threshold)
		m.values = make([]any, other.threshold)
	}
	copy(m.keys, other.keys[:other.size])
	copy(m.values, other.values[:other.size])
	m.size = other.size
	m.threshold = other.threshold
	if len(m.keys) > 0 {
		m.threshold = len(m.keys)
	}
}

// merge combines other into this non-empty map. The larger set of entries is
// laid down first and the smaller set is inserted into it; values coming from
// other win on duplicate keys.
func (m *SortedArrayStringMap) merge(other *SortedArrayStringMap) {
	myKeys := m.keys
	myValues := m.values
	newSize := other.size + m.size
	m.threshold = ceilingNextPowerOfTwo(newSize)
	if len(m.keys) < m.threshold {
		m.keys = make([]string, m.threshold)
		m.values = make([]any, m.threshold)
	}

	overwrite := true
	if other.size > m.size {
		// own entries move behind other's, then get inserted without overwriting
		copy(m.keys[other.size:], myKeys[:m.size])
		copy(m.values[other.size:], myValues[:m.size])
		copy(m.keys, other.keys[:other.size])
		copy(m.values, other.values[:other.size])
		m.size = other.size
		overwrite = false
	} else {
		copy(m.keys, myKeys[:m.size])
		copy(m.values, myValues[:m.size])
		copy(m.keys[m.size:], other.keys[:other.size])
		copy(m.values[m.size:], other.values[:other.size])
	}

	for i := m.size; i < newSize; i++ {
		index := m.IndexOfKey(m.keys[i])
		if index < 0 {
			m.insertAt(-(index + 1), m.keys[i], m.values[i])
		} else if overwrite {
			m.values[index] = m.values[i]
		}
	}
	clear(m.keys[m.size:newSize])
	clear(m.values[m.size:newSize])
}

func putAllVisitor(key string, value any, state any) {
	// the target is never the map being traversed, so Put cannot fail here
	_ = state.(*SortedArrayStringMap).Put(key, value)
}

func ceilingNextPowerOfTwo(x int) int {
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(x-1))
}
