// File: lixenwraith/logprops/json_source.go
package logprops

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// JSONRootKey is the top-level key of a JSON property document.
const JSONRootKey = "log4j2"

// keys of a JSON document: log4j2.<context>.<component>.<key>
var compositeKeyPattern = regexp.MustCompile(`^log4j2\.([^.]+)\.([^.]+)\.([^.]+)$`)

// JSONSource serves properties from a JSON document of the form
//
//	{"log4j2": {"<context>": {"<component>": {"<key>": value}}}}
//
// Nested objects flatten to dotted keys and arrays to comma-joined strings.
// The original JSON values stay available through Value.
type JSONSource struct {
	priority int
	values   map[string]any
	text     map[string]string
}

var (
	_ EnumerableSource = (*JSONSource)(nil)
	_ ContextualSource = (*JSONSource)(nil)
	_ ValueSource      = (*JSONSource)(nil)
)

// NewJSONSource parses data. Numbers keep their precision as json.Number.
func NewJSONSource(data []byte, priority int) (*JSONSource, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var document map[string]any
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return newJSONSourceFromMap(document, priority)
}

func newJSONSourceFromMap(document map[string]any, priority int) (*JSONSource, error) {
	root, ok := document[JSONRootKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q root object", ErrInvalidDocument, JSONRootKey)
	}

	values := flattenMap(root, JSONRootKey)
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if !compositeKeyPattern.MatchString(key) {
			return nil, fmt.Errorf("%w: %q is not of the form %s.<context>.<component>.<key>",
				ErrInvalidDocument, key, JSONRootKey)
		}
	}

	s := &JSONSource{
		priority: priority,
		values:   values,
		text:     make(map[string]string, len(values)),
	}
	for key, value := range values {
		s.text[key] = stringifyValue(value)
	}
	return s, nil
}

func (s *JSONSource) Priority() int { return s.priority }

// Lookup resolves a composite key, rejecting keys that are not of the form
// log4j2.<context>.<component>.<key> with ErrMalformedKey.
func (s *JSONSource) Lookup(key string) (string, bool, error) {
	if !compositeKeyPattern.MatchString(key) {
		return "", false, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}
	value, ok := s.text[key]
	return value, ok, nil
}

// Property is Lookup with malformed keys reported as absent, since an
// Environment probes every source with every spelling of a key.
func (s *JSONSource) Property(key string) (string, bool) {
	value, ok, err := s.Lookup(key)
	if err != nil {
		return "", false
	}
	return value, ok
}

func (s *JSONSource) Contains(key string) bool {
	_, ok := s.Property(key)
	return ok
}

// NormalForm returns "" because component boundaries cannot be recovered
// from tokens. JSON properties are matched literally or by tokens.
func (s *JSONSource) NormalForm([]string) string { return "" }

func (s *JSONSource) PropertyNames() []string {
	return slices.Sorted(maps.Keys(s.text))
}

// ContextProperty resolves "<component>.<key>" within context.
func (s *JSONSource) ContextProperty(context, key string) (string, bool) {
	if context == "" {
		context = DefaultContext
	}
	return s.Property(JSONRootKey + "." + context + "." + key)
}

// ComponentProperty resolves key of component within context. A context,
// component or key that would not form a composite key yields
// ErrMalformedKey.
func (s *JSONSource) ComponentProperty(context, component, key string) (string, bool, error) {
	if context == "" {
		context = DefaultContext
	}
	return s.Lookup(JSONRootKey + "." + context + "." + component + "." + key)
}

// Value returns the JSON value for a composite key: string, bool,
// json.Number or []any.
func (s *JSONSource) Value(key string) (any, bool) {
	if !compositeKeyPattern.MatchString(key) {
		return nil, false
	}
	value, ok := s.values[key]
	return value, ok
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, element := range v {
			parts = append(parts, stringifyValue(element))
		}
		return strings.Join(parts, ",")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// numberOf extracts an integral value from a decoded document value.
func numberOf(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil && f == math.Trunc(f) {
			return int64(f), true
		}
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v == math.Trunc(v) {
			return int64(v), true
		}
	}
	return 0, false
}
