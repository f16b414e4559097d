// File: lixenwraith/logprops/source.go
package logprops

import (
	"strconv"
	"strings"
)

// DefaultContext is the reserved context name meaning "no specific context".
const DefaultContext = "*"

// Priorities of the built-in sources. Lower values are consulted first.
const (
	SystemPropertiesPriority = 0
	EnvironmentPriority      = 100
	FilePriority             = 200
	JSONPriority             = 300
)

// PropertySource is a single provider of string properties.
type PropertySource interface {
	// Priority orders sources within an Environment. Sources with lower
	// values are consulted first and win over later ones.
	Priority() int

	// Property returns the value for key.
	Property(key string) (string, bool)

	// Contains reports whether key is defined.
	Contains(key string) bool

	// NormalForm spells a token sequence the way this source names its keys.
	// It returns "" when tokens is empty or the source has no such spelling.
	NormalForm(tokens []string) string
}

// EnumerableSource is a PropertySource that can list its keys. Only
// enumerable sources contribute to the Environment caches; the others are
// consulted by the live scan on a cache miss.
type EnumerableSource interface {
	PropertySource
	PropertyNames() []string
}

// ReloadableSource is a PropertySource whose content can be refreshed.
type ReloadableSource interface {
	PropertySource
	Reload() error
}

// ContextualSource overrides how a source resolves context-scoped keys.
type ContextualSource interface {
	PropertySource
	ContextProperty(context, key string) (string, bool)
}

// ValueSource exposes property values before they were converted to
// strings, such as JSON numbers and booleans.
type ValueSource interface {
	Value(key string) (any, bool)
}

// CompositeKey builds the key for key within context. The default context
// leaves key unchanged; a '*' in key is replaced by the context name;
// otherwise the key is prefixed with "log4j2.<context>.".
func CompositeKey(context, key string) string {
	if context == "" || context == DefaultContext {
		return key
	}
	if strings.Contains(key, "*") {
		return strings.Replace(key, "*", context, 1)
	}
	return "log4j2." + context + "." + key
}

// ContextProperty looks up key scoped to context on src.
func ContextProperty(src PropertySource, context, key string) (string, bool) {
	if cs, ok := src.(ContextualSource); ok {
		return cs.ContextProperty(context, key)
	}
	return src.Property(CompositeKey(context, key))
}

// List splits a comma or semicolon separated property into trimmed,
// non-empty elements. An absent property yields nil.
func List(src PropertySource, key string) []string {
	value, ok := src.Property(key)
	if !ok {
		return nil
	}
	return splitList(value)
}

// Bool returns the tri-state boolean for key on src.
func Bool(src PropertySource, key string) BooleanProperty {
	if raw, ok := rawOf(src, key); ok {
		if b, isBool := raw.(bool); isBool {
			if b {
				return True
			}
			return False
		}
	}
	value, ok := src.Property(key)
	return ParseBooleanProperty(value, ok)
}

// Int parses key on src as an int. Parse failures report false.
func Int(src PropertySource, key string) (int, bool) {
	v, ok := Int64(src, key)
	if !ok || v != int64(int(v)) {
		return 0, false
	}
	return int(v), true
}

// Int64 parses key on src as an int64. Parse failures report false.
func Int64(src PropertySource, key string) (int64, bool) {
	if raw, ok := rawOf(src, key); ok {
		if n, isNum := numberOf(raw); isNum {
			return n, true
		}
	}
	value, ok := src.Property(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func rawOf(src PropertySource, key string) (any, bool) {
	if vs, ok := src.(ValueSource); ok {
		return vs.Value(key)
	}
	return nil, false
}

func splitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ';' })
	result := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			result = append(result, f)
		}
	}
	return result
}

// joinAsCamelCase joins tokens as "fooBarBaz".
func joinAsCamelCase(tokens []string) string {
	var b strings.Builder
	for i, token := range tokens {
		if i == 0 || token == "" {
			b.WriteString(token)
			continue
		}
		b.WriteString(strings.ToUpper(token[:1]))
		b.WriteString(token[1:])
	}
	return b.String()
}
