// File: lixenwraith/logprops/context_source.go
package logprops

import (
	"log/slog"
	"maps"
	"slices"
)

// ContextAwareSource partitions flat properties by context. A key
// "log4j2.<context>.<component>.<key>" is stored in the <context> bucket as
// "<component>.<key>".
//
// Keys without that structure are kept in the DefaultContext bucket under
// their original spelling, unless the source is strict, in which case they
// are logged and dropped.
type ContextAwareSource struct {
	priority int
	strict   bool
	contexts map[string]map[string]string
	names    []string
}

var (
	_ EnumerableSource = (*ContextAwareSource)(nil)
	_ ContextualSource = (*ContextAwareSource)(nil)
)

// NewContextAwareSource partitions properties. logger receives warnings about
// malformed keys in strict mode; nil means the status logger.
func NewContextAwareSource(properties map[string]string, priority int, strict bool, logger *slog.Logger) *ContextAwareSource {
	if logger == nil {
		logger = StatusLogger()
	}
	s := &ContextAwareSource{
		priority: priority,
		strict:   strict,
		contexts: make(map[string]map[string]string),
	}

	for _, key := range slices.Sorted(maps.Keys(properties)) {
		value := properties[key]
		m := compositeKeyPattern.FindStringSubmatch(key)
		if m == nil {
			if strict {
				logger.Warn("Ignoring malformed context property key",
					"key", key,
					"expected", "log4j2.<context>.<component>.<key>")
				continue
			}
			s.bucket(DefaultContext)[key] = value
			s.names = append(s.names, key)
			continue
		}
		s.bucket(m[1])[m[2]+"."+m[3]] = value
		s.names = append(s.names, key)
	}
	return s
}

func (s *ContextAwareSource) bucket(context string) map[string]string {
	b, ok := s.contexts[context]
	if !ok {
		b = make(map[string]string)
		s.contexts[context] = b
	}
	return b
}

func (s *ContextAwareSource) Priority() int { return s.priority }

// Property resolves a composite key, or a malformed key kept in the
// default bucket.
func (s *ContextAwareSource) Property(key string) (string, bool) {
	if m := compositeKeyPattern.FindStringSubmatch(key); m != nil {
		value, ok := s.contexts[m[1]][m[2]+"."+m[3]]
		return value, ok
	}
	value, ok := s.contexts[DefaultContext][key]
	return value, ok
}

func (s *ContextAwareSource) Contains(key string) bool {
	_, ok := s.Property(key)
	return ok
}

// NormalForm returns "": context-scoped keys are matched literally.
func (s *ContextAwareSource) NormalForm([]string) string { return "" }

// PropertyNames returns the original keys that were kept.
func (s *ContextAwareSource) PropertyNames() []string {
	return slices.Clone(s.names)
}

// ContextProperty resolves "<component>.<key>" within context.
func (s *ContextAwareSource) ContextProperty(context, key string) (string, bool) {
	if context == "" {
		context = DefaultContext
	}
	value, ok := s.contexts[context][key]
	return value, ok
}

// Contexts returns the names of the populated contexts.
func (s *ContextAwareSource) Contexts() []string {
	return slices.Sorted(maps.Keys(s.contexts))
}

// IsStrict reports whether malformed keys were dropped.
func (s *ContextAwareSource) IsStrict() bool {
	return s.strict
}
