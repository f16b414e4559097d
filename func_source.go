// File: lixenwraith/logprops/func_source.go
package logprops

// LookupFunc resolves a single property on demand.
type LookupFunc func(key string) (string, bool)

// FuncSource adapts a lookup function into a PropertySource. It cannot
// enumerate its keys, so an Environment only reaches it through the live scan.
type FuncSource struct {
	priority   int
	lookup     LookupFunc
	normalForm func(tokens []string) string
}

var _ PropertySource = (*FuncSource)(nil)

// NewFuncSource creates a source backed by lookup. normalForm may be nil, in
// which case the "log4j2.camelCase" spelling is used.
func NewFuncSource(lookup LookupFunc, priority int, normalForm func(tokens []string) string) *FuncSource {
	if normalForm == nil {
		normalForm = func(tokens []string) string {
			if len(tokens) == 0 {
				return ""
			}
			return "log4j2." + joinAsCamelCase(tokens)
		}
	}
	return &FuncSource{priority: priority, lookup: lookup, normalForm: normalForm}
}

func (s *FuncSource) Priority() int { return s.priority }

func (s *FuncSource) Property(key string) (string, bool) {
	if s.lookup == nil {
		return "", false
	}
	return s.lookup(key)
}

func (s *FuncSource) Contains(key string) bool {
	_, ok := s.Property(key)
	return ok
}

func (s *FuncSource) NormalForm(tokens []string) string {
	return s.normalForm(tokens)
}
