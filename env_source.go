// File: lixenwraith/logprops/env_source.go
package logprops

import (
	"maps"
	"os"
	"slices"
	"strings"
	"sync/atomic"
)

// EnvironmentSource exposes process environment variables. The environment
// is captured at construction and again on every Reload.
type EnvironmentSource struct {
	priority  int
	environ   func() []string
	variables atomic.Pointer[map[string]string]
}

var (
	_ EnumerableSource = (*EnvironmentSource)(nil)
	_ ReloadableSource = (*EnvironmentSource)(nil)
)

// NewEnvironmentSource captures os.Environ with EnvironmentPriority.
func NewEnvironmentSource() *EnvironmentSource {
	return newEnvironmentSource(os.Environ, EnvironmentPriority)
}

func newEnvironmentSource(environ func() []string, priority int) *EnvironmentSource {
	s := &EnvironmentSource{priority: priority, environ: environ}
	s.capture()
	return s
}

func (s *EnvironmentSource) capture() {
	entries := s.environ()
	variables := make(map[string]string, len(entries))
	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		variables[name] = value
	}
	s.variables.Store(&variables)
}

func (s *EnvironmentSource) Priority() int { return s.priority }

func (s *EnvironmentSource) Property(key string) (string, bool) {
	value, ok := (*s.variables.Load())[key]
	return value, ok
}

func (s *EnvironmentSource) Contains(key string) bool {
	_, ok := s.Property(key)
	return ok
}

// NormalForm spells tokens as LOG4J_TOKEN_TOKEN.
func (s *EnvironmentSource) NormalForm(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("LOG4J")
	for _, token := range tokens {
		b.WriteByte('_')
		b.WriteString(strings.ToUpper(token))
	}
	return b.String()
}

func (s *EnvironmentSource) PropertyNames() []string {
	return slices.Sorted(maps.Keys(*s.variables.Load()))
}

// Reload captures the current environment.
func (s *EnvironmentSource) Reload() error {
	s.capture()
	return nil
}
