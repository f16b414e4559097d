// File: lixenwraith/logprops/convenience.go
package logprops

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Quick creates an Environment over system properties, the environment,
// configFile (if not empty) and all registered providers.
// A missing configFile is reported as ErrConfigNotFound alongside a usable Environment.
func Quick(configFile string) (*Environment, error) {
	return NewBuilder().
		WithSystemProperties().
		WithEnvironment().
		WithFile(configFile).
		Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(configFile string) *Environment {
	return NewBuilder().
		WithSystemProperties().
		WithEnvironment().
		WithFile(configFile).
		MustBuild()
}

// Debug returns a formatted string showing every property, its resolved
// value and the value each source holds for it.
func (e *Environment) Debug() string {
	sources := e.Sources()

	var b strings.Builder
	b.WriteString("Property Debug Info:\n")
	b.WriteString("Sources (resolution order):\n")
	for i, src := range sources {
		fmt.Fprintf(&b, "  %d. %T (priority %d)\n", i+1, src, src.Priority())
	}
	b.WriteString("Current values:\n")

	for _, name := range e.PropertyNames() {
		value, _ := e.StringProperty(name)
		fmt.Fprintf(&b, "  %s:\n", name)
		fmt.Fprintf(&b, "    Current: %s\n", value)
		for i, src := range sources {
			if v, ok := src.Property(name); ok {
				fmt.Fprintf(&b, "    %d. %T: %s\n", i+1, src, v)
			}
		}
	}

	return b.String()
}

// Dump writes the resolved properties to w in TOML format
func (e *Environment) Dump(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	if err := encoder.Encode(nestProperties(e.Subset(""))); err != nil {
		return fmt.Errorf("failed to encode properties as TOML: %w", err)
	}
	return nil
}
