// File: lixenwraith/logprops/builder.go
package logprops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Builder provides a fluent interface for building an Environment
type Builder struct {
	sources     []PropertySource
	files       []string
	fileOpts    FileOptions
	discovery   *FileDiscoveryOptions
	providers   []string
	noProviders bool
	logger      *slog.Logger
	registerer  prometheus.Registerer
	namespace   string
	sealed      bool
	err         error
}

// NewBuilder creates a new Environment builder. Registered providers are
// included unless WithoutProviders is called.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithSource adds a source
func (b *Builder) WithSource(src PropertySource) *Builder {
	if src == nil {
		b.err = errors.Join(b.err, fmt.Errorf("nil property source"))
		return b
	}
	b.sources = append(b.sources, src)
	return b
}

// WithProperties adds an in-memory source with a copy of properties
func (b *Builder) WithProperties(properties map[string]string, priority int) *Builder {
	return b.WithSource(NewMapSource(properties, priority))
}

// WithSystemProperties adds the process-wide SystemProperties source
func (b *Builder) WithSystemProperties() *Builder {
	return b.WithSource(SystemProperties())
}

// WithEnvironment adds the process environment
func (b *Builder) WithEnvironment() *Builder {
	return b.WithSource(NewEnvironmentSource())
}

// WithFile adds a property file. A missing file is reported by Build as
// ErrConfigNotFound, which is not fatal.
func (b *Builder) WithFile(path string) *Builder {
	if path != "" {
		b.files = append(b.files, path)
	}
	return b
}

// WithFileOptions sets the options used for every file
func (b *Builder) WithFileOptions(opts FileOptions) *Builder {
	b.fileOpts = opts
	return b
}

// WithFileDiscovery adds the first file found by DiscoverFile, if any
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithProviders limits registered providers to names
func (b *Builder) WithProviders(names ...string) *Builder {
	b.providers = append(b.providers, names...)
	b.noProviders = false
	return b
}

// WithoutProviders skips registered providers
func (b *Builder) WithoutProviders() *Builder {
	b.providers = nil
	b.noProviders = true
	return b
}

// WithLogger sets the logger for diagnostics of the built Environment
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetrics exports resolver metrics to registerer under namespace
func (b *Builder) WithMetrics(registerer prometheus.Registerer, namespace string) *Builder {
	b.registerer = registerer
	b.namespace = namespace
	return b
}

// Sealed seals the built Environment against source changes
func (b *Builder) Sealed() *Builder {
	b.sealed = true
	return b
}

// Build creates the Environment with all specified options
func (b *Builder) Build() (*Environment, error) {
	return b.BuildContext(context.Background())
}

// BuildContext is Build with a context passed to providers
func (b *Builder) BuildContext(ctx context.Context) (*Environment, error) {
	if b.err != nil {
		return nil, b.err
	}

	var metrics *Metrics
	if b.registerer != nil {
		m, err := NewMetrics(b.registerer, b.namespace)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	e := newEnvironment(b.logger, metrics)
	sources := append([]PropertySource(nil), b.sources...)

	files := append([]string(nil), b.files...)
	if b.discovery != nil {
		if path, found := DiscoverFile(*b.discovery); found {
			files = append(files, path)
		}
	}

	var loadErr error
	for _, path := range files {
		src, err := NewFileSource(path, b.fileOpts)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				// Not fatal, the remaining sources still resolve
				e.log().Warn("Property file not found", "path", path)
				loadErr = errors.Join(loadErr, err)
				continue
			}
			return nil, err
		}
		sources = append(sources, src)
	}

	if !b.noProviders {
		var names []string
		if len(b.providers) > 0 {
			names = b.providers
		}
		sources = append(sources, discoverSources(ctx, names, e.log())...)
	}

	e.mutex.Lock()
	for _, src := range sources {
		e.insertLocked(src)
	}
	e.mutex.Unlock()
	e.rebuild()

	if b.sealed {
		e.Seal()
	}

	// ErrConfigNotFound or nil
	return e, loadErr
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Environment {
	e, err := b.Build()
	if err != nil {
		// Ignore ErrConfigNotFound as it is not a fatal error for MustBuild.
		if !errors.Is(err, ErrConfigNotFound) {
			panic(fmt.Sprintf("environment build failed: %v", err))
		}
	}
	return e
}
