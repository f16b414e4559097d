// FILE: lixenwraith/logprops/discovery.go
package logprops

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SourceProvider constructs a PropertySource. Providers must be safe to call
// concurrently.
type SourceProvider func(ctx context.Context) (PropertySource, error)

var providerRegistry = struct {
	mutex     sync.RWMutex
	providers map[string]SourceProvider
	sealed    bool
}{providers: make(map[string]SourceProvider)}

// RegisterProvider makes provider available to every Builder that does not
// opt out with WithoutProviders.
func RegisterProvider(name string, provider SourceProvider) error {
	if name == "" || provider == nil {
		return fmt.Errorf("provider name and function are required")
	}

	providerRegistry.mutex.Lock()
	defer providerRegistry.mutex.Unlock()

	if providerRegistry.sealed {
		return fmt.Errorf("%w: cannot register %q", ErrProvidersSealed, name)
	}
	if _, exists := providerRegistry.providers[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProvider, name)
	}
	providerRegistry.providers[name] = provider
	return nil
}

// SealProviders rejects further registrations.
func SealProviders() {
	providerRegistry.mutex.Lock()
	defer providerRegistry.mutex.Unlock()
	providerRegistry.sealed = true
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	providerRegistry.mutex.RLock()
	defer providerRegistry.mutex.RUnlock()
	return slices.Sorted(maps.Keys(providerRegistry.providers))
}

// discoverSources runs the selected providers concurrently. names limits
// the selection; nil selects all. Failing providers are logged and skipped.
func discoverSources(ctx context.Context, names []string, logger *slog.Logger) []PropertySource {
	providerRegistry.mutex.RLock()
	selected := make([]string, 0, len(providerRegistry.providers))
	funcs := make([]SourceProvider, 0, len(providerRegistry.providers))
	for _, name := range slices.Sorted(maps.Keys(providerRegistry.providers)) {
		if names != nil && !slices.Contains(names, name) {
			continue
		}
		selected = append(selected, name)
		funcs = append(funcs, providerRegistry.providers[name])
	}
	providerRegistry.mutex.RUnlock()

	for _, name := range names {
		if !slices.Contains(selected, name) {
			logger.Warn("Property source provider not registered", "provider", name)
		}
	}

	results := make([]PropertySource, len(funcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, provider := range funcs {
		g.Go(func() error {
			src, err := provider(gctx)
			if err != nil {
				logger.Warn("Property source provider failed",
					"provider", selected[i],
					"error", err)
				return nil
			}
			results[i] = src
			return nil
		})
	}
	// providers never fail the group
	_ = g.Wait()

	sources := make([]PropertySource, 0, len(results))
	for _, src := range results {
		if src != nil {
			sources = append(sources, src)
		}
	}
	return sources
}

// FileDiscoveryOptions configures automatic property file discovery
type FileDiscoveryOptions struct {
	// Base name of property file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions looks for log4j2.component.{properties,json,toml,yaml,yml}.
func DefaultDiscoveryOptions() FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          "log4j2.component",
		Extensions:    []string{".properties", ".json", ".toml", ".yaml", ".yml"},
		EnvVar:        "LOG4J_PROPERTIES_FILE",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// DiscoverFile returns the first matching property file.
func DiscoverFile(opts FileDiscoveryOptions) (string, bool) {
	// Check environment variable
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path, true
		}
	}

	// Custom paths first
	searchPaths := slices.Clone(opts.Paths)

	// Current directory
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	// XDG paths
	if opts.UseXDG {
		searchPaths = append(searchPaths, getXDGConfigPaths("log4j2")...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}

	// No file found is not an error
	return "", false
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string) []string {
	var paths []string

	// XDG_CONFIG_HOME
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	// XDG_CONFIG_DIRS
	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
