// FILE: lixenwraith/logprops/builder_test.go
package logprops

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetProviders gives a test an empty provider registry.
func resetProviders(t *testing.T) {
	t.Helper()
	providerRegistry.mutex.Lock()
	saved, sealed := providerRegistry.providers, providerRegistry.sealed
	providerRegistry.providers = make(map[string]SourceProvider)
	providerRegistry.sealed = false
	providerRegistry.mutex.Unlock()

	t.Cleanup(func() {
		providerRegistry.mutex.Lock()
		providerRegistry.providers, providerRegistry.sealed = saved, sealed
		providerRegistry.mutex.Unlock()
	})
}

func staticProvider(properties map[string]string, priority int) SourceProvider {
	return func(context.Context) (PropertySource, error) {
		return NewMapSource(properties, priority), nil
	}
}

// TestBuilder tests the builder pattern
func TestBuilder(t *testing.T) {
	resetProviders(t)

	t.Run("BasicBuilder", func(t *testing.T) {
		env, err := NewBuilder().
			WithProperties(map[string]string{"log4j2.level": "WARN"}, SystemPropertiesPriority).
			WithProperties(map[string]string{"log4j2.level": "ERROR"}, FilePriority).
			Build()
		require.NoError(t, err)
		assert.Equal(t, "WARN", env.StringOr("log4j2.level", ""))
		assert.Len(t, env.Sources(), 2)
		assert.False(t, env.IsSealed())
	})

	t.Run("BuilderWithAllOptions", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := writeFile(t, tmpDir, "app.properties", "log4j2.level = DEBUG\nlog4j2.fileOnly = yes\n")

		var buf bytes.Buffer
		env, err := NewBuilder().
			WithSystemProperties().
			WithEnvironment().
			WithFile(path).
			WithFileOptions(FileOptions{Priority: 150}).
			WithLogger(slog.New(slog.NewTextHandler(&buf, nil))).
			WithMetrics(prometheus.NewRegistry(), "test").
			WithoutProviders().
			Sealed().
			Build()
		require.NoError(t, err)

		assert.True(t, env.IsSealed())
		assert.NotNil(t, env.metrics)
		assert.Len(t, env.Sources(), 3)
		assert.Equal(t, 150, env.Sources()[2].Priority())
		assert.Equal(t, "yes", env.StringOr("log4j2.fileOnly", ""))
		assert.ErrorIs(t, env.AddSource(NewMapSource(nil, 0)), ErrUnsupportedOperation)
	})

	t.Run("NilSource", func(t *testing.T) {
		_, err := NewBuilder().WithSource(nil).Build()
		assert.Error(t, err)
		assert.Panics(t, func() { NewBuilder().WithSource(nil).MustBuild() })
	})

	t.Run("MissingFileIsNotFatal", func(t *testing.T) {
		var buf bytes.Buffer
		missing := filepath.Join(t.TempDir(), "missing.properties")
		env, err := NewBuilder().
			WithProperties(map[string]string{"log4j2.level": "INFO"}, 0).
			WithFile(missing).
			WithLogger(slog.New(slog.NewTextHandler(&buf, nil))).
			Build()

		assert.ErrorIs(t, err, ErrConfigNotFound)
		require.NotNil(t, env)
		assert.Equal(t, "INFO", env.StringOr("log4j2.level", ""))
		assert.Contains(t, buf.String(), "Property file not found")

		assert.NotPanics(t, func() {
			env := NewBuilder().WithFile(missing).WithLogger(slog.New(slog.NewTextHandler(&buf, nil))).MustBuild()
			assert.NotNil(t, env)
		})
	})

	t.Run("InvalidFileIsFatal", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "broken.json", `{"not": "log4j2"}`)
		env, err := NewBuilder().WithFile(path).Build()
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.Nil(t, env)
	})
}

func TestProviders(t *testing.T) {
	resetProviders(t)

	require.NoError(t, RegisterProvider("alpha", staticProvider(map[string]string{"log4j2.alpha": "a"}, 10)))
	require.NoError(t, RegisterProvider("beta", func(context.Context) (PropertySource, error) {
		return nil, errors.New("beta unavailable")
	}))
	require.NoError(t, RegisterProvider("gamma", staticProvider(map[string]string{"log4j2.gamma": "g"}, 20)))

	t.Run("Registration", func(t *testing.T) {
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, Providers())
		assert.ErrorIs(t, RegisterProvider("alpha", staticProvider(nil, 0)), ErrDuplicateProvider)
		assert.Error(t, RegisterProvider("", staticProvider(nil, 0)))
		assert.Error(t, RegisterProvider("delta", nil))
	})

	t.Run("AllProviders", func(t *testing.T) {
		var buf bytes.Buffer
		env, err := NewBuilder().WithLogger(slog.New(slog.NewTextHandler(&buf, nil))).Build()
		require.NoError(t, err)

		assert.Len(t, env.Sources(), 2)
		assert.True(t, env.HasProperty("log4j2.alpha"))
		assert.True(t, env.HasProperty("log4j2.gamma"))
		assert.Contains(t, buf.String(), "Property source provider failed")
		assert.Contains(t, buf.String(), "beta unavailable")
	})

	t.Run("SelectedProviders", func(t *testing.T) {
		var buf bytes.Buffer
		env, err := NewBuilder().
			WithProviders("gamma", "unknown").
			WithLogger(slog.New(slog.NewTextHandler(&buf, nil))).
			Build()
		require.NoError(t, err)

		assert.Len(t, env.Sources(), 1)
		assert.True(t, env.HasProperty("log4j2.gamma"))
		assert.Contains(t, buf.String(), "provider=unknown")
	})

	t.Run("WithoutProviders", func(t *testing.T) {
		env, err := NewBuilder().WithoutProviders().Build()
		require.NoError(t, err)
		assert.Empty(t, env.Sources())
	})

	t.Run("ContextPassedThrough", func(t *testing.T) {
		type ctxKey struct{}
		require.NoError(t, RegisterProvider("ctx", func(ctx context.Context) (PropertySource, error) {
			value, _ := ctx.Value(ctxKey{}).(string)
			return NewMapSource(map[string]string{"log4j2.fromContext": value}, 0), nil
		}))

		ctx := context.WithValue(context.Background(), ctxKey{}, "passed")
		env, err := NewBuilder().WithProviders("ctx").BuildContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, "passed", env.StringOr("log4j2.fromContext", ""))
	})

	t.Run("Sealed", func(t *testing.T) {
		SealProviders()
		assert.ErrorIs(t, RegisterProvider("late", staticProvider(nil, 0)), ErrProvidersSealed)
	})
}

// TestFileDiscovery tests automatic property file discovery
func TestFileDiscovery(t *testing.T) {
	resetProviders(t)

	t.Run("DiscoveryWithEnvVar", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "explicit.toml", "[log4j2]\nlevel = \"FROM_ENV\"\n")
		t.Setenv("LOGPROPS_TEST_FILE", path)

		found, ok := DiscoverFile(FileDiscoveryOptions{EnvVar: "LOGPROPS_TEST_FILE"})
		assert.True(t, ok)
		assert.Equal(t, path, found)
	})

	t.Run("DiscoveryInCustomPaths", func(t *testing.T) {
		first, second := t.TempDir(), t.TempDir()
		writeFile(t, second, "log4j2.component.toml", "[log4j2]\nlevel = \"TOML\"\n")
		want := writeFile(t, second, "log4j2.component.properties", "log4j2.level = PROPERTIES\n")

		opts := DefaultDiscoveryOptions()
		opts.EnvVar = ""
		opts.UseXDG = false
		opts.UseCurrentDir = false
		opts.Paths = []string{first, second}

		found, ok := DiscoverFile(opts)
		require.True(t, ok)
		assert.Equal(t, want, found, "extensions are tried in order")

		env, err := NewBuilder().WithFileDiscovery(opts).Build()
		require.NoError(t, err)
		assert.Equal(t, "PROPERTIES", env.StringOr("log4j2.level", ""))
	})

	t.Run("NothingFound", func(t *testing.T) {
		opts := FileDiscoveryOptions{
			Name:       "log4j2.component",
			Extensions: []string{".properties"},
			Paths:      []string{t.TempDir()},
		}
		_, ok := DiscoverFile(opts)
		assert.False(t, ok)

		env, err := NewBuilder().WithFileDiscovery(opts).Build()
		require.NoError(t, err)
		assert.Empty(t, env.Sources())
	})

	t.Run("XDGPaths", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-home")
		t.Setenv("XDG_CONFIG_DIRS", "/tmp/xdg-a"+string(filepath.ListSeparator)+"/tmp/xdg-b")
		assert.Equal(t, []string{
			"/tmp/xdg-home/log4j2",
			"/tmp/xdg-a/log4j2",
			"/tmp/xdg-b/log4j2",
		}, getXDGConfigPaths("log4j2"))

		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("XDG_CONFIG_DIRS", "")
		t.Setenv("HOME", "/home/tester")
		assert.Equal(t, []string{
			"/home/tester/.config/log4j2",
			"/etc/xdg/log4j2",
			"/etc/log4j2",
		}, getXDGConfigPaths("log4j2"))
	})
}
