// File: lixenwraith/logprops/defaults.go
package logprops

import (
	"errors"

	"github.com/lixenwraith/logprops/lazy"
	"github.com/lixenwraith/logprops/recycler"
)

// Well-known properties.
const (
	PropertyIsWebApp            = "log4j2.isWebapp"
	PropertyEnableThreadLocals  = "log4j2.enableThreadlocals"
	PropertyRecycler            = "log4j2.recycler"
	PropertyComponentProperties = "log4j2.componentPropertiesFile"
)

var (
	defaultEnvironment = lazy.Of(buildDefault)

	isWebApp = lazy.Of(func() bool {
		return Default().Bool(PropertyIsWebApp, false)
	})

	threadLocalsEnabled = lazy.Map(isWebApp, func(webApp bool) bool {
		return !webApp && Default().Bool(PropertyEnableThreadLocals, true)
	})
)

// buildDefault assembles system properties, the environment, the discovered
// component file and all registered providers. A broken component file is
// reported and skipped.
func buildDefault() *Environment {
	b := NewBuilder()
	if path, ok := SystemProperties().Property(PropertyComponentProperties); ok && path != "" {
		b.WithFile(path)
	} else {
		b.WithFileDiscovery(DefaultDiscoveryOptions())
	}
	return buildDefaultWith(b)
}

func buildDefaultWith(b *Builder) *Environment {
	env, err := b.WithSystemProperties().WithEnvironment().Build()
	if err == nil || errors.Is(err, ErrConfigNotFound) {
		return env
	}
	StatusLogger().Warn("Unable to load component properties, continuing without them", "error", err)
	return NewBuilder().WithSystemProperties().WithEnvironment().MustBuild()
}

// Default returns the process-wide Environment, building it on first use.
func Default() *Environment {
	return defaultEnvironment.MustGet()
}

// ResetDefault discards the process-wide Environment and the flags derived
// from it. Intended for tests.
func ResetDefault() {
	defaultEnvironment.Reset()
	isWebApp.Reset()
	threadLocalsEnabled.Reset()
}

// IsWebApp reports whether log4j2.isWebapp is set on the default Environment.
func IsWebApp() bool {
	return isWebApp.MustGet()
}

// ThreadLocalsEnabled reports whether per-goroutine caching may be used:
// not in web applications and not disabled with log4j2.enableThreadlocals.
func ThreadLocalsEnabled() bool {
	return threadLocalsEnabled.MustGet()
}

// RecyclerSpec returns the recycler configured with log4j2.recycler. An
// invalid value is reported and the detected backend used instead.
func (e *Environment) RecyclerSpec() recycler.Spec {
	value := e.StringOr(PropertyRecycler, "")
	spec, err := recycler.ParseSpec(value)
	if err != nil {
		e.log().Warn("Invalid recycler configuration, using default", "value", value, "error", err)
		spec, _ = recycler.ParseSpec("")
	}
	return spec
}
