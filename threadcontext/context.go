// Package threadcontext carries diagnostic key/value data through
// context.Context, the way a thread-bound diagnostic map works in other
// logging systems.
//
// Every change produces a new frozen map, so maps obtained from a context
// may be shared freely between goroutines. The feature can be switched off
// with log4j2.disableThreadContext or log4j2.disableThreadContextMap, in
// which case the mutators return their input unchanged.
package threadcontext

import (
	"context"
	"slices"

	"github.com/lixenwraith/logprops"
	"github.com/lixenwraith/logprops/contextdata"
	"github.com/lixenwraith/logprops/lazy"
)

// Properties that disable the diagnostic map.
const (
	PropertyDisable    = "log4j2.disableThreadContext"
	PropertyDisableMap = "log4j2.disableThreadContextMap"
)

type contextKey struct{}

var enabled = lazy.Of(func() bool {
	return Enabled(logprops.Default())
})

// Enabled reports whether env allows the diagnostic map.
func Enabled(env *logprops.Environment) bool {
	return !env.Bool(PropertyDisable, false) && !env.Bool(PropertyDisableMap, false)
}

// SetEnabled overrides the setting read from the default Environment.
func SetEnabled(on bool) {
	enabled.Set(on)
}

// Refresh drops the cached setting so the next change re-reads it.
func Refresh() {
	enabled.Reset()
}

// Map returns the frozen diagnostic map carried by ctx, or an empty map.
func Map(ctx context.Context) *contextdata.SortedArrayStringMap {
	if m, ok := ctx.Value(contextKey{}).(*contextdata.SortedArrayStringMap); ok {
		return m
	}
	return contextdata.Empty()
}

// Get returns the value stored under key.
func Get(ctx context.Context, key string) (any, bool) {
	return Map(ctx).Get(key)
}

// With returns a context whose map also holds key.
func With(ctx context.Context, key string, value any) context.Context {
	return WithAll(ctx, map[string]any{key: value})
}

// WithAll returns a context whose map also holds entries. Existing keys are
// replaced.
func WithAll(ctx context.Context, entries map[string]any) context.Context {
	if len(entries) == 0 || !enabled.MustGet() {
		return ctx
	}
	current := Map(ctx)
	next, err := contextdata.NewSortedArrayStringMapWithCapacity(current.Size() + len(entries))
	if err != nil {
		return ctx
	}
	// both maps are owned here, neither guard can trip
	_ = next.PutAll(current)
	_ = next.PutAll(contextdata.NewMapAdapter(entries))
	next.Freeze()
	return context.WithValue(ctx, contextKey{}, next)
}

// Without returns a context whose map no longer holds keys.
func Without(ctx context.Context, keys ...string) context.Context {
	if len(keys) == 0 || !enabled.MustGet() {
		return ctx
	}
	current := Map(ctx)
	if !slices.ContainsFunc(keys, current.ContainsKey) {
		return ctx
	}
	next := contextdata.NewSortedArrayStringMapFrom(current)
	for _, key := range keys {
		_ = next.Remove(key)
	}
	next.Freeze()
	return context.WithValue(ctx, contextKey{}, next)
}

// Clear returns a context with an empty map.
func Clear(ctx context.Context) context.Context {
	if Map(ctx).IsEmpty() {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, contextdata.Empty())
}

// Entries returns a copy of the map carried by ctx.
func Entries(ctx context.Context) map[string]any {
	return Map(ctx).ToMap()
}
