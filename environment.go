// File: lixenwraith/logprops/environment.go
package logprops

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// rankedSource remembers insertion order to break priority ties.
type rankedSource struct {
	source PropertySource
	seq    uint64
}

// resolvedCaches is immutable once published.
type resolvedCaches struct {
	literal    map[string]string
	normalized map[string]string
	tokenized  map[string]string
}

var emptyCaches = &resolvedCaches{
	literal:    map[string]string{},
	normalized: map[string]string{},
	tokenized:  map[string]string{},
}

// Environment resolves properties across an ordered set of PropertySources.
type Environment struct {
	mutex   sync.Mutex // serializes source set changes and Seal
	sources atomic.Pointer[[]rankedSource]
	nextSeq uint64
	sealed  atomic.Bool

	reloadMutex sync.Mutex
	caches      atomic.Pointer[resolvedCaches]

	logger  *slog.Logger
	metrics *Metrics
}

// New creates an Environment over sources and builds its caches.
func New(sources ...PropertySource) *Environment {
	e := newEnvironment(nil, nil)
	e.mutex.Lock()
	for _, src := range sources {
		e.insertLocked(src)
	}
	e.mutex.Unlock()
	e.rebuild()
	return e
}

func newEnvironment(logger *slog.Logger, metrics *Metrics) *Environment {
	e := &Environment{logger: logger, metrics: metrics}
	e.sources.Store(&[]rankedSource{})
	e.caches.Store(emptyCaches)
	return e
}

func (e *Environment) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return StatusLogger()
}

func (e *Environment) snapshot() []rankedSource {
	return *e.sources.Load()
}

// Sources returns the sources in resolution order.
func (e *Environment) Sources() []PropertySource {
	current := e.snapshot()
	result := make([]PropertySource, len(current))
	for i, r := range current {
		result[i] = r.source
	}
	return result
}

// AddSource inserts src according to its priority and rebuilds the caches.
// Adding a source that is already present is a no-op.
func (e *Environment) AddSource(src PropertySource) error {
	if src == nil {
		return nil
	}

	e.mutex.Lock()
	if e.sealed.Load() {
		e.mutex.Unlock()
		return fmt.Errorf("%w: cannot add source to sealed environment", ErrUnsupportedOperation)
	}
	added := e.insertLocked(src)
	e.mutex.Unlock()

	if added {
		e.rebuild()
	}
	return nil
}

// RemoveSource removes src and rebuilds the caches.
func (e *Environment) RemoveSource(src PropertySource) error {
	e.mutex.Lock()
	if e.sealed.Load() {
		e.mutex.Unlock()
		return fmt.Errorf("%w: cannot remove source from sealed environment", ErrUnsupportedOperation)
	}
	current := e.snapshot()
	index := slices.IndexFunc(current, func(r rankedSource) bool { return sameSource(r.source, src) })
	if index < 0 {
		e.mutex.Unlock()
		return nil
	}
	updated := slices.Delete(slices.Clone(current), index, index+1)
	e.sources.Store(&updated)
	e.metrics.setSources(len(updated))
	e.mutex.Unlock()

	e.rebuild()
	return nil
}

// Seal makes the source set permanent. Reload keeps working.
func (e *Environment) Seal() {
	e.mutex.Lock()
	e.sealed.Store(true)
	e.mutex.Unlock()
}

// IsSealed reports whether Seal was called.
func (e *Environment) IsSealed() bool {
	return e.sealed.Load()
}

func (e *Environment) insertLocked(src PropertySource) bool {
	current := e.snapshot()
	for _, r := range current {
		if sameSource(r.source, src) {
			return false
		}
	}

	entry := rankedSource{source: src, seq: e.nextSeq}
	e.nextSeq++

	// after every source with the same or a lower priority
	index := slices.IndexFunc(current, func(r rankedSource) bool {
		return r.source.Priority() > src.Priority()
	})
	if index < 0 {
		index = len(current)
	}
	updated := slices.Insert(slices.Clone(current), index, entry)
	e.sources.Store(&updated)
	e.metrics.setSources(len(updated))
	return true
}

func sameSource(a, b PropertySource) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

// Reload refreshes every ReloadableSource and rebuilds the caches. A source
// that fails to reload keeps its previous content; the failures are logged
// and returned joined.
func (e *Environment) Reload() error {
	var errs []error
	for _, r := range e.snapshot() {
		rs, ok := r.source.(ReloadableSource)
		if !ok {
			continue
		}
		if err := rs.Reload(); err != nil {
			e.log().Warn("Property source reload failed, keeping previous content",
				"source", fmt.Sprintf("%T", r.source),
				"error", err)
			errs = append(errs, err)
		}
	}
	e.rebuild()
	return errors.Join(errs...)
}

// rebuild recomputes the caches off to the side and publishes them at once.
func (e *Environment) rebuild() {
	e.reloadMutex.Lock()
	defer e.reloadMutex.Unlock()

	start := time.Now()
	sources := e.snapshot()
	caches := buildCaches(sources)
	e.caches.Store(caches)

	e.metrics.observeReload(time.Since(start))
	e.log().Debug("Properties reloaded",
		"sources", len(sources),
		"keys", len(caches.literal))
}

func buildCaches(sources []rankedSource) *resolvedCaches {
	keys := make(map[string]struct{})
	for _, r := range sources {
		if es, ok := r.source.(EnumerableSource); ok {
			for _, name := range es.PropertyNames() {
				keys[name] = struct{}{}
			}
		}
	}

	caches := &resolvedCaches{
		literal:    make(map[string]string, len(keys)),
		normalized: make(map[string]string, len(keys)),
		tokenized:  make(map[string]string, len(keys)),
	}
	// rank of the source that supplied each tokenized entry
	tokenRank := make(map[string]int)

	for _, key := range slices.Sorted(maps.Keys(keys)) {
		tokens := Tokenize(key)
		hasTokens := len(tokens) > 0
		var tokensKey string
		if hasTokens {
			tokensKey = tokenKey(tokens)
		}

		for rank, r := range sources {
			src := r.source
			if value, ok := src.Property(key); ok {
				putIfAbsent(caches.literal, key, value)
				if hasTokens {
					if prev, seen := tokenRank[tokensKey]; !seen || rank < prev {
						caches.tokenized[tokensKey] = value
						tokenRank[tokensKey] = rank
					}
				}
			}
			if !hasTokens {
				continue
			}
			if normal := src.NormalForm(tokens); normal != "" {
				if value, ok := src.Property(normal); ok {
					putIfAbsent(caches.normalized, key, value)
				}
			}
		}
	}
	return caches
}

func putIfAbsent(m map[string]string, key, value string) {
	if _, exists := m[key]; !exists {
		m[key] = value
	}
}

// StringProperty resolves key. Lookup order: the normalized cache, the
// literal cache, a live scan of every source (normal form first, then the
// literal key), and finally the tokenized cache.
func (e *Environment) StringProperty(key string) (string, bool) {
	caches := e.caches.Load()
	if value, ok := caches.normalized[key]; ok {
		e.metrics.lookup(tierNormalized)
		return value, true
	}
	if value, ok := caches.literal[key]; ok {
		e.metrics.lookup(tierLiteral)
		return value, true
	}

	tokens := Tokenize(key)
	for _, r := range e.snapshot() {
		src := r.source
		if len(tokens) > 0 {
			if normal := src.NormalForm(tokens); normal != "" {
				if value, ok := src.Property(normal); ok {
					e.metrics.lookup(tierScan)
					return value, true
				}
			}
		}
		if value, ok := src.Property(key); ok {
			e.metrics.lookup(tierScan)
			return value, true
		}
	}

	if len(tokens) > 0 {
		if value, ok := caches.tokenized[tokenKey(tokens)]; ok {
			e.metrics.lookup(tierTokenized)
			return value, true
		}
	}
	e.metrics.lookup(tierMiss)
	return "", false
}

// HasProperty reports whether key resolves to any value.
func (e *Environment) HasProperty(key string) bool {
	_, ok := e.StringProperty(key)
	return ok
}

// ContextProperty resolves key within context: the context-scoped key
// first, then the plain key, then the key scoped to DefaultContext.
func (e *Environment) ContextProperty(context, key string) (string, bool) {
	if context != "" && context != DefaultContext {
		if value, ok := e.scanContext(context, key); ok {
			return value, true
		}
	}
	if value, ok := e.StringProperty(key); ok {
		return value, true
	}
	return e.scanContext(DefaultContext, key)
}

func (e *Environment) scanContext(context, key string) (string, bool) {
	for _, r := range e.snapshot() {
		if context == DefaultContext {
			// plain sources were already consulted through StringProperty
			if _, ok := r.source.(ContextualSource); !ok {
				continue
			}
		}
		if value, ok := ContextProperty(r.source, context, key); ok {
			return value, true
		}
	}
	return "", false
}

// PropertyNames returns the sorted union of keys of all enumerable sources.
func (e *Environment) PropertyNames() []string {
	names := make(map[string]struct{})
	for _, r := range e.snapshot() {
		if es, ok := r.source.(EnumerableSource); ok {
			for _, name := range es.PropertyNames() {
				names[name] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(names))
}

// Subset returns the resolved properties below prefix with the prefix
// removed, e.g. Subset("log4j2.status") maps "log4j2.status.level" to "level".
func (e *Environment) Subset(prefix string) map[string]string {
	if prefix != "" && !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	result := make(map[string]string)
	for _, name := range e.PropertyNames() {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		if value, found := e.StringProperty(name); found {
			result[rest] = value
		}
	}
	return result
}
