// Package recycler reuses short-lived objects to keep allocation off hot paths.
//
// The backend is chosen once, either from a spec string such as
// "queue:capacity=64" or by Detect, and never changes for a Recycler.
package recycler

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// Backend identifies a recycling strategy.
type Backend int

const (
	// Dummy allocates a fresh object on every Acquire and drops released ones.
	Dummy Backend = iota
	// Pool is backed by sync.Pool. This is the fast backend.
	Pool
	// Queue keeps released objects in a bounded buffered channel.
	Queue
)

// ErrInvalidSpec is returned by ParseSpec for unrecognized input.
var ErrInvalidSpec = errors.New("invalid recycler spec")

func (b Backend) String() string {
	switch b {
	case Dummy:
		return "dummy"
	case Pool:
		return "pool"
	case Queue:
		return "queue"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// DefaultCapacity is the queue capacity used when a spec does not name one.
func DefaultCapacity() int {
	return max(2*runtime.NumCPU()+1, 8)
}

// Detect probes the runtime and returns the preferred backend. sync.Pool keeps
// per-P caches, so it only pays off when more than one P is available.
func Detect() Backend {
	if runtime.GOMAXPROCS(0) > 1 {
		return Pool
	}
	return Queue
}

// Spec is a parsed recycler configuration.
type Spec struct {
	Backend  Backend
	Capacity int
}

// ParseSpec parses "dummy", "pool", "queue" or "queue:capacity=N".
// An empty string yields the Detect result.
func ParseSpec(spec string) (Spec, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Spec{Backend: Detect(), Capacity: DefaultCapacity()}, nil
	}

	name, args, hasArgs := strings.Cut(spec, ":")
	result := Spec{Capacity: DefaultCapacity()}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dummy":
		result.Backend = Dummy
	case "pool", "threadlocal":
		result.Backend = Pool
	case "queue":
		result.Backend = Queue
	default:
		return Spec{}, fmt.Errorf("%w: unknown backend %q", ErrInvalidSpec, name)
	}

	if !hasArgs {
		return result, nil
	}
	if result.Backend != Queue {
		return Spec{}, fmt.Errorf("%w: backend %s takes no arguments", ErrInvalidSpec, result.Backend)
	}
	for _, arg := range strings.Split(args, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(arg), "=")
		if !ok || strings.TrimSpace(key) != "capacity" {
			return Spec{}, fmt.Errorf("%w: unknown argument %q", ErrInvalidSpec, arg)
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || capacity < 1 {
			return Spec{}, fmt.Errorf("%w: capacity must be a positive integer, got %q", ErrInvalidSpec, value)
		}
		result.Capacity = capacity
	}
	return result, nil
}

// Recycler hands out reusable objects.
type Recycler[V any] interface {
	// Acquire returns an object ready for use.
	Acquire() V
	// Release returns an object obtained from Acquire.
	Release(value V)
}

// New creates a Recycler for spec. factory builds new objects; cleaner, if
// not nil, resets an object before it is stored for reuse.
func New[V any](spec Spec, factory func() V, cleaner func(V)) Recycler[V] {
	if cleaner == nil {
		cleaner = func(V) {}
	}
	switch spec.Backend {
	case Pool:
		r := &poolRecycler[V]{cleaner: cleaner}
		r.pool.New = func() any { return factory() }
		return r
	case Queue:
		capacity := spec.Capacity
		if capacity < 1 {
			capacity = DefaultCapacity()
		}
		return &queueRecycler[V]{factory: factory, cleaner: cleaner, queue: make(chan V, capacity)}
	default:
		return dummyRecycler[V]{factory: factory}
	}
}

type dummyRecycler[V any] struct {
	factory func() V
}

func (r dummyRecycler[V]) Acquire() V { return r.factory() }
func (r dummyRecycler[V]) Release(V)  {}

type poolRecycler[V any] struct {
	pool    sync.Pool
	cleaner func(V)
}

func (r *poolRecycler[V]) Acquire() V {
	return r.pool.Get().(V)
}

func (r *poolRecycler[V]) Release(value V) {
	r.cleaner(value)
	r.pool.Put(value)
}

type queueRecycler[V any] struct {
	factory func() V
	cleaner func(V)
	queue   chan V
}

func (r *queueRecycler[V]) Acquire() V {
	select {
	case v := <-r.queue:
		return v
	default:
		return r.factory()
	}
}

func (r *queueRecycler[V]) Release(value V) {
	r.cleaner(value)
	select {
	case r.queue <- value:
	default:
		// queue full, let the object be collected
	}
}
