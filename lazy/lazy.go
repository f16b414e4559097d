// Package lazy provides lazily initialized values that are safe for concurrent
// first access.
//
// A Value runs its initializer at most once per successful initialization.
// Readers that arrive after initialization completes observe the fully
// constructed value without taking a lock. A failing initializer leaves the
// Value uninitialized so a later Get retries.
package lazy

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Value is a lazily computed, resettable value.
type Value[T any] struct {
	supplier func() (T, error)
	mu       sync.Mutex
	value    atomic.Pointer[T]
}

// New creates a Value that computes its content with supplier on first use.
func New[T any](supplier func() (T, error)) *Value[T] {
	return &Value[T]{supplier: supplier}
}

// Of creates a Value from an initializer that cannot fail.
func Of[T any](supplier func() T) *Value[T] {
	return New(func() (T, error) { return supplier(), nil })
}

// Get returns the value, running the initializer if needed.
func (v *Value[T]) Get() (T, error) {
	if p := v.value.Load(); p != nil {
		return *p, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if p := v.value.Load(); p != nil {
		return *p, nil
	}

	var zero T
	if v.supplier == nil {
		return zero, fmt.Errorf("lazy value has no initializer")
	}
	result, err := v.supplier()
	if err != nil {
		return zero, err
	}
	v.value.Store(&result)
	return result, nil
}

// MustGet is like Get but panics if the initializer fails.
func (v *Value[T]) MustGet() T {
	result, err := v.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy initialization failed: %v", err))
	}
	return result
}

// IsInitialized reports whether a value is currently held.
func (v *Value[T]) IsInitialized() bool {
	return v.value.Load() != nil
}

// Set replaces the value without running the initializer.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value.Store(&value)
}

// Reset drops the held value; the next Get runs the initializer again.
func (v *Value[T]) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value.Store(nil)
}

// Pure wraps an already computed value.
func Pure[T any](value T) *Value[T] {
	v := &Value[T]{supplier: func() (T, error) { return value, nil }}
	v.value.Store(&value)
	return v
}

// Map derives a lazy value from another. The source is evaluated when the
// derived value is first requested.
func Map[T, R any](source *Value[T], fn func(T) R) *Value[R] {
	return New(func() (R, error) {
		in, err := source.Get()
		if err != nil {
			var zero R
			return zero, err
		}
		return fn(in), nil
	})
}
