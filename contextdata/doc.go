// File: lixenwraith/logprops/contextdata/doc.go

// Package contextdata provides the string-keyed maps that carry diagnostic
// context through the logging hot path.
//
// The central type is SortedArrayStringMap: keys and values live in two
// parallel slices with the keys kept in ascending order, so lookups are a
// binary search and traversal walks the slices by index without allocating.
// The map is built for small entry counts and single-owner use.
//
// Lifecycle:
//
//	m := contextdata.NewSortedArrayStringMap()
//	_ = m.Put("requestId", "abc-123")
//	_ = m.Put("user", "alice")
//	m.Freeze() // read-only from here on
//
//	m.ForEach(func(key string, value any) {
//	    fmt.Println(key, value)
//	})
//
// Guards:
//   - A frozen map rejects every mutation with ErrFrozen.
//   - Mutating a map from inside its own ForEach visitor fails with
//     ErrConcurrentModification. This is a reentrancy check for the owning
//     goroutine, not a lock; the map is not safe for concurrent mutation.
//
// Copying one SortedArrayStringMap into an empty one is a bulk slice copy,
// which keeps per-event snapshots of the context at O(n).
package contextdata
