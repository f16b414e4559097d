// File: lixenwraith/logprops/helper.go
package logprops

import (
	"maps"
	"slices"
	"strings"
)

// flattenMap converts a nested map[string]any to a flat map[string]any with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			maps.Copy(flat, flattenMap(v, newPath))
		case map[any]any:
			converted := make(map[string]any, len(v))
			for k, inner := range v {
				converted[stringifyValue(k)] = inner
			}
			maps.Copy(flat, flattenMap(converted, newPath))
		default:
			flat[newPath] = value
		}
	}

	return flat
}

// nestProperties turns dotted keys into a nested map. Keys are applied in
// sorted order, so when "a" and "a.b" both exist the deeper key wins.
func nestProperties(flat map[string]string) map[string]any {
	nested := make(map[string]any)
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		setNestedValue(nested, key, flat[key])
	}
	return nested
}

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		if next, ok := current[segment].(map[string]any); ok {
			current = next
			continue
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	lastSegment := segments[len(segments)-1]
	if _, isMap := current[lastSegment].(map[string]any); isMap {
		// a deeper key already claimed this path
		return
	}
	current[lastSegment] = value
}
