package store

import (
	"maps"
	"slices"
)

// Configuration maps setting keys to values.
type Configuration map[string]string

// Clone returns an independent copy. A nil receiver yields an empty map.
func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	maps.Copy(out, c)
	return out
}

// Keys returns the keys in sorted order.
func (c Configuration) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}

// Merge overlays persisted onto defaults. Persisted keys win; keys only in
// defaults keep their default; keys only in persisted are preserved.
func Merge(defaults Configuration, persisted map[string]string) Configuration {
	out := defaults.Clone()
	maps.Copy(out, persisted)
	return out
}
