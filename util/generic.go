// util/generic.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

func Select[T any](sel bool, a, b T) T {
	if sel {
		return a
	} else {
		return b
	}
}

// Clamp limits v to the range [low, high].
func Clamp[T constraints.Ordered](v, low, high T) T {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// FilterSlice returns a new slice containing the elements of s for which
// the predicate returns true.
func FilterSlice[V any](s []V, pred func(V) bool) []V {
	var r []V
	for _, v := range s {
		if pred(v) {
			r = append(r, v)
		}
	}
	return r
}

// FilterSliceInPlace is like FilterSlice but reuses the storage of the
// given slice.
func FilterSliceInPlace[V any](s []V, pred func(V) bool) []V {
	r := s[:0]
	for _, v := range s {
		if pred(v) {
			r = append(r, v)
		}
	}
	return r
}

// FlattenMap takes a map and returns separate slices corresponding to the
// keys and values stored in the map.  (The slices are ordered so that the
// i'th key corresponds to the i'th value, needless to say.)
func FlattenMap[K comparable, V any](m map[K]V) ([]K, []V) {
	keys := make([]K, 0, len(m))
	values := make([]V, 0, len(m))
	for k, v := range m {
		keys = append(keys, k)
		values = append(values, v)
	}
	return keys, values
}

// SortedMapKeys returns the keys of the given map, sorted from low to high.
// Iterating personnel and pool maps via sorted keys is what keeps tick
// results independent of Go's map iteration order.
func SortedMapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys, _ := FlattenMap(m)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
