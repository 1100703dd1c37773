// Package sliceutil folds slices into sums, groups and flattened or
// deduplicated copies.
package sliceutil

import "cmp"

// Number is any type supporting + and *.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum returns the sum of xs, 0 for an empty slice.
func Sum[T Number](xs []T) T {
	var total T
	for _, x := range xs {
		total += x
	}
	return total
}

// Product returns the product of xs, 1 for an empty slice.
func Product[T Number](xs []T) T {
	total := T(1)
	for _, x := range xs {
		total *= x
	}
	return total
}

// Max returns the largest element of xs. ok is false for an empty slice.
func Max[T cmp.Ordered](xs []T) (m T, ok bool) {
	for i, x := range xs {
		if i == 0 || x > m {
			m = x
		}
	}
	return m, len(xs) > 0
}

// GroupBy buckets xs by key. Elements keep their relative order inside a
// bucket.
func GroupBy[T any, K comparable](xs []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, x := range xs {
		k := key(x)
		groups[k] = append(groups[k], x)
	}
	return groups
}

// Dedup returns the first occurrence of every element of xs, in order.
func Dedup[T comparable](xs []T) []T {
	seen := make(map[T]struct{}, len(xs))
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}

// Flatten concatenates xss into one slice. Only one level is removed.
func Flatten[T any](xss [][]T) []T {
	n := 0
	for _, xs := range xss {
		n += len(xs)
	}
	out := make([]T, 0, n)
	for _, xs := range xss {
		out = append(out, xs...)
	}
	return out
}
