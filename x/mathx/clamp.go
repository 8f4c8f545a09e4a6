package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// NextIn returns the element after cur in ring, wrapping to the first.
// When cur is absent the first element is returned; an empty ring yields cur.
func NextIn[T comparable](ring []T, cur T) T {
	if len(ring) == 0 {
		return cur
	}
	for i, v := range ring {
		if v == cur {
			return ring[(i+1)%len(ring)]
		}
	}
	return ring[0]
}
