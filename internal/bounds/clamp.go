// Package bounds holds the numeric clamping helpers shared by every system
// that keeps a stat inside a fixed range.
package bounds

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Percent clamps v to the 0–100 stat range used for condition and happiness.
func Percent[T constraints.Integer](v T) T {
	return Clamp(v, 0, 100)
}

// Sum adds up a slice of numbers.
func Sum[T constraints.Integer | constraints.Float](vals []T) T {
	var total T
	for _, v := range vals {
		total += v
	}
	return total
}
