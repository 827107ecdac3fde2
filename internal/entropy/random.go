// Package entropy provides the seeded randomness every stochastic system
// draws from. A single *rand.Rand is threaded through the tick so a seed
// reproduces a whole campaign.
package entropy

import (
	"math/rand"
	"time"
)

// NewSource returns a seeded generator. Seed 0 picks one from the clock.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Percent reports true with probability pct/100.
func Percent(rng *rand.Rand, pct int) bool {
	return rng.Intn(100) < pct
}

// Permille reports true with probability n/1000.
func Permille(rng *rand.Rand, n int) bool {
	return rng.Intn(1000) < n
}

// Chance reports true with probability p in [0, 1].
func Chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// Between returns a uniform integer in [lo, hi].
func Between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Pick returns a uniformly chosen element.
func Pick[T any](rng *rand.Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[rng.Intn(len(items))], true
}

// Weighted draws a key proportionally to its weight. Keys are visited in the
// given order so the draw is stable for a seed; non-positive weights never win.
func Weighted[K comparable](rng *rand.Rand, keys []K, weights map[K]int) (K, bool) {
	var zero K
	total := 0
	for _, k := range keys {
		if w := weights[k]; w > 0 {
			total += w
		}
	}
	if total == 0 {
		return zero, false
	}
	roll := rng.Intn(total)
	for _, k := range keys {
		w := weights[k]
		if w <= 0 {
			continue
		}
		if roll < w {
			return k, true
		}
		roll -= w
	}
	return zero, false
}
