// Package shuffle provides the randomized permutation used to build rounds.
package shuffle

import "math/rand/v2"

// Source yields uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Default draws from the goroutine-safe global generator.
var Default Source = globalSource{}

// Shuffle returns a new slice holding a uniformly random permutation of in
// (Fisher–Yates, last index down to 1). The input is left untouched.
func Shuffle[T any](src Source, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Take returns a copy of the first n elements of in (all of them if n > len(in)).
func Take[T any](in []T, n int) []T {
	if n > len(in) {
		n = len(in)
	}
	if n < 0 {
		n = 0
	}
	out := make([]T, n)
	copy(out, in[:n])
	return out
}
