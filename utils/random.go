package utils

import "math/rand"

// Rand is the randomness the games and rewards draw from. Tests swap in a
// scripted source.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Perm(n int) []int
}

type globalRand struct{}

func (globalRand) Intn(n int) int   { return rand.Intn(n) }
func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) Perm(n int) []int { return rand.Perm(n) }

// DefaultRand uses the goroutine-safe top-level math/rand source.
var DefaultRand Rand = globalRand{}

// Between returns a uniform integer in [lo, hi].
func Between(r Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + int64(r.Intn(int(hi-lo+1)))
}

// Uniform returns a float in [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
