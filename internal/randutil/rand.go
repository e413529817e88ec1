// Package randutil builds the random sources used by scenario generation.
package randutil

import (
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64,
// so that a training session replayed with the same seed deals the same spots.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewOrRandom returns New(seed) for a non-zero seed and an unpredictable
// source otherwise. The chosen seed is returned so it can be logged.
func NewOrRandom(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = rand.Int64()
	}
	return New(seed), seed
}

// Derive returns the seed of the i-th independent stream under seed.
func Derive(seed int64, i int) int64 {
	return int64(mix(uint64(seed) + uint64(i+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
