package main

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// newDeterministicRNG derives an independent random stream from the course
// seed and a subsystem label. Generation and per-tick effects each hold
// their own explicitly threaded stream; nothing draws from the global
// source.
func newDeterministicRNG(seed, label string) *rand.Rand {
	sum := sha256.Sum256([]byte(seed + ":" + label))
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(sum[:8]))))
}

func randomRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}
