// Package rng wraps the single global random stream spec.md §5 requires:
// one deterministic seedable generator, shared by the rules engine,
// search, and self-play harness, matching the teacher's
// rand.New(rand.NewSource(seed)) determinism idiom
// (simulation/runner.go) rather than the original's hand-rolled
// Lehmer generator (original_source/src/BMC_RNG.cpp) — stdlib math/rand
// reproduces the same "seed in, deterministic stream out" contract
// without porting a bespoke PRNG.
package rng

import (
	"math/rand"
	"time"
)

// Stream is the process-global RNG. spec.md §5 is explicit that
// getaction does not reseed between calls, so callers share one Stream
// rather than constructing a fresh generator per call.
type Stream struct {
	r *rand.Rand
}

// New constructs a Stream. A seed of 0 means "time-based", matching
// the `seed 0` protocol command (spec.md §6) and the original's
// BMC_RNG::SRand(0) convention.
func New(seed int64) *Stream {
	s := &Stream{}
	s.Seed(seed)
	return s
}

// Seed reseeds the stream. seed == 0 draws a time-based seed.
func (s *Stream) Seed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.r = rand.New(rand.NewSource(seed))
}

// Rand exposes the underlying *rand.Rand for callers (die.Roll, move
// generation sampling) that need the full math/rand API.
func (s *Stream) Rand() *rand.Rand { return s.r }

// Intn mirrors rand.Rand.Intn for the common case.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

// Float64 mirrors rand.Rand.Float64.
func (s *Stream) Float64() float64 { return s.r.Float64() }

// Shuffle mirrors rand.Rand.Shuffle, used by the search's biased swing
// sampling (spec.md §4.5 "Swing/option enumeration for the search").
func (s *Stream) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }
