// Package rng provides a single uniform-integer-over-[0,100) source for
// probabilistic worker decisions, made thread-safe for parallel access the
// way original_source/console_utils.c's thread_safe_rand wraps rand() in a
// mutex.
package rng

import (
	"math/rand"
	"sync"
)

// Source is a thread-safe uniform integer generator over [0, 100).
type Source struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New creates a Source seeded with seed. Callers that don't care about
// reproducibility can pass time.Now().UnixNano().
func New(seed int64) *Source {
	return &Source{rnd: rand.New(rand.NewSource(seed))}
}

// Percent returns a uniform integer in [0, 100).
func (s *Source) Percent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(100)
}

// Below reports whether a fresh draw from Percent is less than threshold,
// the shape every probabilistic worker decision in this module takes
// ("with probability 0.30 Paint", "fail with probability 0.05").
func (s *Source) Below(thresholdPercent int) bool {
	return s.Percent() < thresholdPercent
}
