package cipher

import (
	"math/rand/v2"
	"sync"
)

// RandSource supplies randomness to nondeterministic schemes.
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

// globalRand draws from the runtime-seeded math/rand/v2 top-level source,
// which is safe for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// lockedRand serialises access to a source that is not goroutine safe.
type lockedRand struct {
	mu  sync.Mutex
	src RandSource
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// NewLockedRand wraps src so it can be shared between goroutines.
func NewLockedRand(src RandSource) RandSource {
	switch src.(type) {
	case nil:
		return globalRand{}
	case globalRand, *lockedRand:
		return src
	}
	return &lockedRand{src: src}
}
