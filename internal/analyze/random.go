package analyze

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Rand is the randomness consumed by the generators. Implementations must be
// safe for concurrent use.
type Rand interface {
	// IntN returns a uniform integer in [0, n). n must be positive.
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

type globalRand struct{}

// GlobalRand returns a Rand backed by the process-wide generator of math/rand/v2,
// which is randomly seeded and safe for concurrent use.
func GlobalRand() Rand { return globalRand{} }

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand returns a deterministic Rand seeded with seed. Two sources with
// the same seed produce the same sequence of draws.
func NewLockedRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// sampler draws from a Rand and keeps the first failure, so a generator can
// take all its samples and check the error once.
type sampler struct {
	r   Rand
	err error
}

func pick[T any](s *sampler, name string, pool []T) T {
	var zero T
	if s.err != nil {
		return zero
	}
	if len(pool) == 0 {
		s.err = fmt.Errorf("%s pool is empty", name)
		return zero
	}
	return pool[s.r.IntN(len(pool))]
}

// uniform returns a float in [lo, hi).
func (s *sampler) uniform(lo, hi float64) float64 {
	if s.err != nil {
		return 0
	}
	return lo + (hi-lo)*s.r.Float64()
}

// between returns an integer in [lo, hi].
func (s *sampler) between(lo, hi int) int {
	if s.err != nil {
		return 0
	}
	if hi < lo {
		s.err = fmt.Errorf("empty integer range [%d, %d]", lo, hi)
		return 0
	}
	return lo + s.r.IntN(hi-lo+1)
}

// sample picks k distinct elements of pool in random order.
func (s *sampler) sample(name string, pool []string, k int) []string {
	if s.err != nil {
		return nil
	}
	if k < 0 || k > len(pool) {
		s.err = fmt.Errorf("sample of %d larger than %s pool of %d", k, name, len(pool))
		return nil
	}
	buf := make([]string, len(pool))
	copy(buf, pool)
	for i := 0; i < k; i++ {
		j := i + s.r.IntN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:k]
}
