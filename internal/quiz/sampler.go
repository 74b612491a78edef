package quiz

import (
	"math/rand/v2"
	"sync"
)

// Sampler picks k distinct indexes out of [0, n) without replacement.
type Sampler interface {
	Pick(n, k int) []int
}

type shuffleSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSampler returns an unseeded sampler for production use.
func NewRandomSampler() Sampler {
	return &shuffleSampler{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededSampler returns a sampler whose picks are reproducible for a seed.
func NewSeededSampler(seed uint64) Sampler {
	return &shuffleSampler{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Pick shuffles the full index range and keeps the first k entries.
func (s *shuffleSampler) Pick(n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}

	s.mu.Lock()
	perm := s.rng.Perm(n)
	s.mu.Unlock()

	return perm[:k]
}
