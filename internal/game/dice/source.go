package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"sync"
)

// float53 is the number of distinct Float64 values a source can produce.
const float53 = 1 << 53

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed in [0, n) for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n); every value
// returned by Float64 is in [0, 1).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a float in [0, 1) with 53 bits of precision.
func (c *cryptoSource) Float64() float64 {
	return float64(c.Intn(float53)) / float53
}

// seededSource is a reproducible Source for simulations.
type seededSource struct {
	mu  sync.Mutex
	rnd *mrand.Rand
}

// NewSeededSource returns a deterministic Source: two sources built from the
// same seed produce the same sequence of draws.
func NewSeededSource(seed int64) Source {
	return &seededSource{rnd: mrand.New(mrand.NewSource(seed))}
}

// Intn returns a random int in [0, n).
//
// Precondition: n > 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Float64 returns a random float in [0, 1).
func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// NewSource picks the configured source: seed 0 selects crypto/rand, any
// other value a seeded source.
func NewSource(seed int64) Source {
	if seed == 0 {
		return NewCryptoSource()
	}
	return NewSeededSource(seed)
}
