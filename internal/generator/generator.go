// Package generator builds round target numbers.
package generator

import (
	"math/big"
	"math/rand"
	"time"
)

// Generator produces randomized composite numbers.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed for reproducible rounds.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate draws level+1 primes uniformly with replacement and returns their
// product along with the draws in order. primes must not be empty.
func (g *Generator) Generate(level int, primes []int) (*big.Int, []int) {
	if len(primes) == 0 {
		panic("generator: empty prime set")
	}
	count := level + 1
	if count < 1 {
		count = 1
	}
	number := big.NewInt(1)
	factors := make([]int, 0, count)
	for i := 0; i < count; i++ {
		p := primes[g.rnd.Intn(len(primes))]
		factors = append(factors, p)
		number.Mul(number, big.NewInt(int64(p)))
	}
	return number, factors
}
