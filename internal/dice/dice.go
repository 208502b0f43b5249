// Package dice provides the single seeded random source used by a game
// session: die rolls, weighted draws and shuffles.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// D20 is the number of sides on the die used for every contested roll.
const D20 = 20

// Roller is the random source consumed by the world, combat and scheduler.
type Roller interface {
	// Roll returns a value in [1, sides].
	Roll(sides int) int
	// Intn returns a value in [0, n).
	Intn(n int) int
	// WeightedSelect returns an index chosen proportionally to weights.
	WeightedSelect(weights []int) int
}

// RNG wraps math/rand.Rand and counts how many draws were made.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// NewSeed generates a seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	r.pos++
	return r.src.Intn(sides) + 1
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// WeightedSelect returns an index chosen by weighted random selection.
// Weights must be non-empty with a positive total.
func (r *RNG) WeightedSelect(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	r.pos++
	roll := r.src.Intn(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// RollD20 rolls the contest die.
func RollD20(r Roller) int {
	return r.Roll(D20)
}

// Shuffle permutes xs in place with the Fisher–Yates algorithm. Every
// permutation is equally likely.
func Shuffle(r Roller, xs []int) {
	for i := len(xs) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// Chance reports whether a percent-chance draw succeeds.
func Chance(r Roller, percent int) bool {
	return r.Intn(100) < percent
}

var _ Roller = (*RNG)(nil)
