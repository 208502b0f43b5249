// Package dicetest provides a scripted dice.Roller for deterministic tests.
package dicetest

import "github.com/samdwyer/otherside/internal/dice"

// Sequence returns queued values in order. Roll, Intn and WeightedSelect all
// consume from the same queue. Once the queue is drained, Roll returns 1 and
// Intn/WeightedSelect return 0.
//
// Values are clamped into the valid range of the call that consumes them so a
// script cannot produce an impossible roll.
type Sequence struct {
	values []int
	Calls  int
}

// NewSequence creates a scripted roller.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Push appends more values to the queue.
func (s *Sequence) Push(values ...int) {
	s.values = append(s.values, values...)
}

// Remaining returns how many scripted values are left.
func (s *Sequence) Remaining() int {
	return len(s.values)
}

func (s *Sequence) next() (int, bool) {
	s.Calls++
	if len(s.values) == 0 {
		return 0, false
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v, true
}

// Roll returns the next value clamped to [1, sides].
func (s *Sequence) Roll(sides int) int {
	v, ok := s.next()
	if !ok {
		return 1
	}
	return clamp(v, 1, sides)
}

// Intn returns the next value clamped to [0, n).
func (s *Sequence) Intn(n int) int {
	v, ok := s.next()
	if !ok {
		return 0
	}
	return clamp(v, 0, n-1)
}

// WeightedSelect returns the next value as an index into weights.
func (s *Sequence) WeightedSelect(weights []int) int {
	v, ok := s.next()
	if !ok {
		return 0
	}
	return clamp(v, 0, len(weights)-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ dice.Roller = (*Sequence)(nil)
