// Package picker draws random kanji records.
package picker

import (
	"errors"
	"math/rand"
	"time"
)

// ErrEmptyInput is returned when there is nothing to pick from.
var ErrEmptyInput = errors.New("cannot pick from an empty sequence")

// Picker draws uniformly random elements.
type Picker struct {
	rnd *rand.Rand
}

// New returns a Picker seeded with the current time.
func New() *Picker {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Picker.
func NewWithSeed(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Index returns a uniform index in [0, n).
func (p *Picker) Index(n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyInput
	}
	return p.rnd.Intn(n), nil
}

// Pick returns one element of items drawn uniformly. items is not modified.
func Pick[T any](p *Picker, items []T) (T, error) {
	var zero T
	idx, err := p.Index(len(items))
	if err != nil {
		return zero, err
	}
	return items[idx], nil
}
