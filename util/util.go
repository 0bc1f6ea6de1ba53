package util

import (
	"sync"

	"github.com/matt-g-everett/ledanim/style"
)

// GenerateLut samples fn at length evenly spaced points over [0,1].
func GenerateLut(length int, fn func(float64) float64) []float64 {
	if length < 2 {
		return []float64{fn(1)}
	}
	increment := 1.0 / float64(length-1)
	lut := make([]float64, length)
	for i := range lut {
		lut[i] = fn(float64(i) * increment)
	}
	lut[length-1] = fn(1)
	return lut
}

type lutKey struct {
	curve  style.Curve
	length int
}

// Memoizer caches easing look-up tables by curve and length.
type Memoizer struct {
	mu   sync.Mutex
	luts map[lutKey][]float64
}

// NewMemoizer creates an empty Memoizer.
func NewMemoizer() *Memoizer {
	m := new(Memoizer)
	m.luts = make(map[lutKey][]float64)
	return m
}

// Lut returns the table for curve with length entries. The returned slice
// is shared and must not be modified.
func (m *Memoizer) Lut(curve style.Curve, length int) []float64 {
	key := lutKey{curve, length}

	m.mu.Lock()
	defer m.mu.Unlock()
	if lut, ok := m.luts[key]; ok {
		return lut
	}
	lut := GenerateLut(length, curve.Ease)
	m.luts[key] = lut
	return lut
}
