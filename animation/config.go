package animation

import (
	"math"
	"time"

	"github.com/matt-g-everett/ledanim/style"
)

// Infinite is the iteration count of an animation that repeats until it is
// cancelled.
const Infinite = math.MaxInt

// MinStepDuration replaces zero-length steps so the view always receives a
// real transition.
const MinStepDuration = 10 * time.Millisecond

// Config holds the values a Group starts with before any declaration is
// applied.
type Config struct {
	Duration   time.Duration
	Delay      time.Duration
	Iterations int
	Curve      style.Curve
}

// DefaultConfig returns 300ms duration, no delay, a single iteration and an
// ease-in-out curve.
func DefaultConfig() Config {
	return Config{
		Duration:   300 * time.Millisecond,
		Delay:      0,
		Iterations: 1,
		Curve:      style.EaseInOut,
	}
}
