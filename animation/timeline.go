package animation

import (
	"time"

	"github.com/matt-g-everett/ledanim/style"
)

// ValueSource tells a view which layer a value belongs to. Values from the
// CSS layer give way to values set directly on the view.
type ValueSource int

const (
	ValueSourceLocal ValueSource = iota
	ValueSourceCSS
)

func (v ValueSource) String() string {
	if v == ValueSourceCSS {
		return "css"
	}
	return "local"
}

// Step is one timed transition handed to a view.
type Step struct {
	Curve       style.Curve   `yaml:"curve"`
	Values      Declarations  `yaml:"values"`
	Duration    time.Duration `yaml:"duration"`
	ValueSource ValueSource   `yaml:"-"`
}

// Timeline expands the keyframes into steps. Each step lasts from the
// previous keyframe to its own; reverse playback visits keyframes from last
// to first and mirrors each step length within the group duration. The
// first step always lasts MinStepDuration so playback starts at once.
func (g *Group) Timeline() []Step {
	n := len(g.Keyframes)
	if n == 0 {
		return nil
	}

	steps := make([]Step, 0, n)
	var start time.Duration
	for i := 0; i < n; i++ {
		k := g.Keyframes[i]
		if g.IsReverse {
			k = g.Keyframes[n-1-i]
		}

		var d time.Duration
		if k.Offset == 0 {
			d = MinStepDuration
		} else {
			d = time.Duration(float64(g.Duration)*k.Offset) - start
			start += d
		}
		if g.IsReverse {
			d = g.Duration - d
		}

		values := make(Declarations, len(k.Declarations))
		copy(values, k.Declarations)
		steps = append(steps, Step{
			Curve:       g.Curve,
			Values:      values,
			Duration:    d,
			ValueSource: ValueSourceCSS,
		})
	}

	steps[0].Duration = MinStepDuration
	return steps
}
