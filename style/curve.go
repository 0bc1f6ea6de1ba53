package style

import (
	"fmt"
	"math"

	"github.com/fogleman/ease"
)

// CurveKind names an easing curve family.
type CurveKind int

const (
	CurveLinear CurveKind = iota
	CurveEase
	CurveEaseIn
	CurveEaseOut
	CurveEaseInOut
	CurveSpring
	CurveCubicBezier
)

// Curve is an easing curve. Control points are only meaningful for
// CurveCubicBezier.
type Curve struct {
	Kind           CurveKind
	X1, Y1, X2, Y2 float64
}

var (
	Linear    = Curve{Kind: CurveLinear}
	Ease      = Curve{Kind: CurveEase}
	EaseIn    = Curve{Kind: CurveEaseIn}
	EaseOut   = Curve{Kind: CurveEaseOut}
	EaseInOut = Curve{Kind: CurveEaseInOut}
	Spring    = Curve{Kind: CurveSpring}
)

// CubicBezier returns a curve through (0,0), (x1,y1), (x2,y2), (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return Curve{Kind: CurveCubicBezier, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

var curveNames = map[CurveKind]string{
	CurveLinear:    "linear",
	CurveEase:      "ease",
	CurveEaseIn:    "ease-in",
	CurveEaseOut:   "ease-out",
	CurveEaseInOut: "ease-in-out",
	CurveSpring:    "spring",
}

func (c Curve) String() string {
	if c.Kind == CurveCubicBezier {
		return fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", c.X1, c.Y1, c.X2, c.Y2)
	}
	return curveNames[c.Kind]
}

// MarshalYAML writes the curve in its CSS form.
func (c Curve) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Ease maps linear progress t in [0,1] to eased progress.
func (c Curve) Ease(t float64) float64 {
	t = clamp01(t)
	switch c.Kind {
	case CurveEase:
		return ease.InOutSine(t)
	case CurveEaseIn:
		return ease.InQuad(t)
	case CurveEaseOut:
		return ease.OutQuad(t)
	case CurveEaseInOut:
		return ease.InOutQuad(t)
	case CurveSpring:
		return ease.OutBack(t)
	case CurveCubicBezier:
		return c.bezier(t)
	}
	return ease.Linear(t)
}

func (c Curve) bezier(x float64) float64 {
	if x == 0 || x == 1 {
		return x
	}
	cx := 3 * c.X1
	bx := 3*(c.X2-c.X1) - cx
	ax := 1 - cx - bx
	cy := 3 * c.Y1
	by := 3*(c.Y2-c.Y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	const epsilon = 1e-7
	t := x
	for i := 0; i < 8; i++ {
		dx := sampleX(t) - x
		if math.Abs(dx) < epsilon {
			return ((ay*t+by)*t + cy) * t
		}
		d := slopeX(t)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= dx / d
	}

	// Newton did not converge, fall back to bisection.
	lo, hi := 0.0, 1.0
	t = x
	for lo < hi {
		v := sampleX(t)
		if math.Abs(v-x) < epsilon {
			break
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		t = (hi-lo)/2 + lo
		if hi-lo < epsilon {
			break
		}
	}
	return ((ay*t+by)*t + cy) * t
}
