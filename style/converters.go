package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTime   = errors.New("invalid time")
	ErrInvalidCurve  = errors.New("invalid timing function")
	ErrInvalidNumber = errors.New("invalid number")
)

// ParseTime reads a CSS time such as "300ms" or "0.3s". A bare number is
// taken as seconds.
func ParseTime(s string) (time.Duration, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(f * float64(time.Second)), nil
	}
	if !strings.HasSuffix(v, "s") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return d, nil
}

// ParseTimingFunction reads an animation-timing-function value.
func ParseTimingFunction(s string) (Curve, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for kind, name := range curveNames {
		if v == name {
			return Curve{Kind: kind}, nil
		}
	}
	if !strings.HasPrefix(v, "cubic-bezier(") {
		return Curve{}, fmt.Errorf("%w: %q", ErrInvalidCurve, s)
	}
	fns := calls(v)
	if len(fns) != 1 || len(fns[0].args) != 4 {
		return Curve{}, fmt.Errorf("%w: %q", ErrInvalidCurve, s)
	}
	var p [4]float64
	for i, arg := range fns[0].args {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Curve{}, fmt.Errorf("%w: %q", ErrInvalidCurve, s)
		}
		p[i] = f
	}
	if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
		return Curve{}, fmt.Errorf("%w: %q: x control points must be in [0,1]", ErrInvalidCurve, s)
	}
	return CubicBezier(p[0], p[1], p[2], p[3]), nil
}

// ParseNumber reads a plain CSS number.
func ParseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return f, nil
}
