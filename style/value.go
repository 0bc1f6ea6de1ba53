package style

import (
	"fmt"
	"strconv"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindScalar ValueKind = iota
	KindNumber
	KindColor
	KindPair
)

// Pair is a 2-D value used by scale and translate.
type Pair struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Value is a typed property value: a number, a colour, a 2-D pair or an
// opaque scalar kept as written in the stylesheet.
type Value struct {
	Kind   ValueKind
	Number float64
	Color  Color
	Pair   Pair
	Scalar string
}

func NumberValue(f float64) Value { return Value{Kind: KindNumber, Number: f} }
func ColorValue(c Color) Value    { return Value{Kind: KindColor, Color: c} }
func PairValue(p Pair) Value      { return Value{Kind: KindPair, Pair: p} }
func ScalarValue(s string) Value  { return Value{Kind: KindScalar, Scalar: s} }

// Float returns the value as a number. Scalars are parsed on demand so that
// raw pass-through values such as "45" remain usable.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Number, true
	case KindScalar:
		f, err := strconv.ParseFloat(v.Scalar, 64)
		return f, err == nil
	}
	return 0, false
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindColor:
		return v.Color.String()
	case KindPair:
		return fmt.Sprintf("(%g, %g)", v.Pair.X, v.Pair.Y)
	}
	return v.Scalar
}

// MarshalYAML renders the value the way it would be written in CSS.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case KindNumber:
		return v.Number, nil
	case KindPair:
		return v.Pair, nil
	}
	return v.String(), nil
}
