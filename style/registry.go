package style

import (
	"math"
	"strings"
)

// Expander splits a shorthand value into its component properties. Values it
// cannot read produce no components.
type Expander func(value string) []PropertyValue

// Registry maps CSS property names to animatable properties and expands
// shorthands into component pairs.
type Registry struct {
	properties map[string]Property
	shorthands map[string]Expander
}

// Default is the registry used when none is supplied.
var Default = NewRegistry()

// NewRegistry returns a registry knowing the animatable properties and the
// transform, scale, translate and background shorthands.
func NewRegistry() *Registry {
	r := &Registry{
		properties: make(map[string]Property),
		shorthands: make(map[string]Expander),
	}
	r.Register("opacity", Opacity)
	r.Register("background-color", BackgroundColor)
	r.Register("rotate", Rotate)

	r.RegisterShorthand("transform", expandTransform)
	r.RegisterShorthand("scale", expandScale)
	r.RegisterShorthand("translate", expandTranslate)
	r.RegisterShorthand("background", expandBackground)
	return r
}

// Register binds a CSS property name to p.
func (r *Registry) Register(cssName string, p Property) {
	r.properties[strings.ToLower(cssName)] = p
}

// RegisterShorthand binds a shorthand CSS property name to its expander.
func (r *Registry) RegisterShorthand(cssName string, e Expander) {
	r.shorthands[strings.ToLower(cssName)] = e
}

// PropertyByCSSName looks up a directly animatable property.
func (r *Registry) PropertyByCSSName(name string) (Property, bool) {
	p, ok := r.properties[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// ShorthandPairs expands a shorthand declaration. Unknown shorthands and
// unreadable values yield nil.
func (r *Registry) ShorthandPairs(name, value string) []PropertyValue {
	e, ok := r.shorthands[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return e(value)
}

func expandTransform(value string) []PropertyValue {
	if strings.EqualFold(strings.TrimSpace(value), "none") {
		return []PropertyValue{
			{ScaleX, NumberValue(1)},
			{ScaleY, NumberValue(1)},
			{TranslateX, NumberValue(0)},
			{TranslateY, NumberValue(0)},
			{Rotate, NumberValue(0)},
		}
	}

	var out []PropertyValue
	for _, fn := range calls(value) {
		switch fn.name {
		case "scale":
			out = append(out, scalePairs(fn.args)...)
		case "scalex":
			if x, ok := number(fn.args, 0); ok {
				out = append(out, PropertyValue{ScaleX, NumberValue(x)})
			}
		case "scaley":
			if y, ok := number(fn.args, 0); ok {
				out = append(out, PropertyValue{ScaleY, NumberValue(y)})
			}
		case "translate":
			out = append(out, translatePairs(fn.args)...)
		case "translatex":
			if x, ok := length(fn.args, 0); ok {
				out = append(out, PropertyValue{TranslateX, NumberValue(x)})
			}
		case "translatey":
			if y, ok := length(fn.args, 0); ok {
				out = append(out, PropertyValue{TranslateY, NumberValue(y)})
			}
		case "rotate", "rotatez":
			if len(fn.args) > 0 {
				if deg, ok := ParseAngle(fn.args[0]); ok {
					out = append(out, PropertyValue{Rotate, NumberValue(deg)})
				}
			}
		}
	}
	return out
}

func expandScale(value string) []PropertyValue {
	return scalePairs(strings.Fields(value))
}

func expandTranslate(value string) []PropertyValue {
	return translatePairs(strings.Fields(value))
}

func expandBackground(value string) []PropertyValue {
	if c, err := ParseColor(value); err == nil {
		return []PropertyValue{{BackgroundColor, ColorValue(c)}}
	}
	for _, token := range strings.Fields(value) {
		if c, err := ParseColor(token); err == nil {
			return []PropertyValue{{BackgroundColor, ColorValue(c)}}
		}
	}
	return nil
}

func scalePairs(args []string) []PropertyValue {
	x, ok := number(args, 0)
	if !ok {
		return nil
	}
	y, ok := number(args, 1)
	if !ok {
		y = x
	}
	return []PropertyValue{{ScaleX, NumberValue(x)}, {ScaleY, NumberValue(y)}}
}

func translatePairs(args []string) []PropertyValue {
	x, ok := length(args, 0)
	if !ok {
		return nil
	}
	y, ok := length(args, 1)
	if !ok {
		y = 0
	}
	return []PropertyValue{{TranslateX, NumberValue(x)}, {TranslateY, NumberValue(y)}}
}

func number(args []string, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	f, unit, ok := dimension(args[i])
	if !ok {
		return 0, false
	}
	switch unit {
	case "":
		return f, true
	case "%":
		return f / 100, true
	}
	return 0, false
}

// length reads a pixel length; unitless numbers are taken as pixels.
func length(args []string, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	f, unit, ok := dimension(args[i])
	if !ok || (unit != "" && unit != "px") {
		return 0, false
	}
	return f, true
}

// ParseAngle reads a CSS angle and returns it in degrees. Unitless numbers are
// taken as degrees.
func ParseAngle(s string) (float64, bool) {
	f, unit, ok := dimension(s)
	if !ok {
		return 0, false
	}
	switch unit {
	case "", "deg":
		return f, true
	case "rad":
		return f * 180 / math.Pi, true
	case "turn":
		return f * 360, true
	case "grad":
		return f * 0.9, true
	}
	return 0, false
}
