package animation

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/matt-g-everett/ledanim/css"
	"github.com/matt-g-everett/ledanim/style"
)

// Registry resolves CSS property names for the normalizer. *style.Registry
// implements it.
type Registry interface {
	PropertyByCSSName(name string) (style.Property, bool)
	ShorthandPairs(name, value string) []style.PropertyValue
}

// transforms accumulates transform components across the declarations of a
// single keyframe rule.
type transforms struct {
	scale     *style.Pair
	translate *style.Pair
}

// fold consumes scale and translate components. It reports false for any
// other property.
func (t *transforms) fold(pv style.PropertyValue) bool {
	switch pv.Property {
	case style.ScaleX, style.ScaleY:
		if t.scale == nil {
			t.scale = &style.Pair{X: 1, Y: 1}
		}
		if f, ok := pv.Value.Float(); ok {
			if pv.Property == style.ScaleX {
				t.scale.X = f
			} else {
				t.scale.Y = f
			}
		}
		return true
	case style.TranslateX, style.TranslateY:
		if t.translate == nil {
			t.translate = &style.Pair{}
		}
		if f, ok := pv.Value.Float(); ok {
			if pv.Property == style.TranslateX {
				t.translate.X = f
			} else {
				t.translate.Y = f
			}
		}
		return true
	}
	return false
}

// normalizer resolves keyframe declarations into typed property values.
type normalizer struct {
	registry Registry
	log      *zap.Logger
}

// declaration resolves one declaration into zero or more assignments on out.
// Transform components are folded into acc instead.
func (n *normalizer) declaration(decl css.Declaration, acc *transforms, out *Declarations) {
	if p, ok := n.registry.PropertyByCSSName(decl.Property); ok {
		v, ok := n.convert(p, decl.Value)
		if !ok {
			n.log.Debug("Dropping unreadable value", zap.String("property", decl.Property), zap.String("value", decl.Value))
			return
		}
		out.Set(p, v)
		return
	}

	pairs := n.registry.ShorthandPairs(decl.Property, decl.Value)
	if len(pairs) == 0 {
		n.log.Debug("Dropping unknown declaration", zap.String("property", decl.Property), zap.String("value", decl.Value))
		return
	}
	for _, pv := range pairs {
		if !acc.fold(pv) {
			out.Set(pv.Property, pv.Value)
		}
	}
}

func (n *normalizer) convert(p style.Property, raw string) (style.Value, bool) {
	switch p {
	case style.Opacity:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return style.Value{}, false
		}
		return style.NumberValue(f), true
	case style.BackgroundColor:
		c, err := style.ParseColor(raw)
		if err != nil {
			return style.Value{}, false
		}
		return style.ColorValue(c), true
	}
	return style.ScalarValue(raw), true
}

// rule resolves all declarations of a keyframe rule, sharing one transform
// accumulator, and appends the synthesized scale and translate.
func (n *normalizer) rule(decls []css.Declaration) Declarations {
	var (
		out Declarations
		acc transforms
	)
	for _, decl := range decls {
		n.declaration(decl, &acc, &out)
	}
	if acc.scale != nil {
		out.Set(style.Scale, style.PairValue(*acc.scale))
	}
	if acc.translate != nil {
		out.Set(style.Translate, style.PairValue(*acc.translate))
	}
	return out
}
