package stream

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/matt-g-everett/ledanim/animation"
	"github.com/matt-g-everett/ledanim/style"
	"github.com/matt-g-everett/ledanim/util"
)

var propertyDefaults = map[style.Property]style.Value{
	style.Opacity:         style.NumberValue(1),
	style.BackgroundColor: style.ColorValue(style.Color{}),
	style.Rotate:          style.NumberValue(0),
	style.Scale:           style.PairValue(style.Pair{X: 1, Y: 1}),
	style.Translate:       style.PairValue(style.Pair{}),
}

// A Strip is an LED strip showing a gradient that CSS animations can fade,
// tint, scale, shift and rotate. It implements animation.View and Source.
//
// Values are kept in two layers: values animated from CSS and values set
// directly with Set. A directly set value hides the CSS value of the same
// property until it is cleared.
type Strip struct {
	numPixels int
	frameRate float64
	gradient  GradientTable
	chroma    float64
	luminance float64
	luts      *util.Memoizer
	log       *zap.Logger

	mu    sync.RWMutex
	css   map[style.Property]style.Value
	local map[style.Property]style.Value
}

// NewStrip creates a Strip of numPixels pixels updated frameRate times per
// second while animating.
func NewStrip(numPixels int, frameRate float64, gradient GradientTable, chroma, luminance float64, log *zap.Logger) *Strip {
	if log == nil {
		log = zap.NewNop()
	}
	if frameRate <= 0 {
		frameRate = 30
	}

	s := new(Strip)
	s.numPixels = numPixels
	s.frameRate = frameRate
	s.gradient = gradient
	s.chroma = chroma
	s.luminance = luminance
	s.luts = util.NewMemoizer()
	s.log = log.Named("strip")
	s.css = make(map[style.Property]style.Value)
	s.local = make(map[style.Property]style.Value)
	return s
}

// Set writes a value directly, overriding any CSS animation of p.
func (s *Strip) Set(p style.Property, v style.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.local[p] = numeric(p, v)
}

// Clear removes a directly set value so the CSS layer shows again.
func (s *Strip) Clear(p style.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.local, p)
}

// Value returns the effective value of p.
func (s *Strip) Value(p style.Property) style.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.valueLocked(p)
}

func (s *Strip) valueLocked(p style.Property) style.Value {
	if v, ok := s.local[p]; ok {
		return v
	}
	if v, ok := s.css[p]; ok {
		return v
	}
	return propertyDefaults[p]
}

// Animate transitions the properties of step from their current values,
// easing along the step curve. It implements animation.View.
func (s *Strip) Animate(ctx context.Context, step animation.Step) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- s.transition(ctx, step)
		close(ch)
	}()
	return ch
}

type change struct {
	property style.Property
	from, to style.Value
}

func (s *Strip) transition(ctx context.Context, step animation.Step) error {
	layer := s.local
	if step.ValueSource == animation.ValueSourceCSS {
		layer = s.css
	}

	s.mu.RLock()
	changes := make([]change, 0, len(step.Values))
	for _, decl := range step.Values {
		if _, ok := propertyDefaults[decl.Property]; !ok {
			s.log.Debug("Ignoring property the strip cannot show", zap.Stringer("property", decl.Property))
			continue
		}
		from, ok := layer[decl.Property]
		if !ok {
			from = propertyDefaults[decl.Property]
		}
		changes = append(changes, change{decl.Property, from, numeric(decl.Property, decl.Value)})
	}
	s.mu.RUnlock()

	frames := int(math.Ceil(step.Duration.Seconds() * s.frameRate))
	if frames < 1 {
		s.apply(layer, changes, 1)
		return nil
	}

	lut := s.luts.Lut(step.Curve, frames+1)
	ticker := time.NewTicker(time.Duration(float64(time.Second) / s.frameRate))
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			k := int(float64(frames) * float64(time.Since(start)) / float64(step.Duration))
			if k >= frames {
				s.apply(layer, changes, 1)
				return nil
			}
			s.apply(layer, changes, lut[k])
		}
	}
}

func (s *Strip) apply(layer map[style.Property]style.Value, changes []change, t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range changes {
		layer[c.property] = interpolate(c.from, c.to, t)
	}
}

// numeric converts pass-through scalars into numbers where the strip knows
// how to read them.
func numeric(p style.Property, v style.Value) style.Value {
	if v.Kind != style.KindScalar {
		return v
	}
	if p == style.Rotate {
		if deg, ok := style.ParseAngle(v.Scalar); ok {
			return style.NumberValue(deg)
		}
	}
	if f, ok := v.Float(); ok {
		return style.NumberValue(f)
	}
	return v
}

func interpolate(from, to style.Value, t float64) style.Value {
	if t >= 1 {
		return to
	}
	switch {
	case from.Kind == style.KindNumber && to.Kind == style.KindNumber:
		return style.NumberValue(lerp(from.Number, to.Number, t))
	case from.Kind == style.KindColor && to.Kind == style.KindColor:
		return style.ColorValue(from.Color.Blend(to.Color, t))
	case from.Kind == style.KindPair && to.Kind == style.KindPair:
		return style.PairValue(style.Pair{
			X: lerp(from.Pair.X, to.Pair.X, t),
			Y: lerp(from.Pair.Y, to.Pair.Y, t),
		})
	}
	return from
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// CalculateFrame renders the strip with its current property values.
func (s *Strip) CalculateFrame() *Frame {
	s.mu.RLock()
	opacity, _ := s.valueLocked(style.Opacity).Float()
	background := s.valueLocked(style.BackgroundColor).Color
	scale := s.valueLocked(style.Scale).Pair
	translate := s.valueLocked(style.Translate).Pair
	rotate, _ := s.valueLocked(style.Rotate).Float()
	s.mu.RUnlock()

	opacity = math.Max(0, math.Min(1, opacity))
	black := colorful.Color{}
	n := float64(s.numPixels)

	f := NewFrame(s.numPixels)
	for i := range f.pixels {
		pos := 0.0
		if scale.X != 0 {
			pos = (float64(i) - translate.X) / scale.X
		}
		pos += rotate / 360 * n
		u := math.Mod(pos, n) / n
		if u < 0 {
			u++
		}

		c := s.gradient.GetColor(u, s.chroma, s.luminance)
		c = c.BlendRgb(background.Color, background.Alpha)
		f.pixels[i] = black.BlendRgb(c, opacity).Clamped()
	}

	return f
}
