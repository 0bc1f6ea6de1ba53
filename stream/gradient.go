package stream

import (
	"github.com/lucasb-eyer/go-colorful"
)

// GradientStop places a hue on the gradient.
type GradientStop struct {
	Hue float64 `yaml:"hue"`
	Pos float64 `yaml:"pos"`
}

// GradientTable stores a look-up table of colours interpolated by hue. Stops
// are expected in ascending position order.
type GradientTable []GradientStop

// RainbowGradient is the gradient used when none is configured.
var RainbowGradient = GradientTable{
	{0.0, 0.0},
	{6.0, 0.04},   // Pink
	{87.0, 0.14},  // Red
	{88.0, 0.28},  // Orange
	{98.0, 0.42},  // Yellow
	{180.0, 0.56}, // Green
	{190.0, 0.70}, // Turquiose
	{320.0, 0.84}, // Blue
	{328.0, 0.91}, // Violet
	{360.0, 1.0},  // Pink wrap
}

// GetColor gets a colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, c, l float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Hcl(0, 0, l)
	}
	if t <= g[0].Pos {
		return colorful.Hcl(g[0].Hue, c, l).Clamped()
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			if c2.Pos == c1.Pos {
				return colorful.Hcl(c1.Hue, c, l).Clamped()
			}
			// We are in between c1 and c2. Go blend them!
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, c, l).Clamped()
		}
	}

	// Nothing found? Means we're past the last gradient keypoint.
	return colorful.Hcl(g[len(g)-1].Hue, c, l).Clamped()
}
