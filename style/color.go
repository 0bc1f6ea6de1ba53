package style

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned by ParseColor for values it cannot read.
var ErrInvalidColor = errors.New("invalid color")

// Color is an RGB colour with an alpha channel in [0,1].
type Color struct {
	colorful.Color
	Alpha float64
}

// Opaque wraps c with full alpha.
func Opaque(c colorful.Color) Color {
	return Color{Color: c, Alpha: 1}
}

// String formats the colour as #rrggbb, or #rrggbbaa when translucent.
func (c Color) String() string {
	hex := c.Clamped().Hex()
	if c.Alpha >= 1 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, uint8(math.Round(clamp01(c.Alpha)*255)))
}

// Blend interpolates towards c2 in HCL space, alpha linearly.
func (c Color) Blend(c2 Color, t float64) Color {
	return Color{
		Color: c.BlendHcl(c2.Color, t).Clamped(),
		Alpha: c.Alpha + (c2.Alpha-c.Alpha)*t,
	}
}

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"cyan":    "#00ffff",
	"aqua":    "#00ffff",
	"magenta": "#ff00ff",
	"fuchsia": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"maroon":  "#800000",
	"navy":    "#000080",
	"teal":    "#008080",
	"olive":   "#808000",
	"violet":  "#ee82ee",
	"gold":    "#ffd700",
}

// ParseColor reads a CSS colour: a keyword, #rgb, #rrggbb, #rrggbbaa,
// rgb()/rgba() or hsl()/hsla().
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "transparent" {
		return Color{}, nil
	}
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	if strings.HasPrefix(v, "#") {
		return parseHex(v)
	}

	fns := calls(v)
	if len(fns) != 1 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	fn := fns[0]
	switch fn.name {
	case "rgb", "rgba":
		if len(fn.args) != 3 && len(fn.args) != 4 {
			break
		}
		var ch [3]float64
		for i := range ch {
			f, ok := channel(fn.args[i], 255)
			if !ok {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			ch[i] = f
		}
		alpha, ok := alphaArg(fn.args)
		if !ok {
			break
		}
		return Color{Color: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, Alpha: alpha}, nil
	case "hsl", "hsla":
		if len(fn.args) != 3 && len(fn.args) != 4 {
			break
		}
		h, unit, ok := dimension(fn.args[0])
		if !ok || (unit != "" && unit != "deg") {
			break
		}
		sat, ok1 := channel(fn.args[1], 100)
		lum, ok2 := channel(fn.args[2], 100)
		alpha, ok3 := alphaArg(fn.args)
		if !ok1 || !ok2 || !ok3 {
			break
		}
		return Color{Color: colorful.Hsl(math.Mod(h+360, 360), sat, lum), Alpha: alpha}, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(v string) (Color, error) {
	alpha := 1.0
	if len(v) == 9 {
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
		}
		alpha = float64(a) / 255
		v = v[:7]
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, v, err)
	}
	return Color{Color: c, Alpha: alpha}, nil
}

// channel reads a colour component either as a percentage or as a number
// out of scale, normalised to [0,1].
func channel(arg string, scale float64) (float64, bool) {
	f, unit, ok := dimension(arg)
	if !ok {
		return 0, false
	}
	switch unit {
	case "%":
		return clamp01(f / 100), true
	case "":
		return clamp01(f / scale), true
	}
	return 0, false
}

func alphaArg(args []string) (float64, bool) {
	if len(args) < 4 {
		return 1, true
	}
	f, unit, ok := dimension(args[3])
	if !ok {
		return 0, false
	}
	if unit == "%" {
		f /= 100
	} else if unit != "" {
		return 0, false
	}
	return clamp01(f), true
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
