package animation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/matt-g-everett/ledanim/css"
	"github.com/matt-g-everett/ledanim/style"
)

// Builder creates groups and keyframes from parsed CSS.
type Builder struct {
	config Config
	norm   normalizer
	log    *zap.Logger
}

// NewBuilder creates a builder. A nil registry selects style.Default and a
// nil logger discards output.
func NewBuilder(cfg Config, registry Registry, log *zap.Logger) *Builder {
	if registry == nil {
		registry = style.Default
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("animation")
	return &Builder{
		config: cfg,
		norm:   normalizer{registry: registry, log: log},
		log:    log,
	}
}

var defaultBuilder = NewBuilder(DefaultConfig(), nil, nil)

// FromDeclarations builds a group with the default configuration. See
// Builder.FromDeclarations.
func FromDeclarations(decls []css.Declaration) (*Group, error) {
	return defaultBuilder.FromDeclarations(decls)
}

// KeyframesFromCSS extracts keyframes with the default registry. See
// Builder.KeyframesFromCSS.
func KeyframesFromCSS(kf *css.Keyframes) []*Keyframe {
	return defaultBuilder.KeyframesFromCSS(kf)
}

// FromDeclarations builds the group described by the animation declarations
// of a rule. It returns nil when no property starts with "animation".
// Declarations are applied in order: later longhands overwrite earlier
// ones and the animation shorthand replaces everything before it.
func (b *Builder) FromDeclarations(decls []css.Declaration) (*Group, error) {
	var g *Group
	for _, decl := range decls {
		if !strings.HasPrefix(decl.Property, "animation") {
			continue
		}
		if decl.Property == "animation" {
			sg, err := b.fromShorthand(decl.Value)
			if err != nil {
				return nil, err
			}
			if sg != nil {
				g = sg
			}
			continue
		}
		if g == nil {
			g = NewGroup(b.config, b.log)
		}
		b.applyLonghand(g, decl)
	}
	return g, nil
}

func (b *Builder) applyLonghand(g *Group, decl css.Declaration) {
	value := strings.TrimSpace(decl.Value)
	switch decl.Property {
	case "animation-name":
		g.Name = value
	case "animation-duration":
		if d, err := style.ParseTime(value); err == nil {
			g.Duration = max(d, 0)
		} else {
			b.log.Debug("Ignoring animation-duration", zap.Error(err))
		}
	case "animation-delay":
		if d, err := style.ParseTime(value); err == nil {
			g.Delay = d
		} else {
			b.log.Debug("Ignoring animation-delay", zap.Error(err))
		}
	case "animation-timing-function":
		if c, err := style.ParseTimingFunction(value); err == nil {
			g.Curve = c
		} else {
			b.log.Debug("Ignoring animation-timing-function", zap.Error(err))
		}
	case "animation-iteration-count":
		if n, ok := ParseIterations(value); ok {
			g.Iterations = n
		} else {
			b.log.Debug("Ignoring animation-iteration-count", zap.String("value", value))
		}
	case "animation-direction":
		if value == "reverse" {
			g.IsReverse = true
		}
	case "animation-fill-mode":
		if value == "forwards" {
			g.IsForwards = true
		}
	default:
		b.log.Debug("Ignoring unsupported animation property", zap.String("property", decl.Property))
	}
}

// fromShorthand reads "name duration curve delay iterations". Missing
// trailing components keep their defaults; a sixth component is an error.
func (b *Builder) fromShorthand(value string) (*Group, error) {
	parts := strings.Fields(value)
	if len(parts) == 0 {
		return nil, nil
	}
	if len(parts) > 5 {
		return nil, fmt.Errorf("%w: invalid value for animation: %q", ErrMalformedValue, value)
	}

	g := NewGroup(b.config, b.log)
	g.Name = parts[0]
	if len(parts) > 1 {
		if d, err := style.ParseTime(parts[1]); err == nil {
			g.Duration = max(d, 0)
		} else {
			b.log.Debug("Ignoring animation duration", zap.Error(err))
		}
	}
	if len(parts) > 2 {
		if c, err := style.ParseTimingFunction(parts[2]); err == nil {
			g.Curve = c
		} else {
			b.log.Debug("Ignoring animation timing function", zap.Error(err))
		}
	}
	if len(parts) > 3 {
		if d, err := style.ParseTime(parts[3]); err == nil {
			g.Delay = d
		} else {
			b.log.Debug("Ignoring animation delay", zap.Error(err))
		}
	}
	if len(parts) > 4 {
		if n, ok := ParseIterations(parts[4]); ok {
			g.Iterations = n
		} else {
			b.log.Debug("Ignoring animation iteration count", zap.String("value", parts[4]))
		}
	}
	return g, nil
}

// ParseIterations reads an iteration count. Fractions are truncated and
// counts below one are raised to one.
func ParseIterations(s string) (int, bool) {
	if s == "infinite" {
		return Infinite, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	if f >= float64(Infinite) {
		return Infinite, true
	}
	return max(int(f), 1), true
}

// FromStylesheet builds the group of every rule carrying animation
// declarations and attaches the @keyframes its name refers to. Groups are
// keyed by selector; a rule with several selectors shares one group. Errors
// from individual rules are combined and do not stop the others.
func (b *Builder) FromStylesheet(sheet *css.Stylesheet) (map[string]*Group, error) {
	groups := make(map[string]*Group)
	var errs error
	for _, rule := range sheet.Rules {
		g, err := b.FromDeclarations(rule.Declarations)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rule %q: %w", strings.Join(rule.Selectors, ", "), err))
			continue
		}
		if g == nil {
			continue
		}
		if kf := sheet.KeyframesByName(g.Name); kf != nil {
			g.Keyframes = b.KeyframesFromCSS(kf)
		} else {
			b.log.Debug("No @keyframes for animation", zap.String("name", g.Name))
		}
		for _, sel := range rule.Selectors {
			groups[sel] = g
		}
	}
	return groups, errs
}
