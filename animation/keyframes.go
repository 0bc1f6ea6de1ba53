package animation

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/matt-g-everett/ledanim/css"
)

// KeyframesFromCSS converts an @keyframes block into keyframes sorted by
// offset, one per distinct offset. A rule's declarations are resolved once
// and shared by every offset it lists; a later rule at the same offset
// replaces the earlier declarations.
func (b *Builder) KeyframesFromCSS(kf *css.Keyframes) []*Keyframe {
	if kf == nil {
		return nil
	}
	byOffset := make(map[float64]*Keyframe)
	for _, rule := range kf.Rules {
		decls := b.norm.rule(rule.Declarations)
		for _, sel := range rule.Values {
			offset, ok := parseOffset(sel)
			if !ok {
				b.log.Debug("Ignoring keyframe selector", zap.String("keyframes", kf.Name), zap.String("selector", sel))
				continue
			}
			current, ok := byOffset[offset]
			if !ok {
				current = &Keyframe{Offset: offset}
				byOffset[offset] = current
			}
			current.Declarations = decls
		}
	}

	out := make([]*Keyframe, 0, len(byOffset))
	for _, k := range byOffset {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// parseOffset maps a keyframe selector to its timeline offset. Percentages
// are clamped below at zero but not above.
func parseOffset(sel string) (float64, bool) {
	switch sel = strings.ToLower(strings.TrimSpace(sel)); sel {
	case "from":
		return 0, true
	case "to":
		return 1, true
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(sel, "%"), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return math.Max(f/100, 0), true
}
