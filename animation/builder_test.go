package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/ledanim/css"
	"github.com/matt-g-everett/ledanim/style"
)

func decls(kv ...string) []css.Declaration {
	out := make([]css.Declaration, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, css.Declaration{Property: kv[i], Value: kv[i+1]})
	}
	return out
}

func TestFromDeclarationsNone(t *testing.T) {
	g, err := FromDeclarations(decls("opacity", "1", "background-color", "red"))
	require.NoError(t, err)
	assert.Nil(t, g)

	g, err = FromDeclarations(nil)
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestFromDeclarationsDefaults(t *testing.T) {
	g, err := FromDeclarations(decls("animation-name", "fade"))
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, "fade", g.Name)
	assert.Equal(t, 300*time.Millisecond, g.Duration)
	assert.Equal(t, time.Duration(0), g.Delay)
	assert.Equal(t, 1, g.Iterations)
	assert.Equal(t, style.EaseInOut, g.Curve)
	assert.False(t, g.IsForwards)
	assert.False(t, g.IsReverse)
	assert.Equal(t, StateIdle, g.State())
}

func TestFromDeclarationsLonghand(t *testing.T) {
	g, err := FromDeclarations(decls(
		"animation-name", "slide",
		"animation-duration", "300ms",
		"animation-delay", "0.5s",
		"animation-timing-function", "linear",
		"animation-iteration-count", "4",
		"animation-direction", "reverse",
		"animation-fill-mode", "forwards",
		"animation-duration", "2s",
	))
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, "slide", g.Name)
	assert.Equal(t, 2*time.Second, g.Duration, "later declarations overwrite earlier ones")
	assert.Equal(t, 500*time.Millisecond, g.Delay)
	assert.Equal(t, style.Linear, g.Curve)
	assert.Equal(t, 4, g.Iterations)
	assert.True(t, g.IsReverse)
	assert.True(t, g.IsForwards)
}

func TestFromDeclarationsDirectionAndFillMode(t *testing.T) {
	for _, v := range []string{"normal", "alternate", "alternate-reverse", "Reverse", "bogus"} {
		g, err := FromDeclarations(decls("animation-direction", v))
		require.NoError(t, err)
		assert.False(t, g.IsReverse, v)
	}
	for _, v := range []string{"none", "backwards", "both", "bogus"} {
		g, err := FromDeclarations(decls("animation-fill-mode", v))
		require.NoError(t, err)
		assert.False(t, g.IsForwards, v)
	}
}

func TestFromDeclarationsIterations(t *testing.T) {
	for in, want := range map[string]int{
		"infinite": Infinite,
		"3":        3,
		"2.7":      2,
		"0":        1,
		"-2":       1,
		"bogus":    1,
	} {
		g, err := FromDeclarations(decls("animation-iteration-count", in))
		require.NoError(t, err)
		assert.Equal(t, want, g.Iterations, in)
	}
}

func TestFromDeclarationsShorthand(t *testing.T) {
	g, err := FromDeclarations(decls("animation", "slide 2s ease-in 1s 3"))
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, "slide", g.Name)
	assert.Equal(t, 2*time.Second, g.Duration)
	assert.Equal(t, style.EaseIn, g.Curve)
	assert.Equal(t, time.Second, g.Delay)
	assert.Equal(t, 3, g.Iterations)
}

func TestFromDeclarationsShorthandPartial(t *testing.T) {
	g, err := FromDeclarations(decls("animation", "spin 5s"))
	require.NoError(t, err)

	assert.Equal(t, "spin", g.Name)
	assert.Equal(t, 5*time.Second, g.Duration)
	assert.Equal(t, style.EaseInOut, g.Curve)
	assert.Equal(t, time.Duration(0), g.Delay)
	assert.Equal(t, 1, g.Iterations)
}

func TestFromDeclarationsShorthandInfinite(t *testing.T) {
	g, err := FromDeclarations(decls("animation", "spin 5s linear 0s infinite"))
	require.NoError(t, err)
	assert.Equal(t, Infinite, g.Iterations)
}

func TestFromDeclarationsShorthandMalformed(t *testing.T) {
	g, err := FromDeclarations(decls("animation", "slide 2s ease-in 1s 3 extra"))
	require.ErrorIs(t, err, ErrMalformedValue)
	assert.Contains(t, err.Error(), "slide 2s ease-in 1s 3 extra")
	assert.Nil(t, g)
}

func TestFromDeclarationsShorthandReplaces(t *testing.T) {
	g, err := FromDeclarations(decls(
		"animation-direction", "reverse",
		"animation-iteration-count", "7",
		"animation", "pulse 1s",
		"animation-delay", "2s",
	))
	require.NoError(t, err)

	assert.Equal(t, "pulse", g.Name)
	assert.False(t, g.IsReverse, "shorthand discards earlier longhands")
	assert.Equal(t, 1, g.Iterations)
	assert.Equal(t, 2*time.Second, g.Delay, "longhands after the shorthand still apply")
}

func TestFromDeclarationsBlankShorthand(t *testing.T) {
	g, err := FromDeclarations(decls("animation-name", "keep", "animation", "  "))
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "keep", g.Name)

	g, err = FromDeclarations(decls("animation", ""))
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestFromDeclarationsIgnoresUnreadableValues(t *testing.T) {
	g, err := FromDeclarations(decls(
		"animation-duration", "fast",
		"animation-timing-function", "wobbly",
		"animation-play-state", "paused",
	))
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 300*time.Millisecond, g.Duration)
	assert.Equal(t, style.EaseInOut, g.Curve)
}

func TestBuilderConfig(t *testing.T) {
	b := NewBuilder(Config{Duration: time.Second, Iterations: 2, Curve: style.Linear}, nil, nil)
	g, err := b.FromDeclarations(decls("animation-name", "x"))
	require.NoError(t, err)
	assert.Equal(t, time.Second, g.Duration)
	assert.Equal(t, 2, g.Iterations)
	assert.Equal(t, style.Linear, g.Curve)
}

func TestFromStylesheet(t *testing.T) {
	sheet := &css.Stylesheet{
		Rules: []css.Rule{
			{Selectors: []string{".a", ".b"}, Declarations: decls("animation", "fade 1s")},
			{Selectors: []string{".plain"}, Declarations: decls("opacity", "1")},
			{Selectors: []string{".bad"}, Declarations: decls("animation", "a b c d e f")},
			{Selectors: []string{".orphan"}, Declarations: decls("animation-name", "missing")},
		},
		Keyframes: []*css.Keyframes{{
			Name: "fade",
			Rules: []css.KeyframeRule{
				{Values: []string{"from"}, Declarations: decls("opacity", "0")},
				{Values: []string{"to"}, Declarations: decls("opacity", "1")},
			},
		}},
	}

	groups, err := NewBuilder(DefaultConfig(), nil, nil).FromStylesheet(sheet)
	require.ErrorIs(t, err, ErrMalformedValue)
	assert.Contains(t, err.Error(), `".bad"`)

	require.Len(t, groups, 3)
	assert.Same(t, groups[".a"], groups[".b"])
	assert.Len(t, groups[".a"].Keyframes, 2)
	assert.Empty(t, groups[".orphan"].Keyframes)
	assert.NotContains(t, groups, ".plain")
}
