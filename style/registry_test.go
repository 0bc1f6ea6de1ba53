package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryProperties(t *testing.T) {
	r := NewRegistry()

	p, ok := r.PropertyByCSSName("opacity")
	require.True(t, ok)
	assert.Equal(t, Opacity, p)

	p, ok = r.PropertyByCSSName("Background-Color")
	require.True(t, ok)
	assert.Equal(t, BackgroundColor, p)

	_, ok = r.PropertyByCSSName("transform")
	assert.False(t, ok, "transform is a shorthand")

	_, ok = r.PropertyByCSSName("font-size")
	assert.False(t, ok)
}

func TestExpandTransform(t *testing.T) {
	r := NewRegistry()

	got := r.ShorthandPairs("transform", "scale(2, 3) translate(10px) rotate(0.5turn)")
	assert.Equal(t, []PropertyValue{
		{ScaleX, NumberValue(2)},
		{ScaleY, NumberValue(3)},
		{TranslateX, NumberValue(10)},
		{TranslateY, NumberValue(0)},
		{Rotate, NumberValue(180)},
	}, got)

	got = r.ShorthandPairs("transform", "scaleY(0.5) translateX(-4px)")
	assert.Equal(t, []PropertyValue{
		{ScaleY, NumberValue(0.5)},
		{TranslateX, NumberValue(-4)},
	}, got)

	got = r.ShorthandPairs("transform", "scale(1.5)")
	assert.Equal(t, []PropertyValue{{ScaleX, NumberValue(1.5)}, {ScaleY, NumberValue(1.5)}}, got)

	assert.Len(t, r.ShorthandPairs("transform", "none"), 5)
	assert.Empty(t, r.ShorthandPairs("transform", "skew(10deg)"))
	assert.Empty(t, r.ShorthandPairs("transform", "translate(2em)"))
}

func TestExpandIndividualTransforms(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []PropertyValue{{ScaleX, NumberValue(2)}, {ScaleY, NumberValue(2)}}, r.ShorthandPairs("scale", "2"))
	assert.Equal(t, []PropertyValue{{TranslateX, NumberValue(5)}, {TranslateY, NumberValue(6)}}, r.ShorthandPairs("translate", "5px 6px"))
}

func TestExpandBackground(t *testing.T) {
	r := NewRegistry()

	got := r.ShorthandPairs("background", "url(a.png) no-repeat #00f")
	require.Len(t, got, 1)
	assert.Equal(t, BackgroundColor, got[0].Property)
	assert.Equal(t, "#0000ff", got[0].Value.Color.String())

	assert.Nil(t, r.ShorthandPairs("background", "url(a.png)"))
	assert.Nil(t, r.ShorthandPairs("border", "1px solid red"))
}

func TestParseAngle(t *testing.T) {
	for in, want := range map[string]float64{"90deg": 90, "45": 45, "1turn": 360, "100grad": 90} {
		got, ok := ParseAngle(in)
		require.True(t, ok, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}
	_, ok := ParseAngle("10px")
	assert.False(t, ok)
}

func TestValueFloat(t *testing.T) {
	f, ok := ScalarValue("45").Float()
	assert.True(t, ok)
	assert.Equal(t, 45.0, f)

	_, ok = ScalarValue("45deg").Float()
	assert.False(t, ok)

	_, ok = PairValue(Pair{1, 2}).Float()
	assert.False(t, ok)
}
