package stream

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameMarshalBinary(t *testing.T) {
	f := NewFrame(2)
	f.pixels[0] = colorful.Color{R: 1}
	f.pixels[1] = colorful.Color{R: 2, G: 0.5, B: -1}

	data, err := f.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 0, 255, 0, 0, 255, 128, 0}, data)
}

func TestFrameEmpty(t *testing.T) {
	data, err := NewFrame(0).MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, data)
}

func TestGradientGetColor(t *testing.T) {
	g := GradientTable{{0, 0}, {120, 0.5}, {240, 1}}

	assert.Equal(t, colorful.Hcl(0, 0.5, 0.5).Clamped(), g.GetColor(-1, 0.5, 0.5))
	assert.Equal(t, colorful.Hcl(60, 0.5, 0.5).Clamped(), g.GetColor(0.25, 0.5, 0.5))
	assert.Equal(t, colorful.Hcl(240, 0.5, 0.5).Clamped(), g.GetColor(2, 0.5, 0.5))
	assert.Equal(t, colorful.Hcl(0, 0, 0.5), GradientTable(nil).GetColor(0.5, 0.5, 0.5))
}
