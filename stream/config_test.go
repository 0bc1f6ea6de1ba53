package stream

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/matt-g-everett/ledanim/animation"
	"github.com/matt-g-everett/ledanim/style"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  url: tcp://broker:1883
  topics:
    stream: leds/stream
strip:
  pixels: 50
gradient:
  - {hue: 10, pos: 0}
  - {hue: 200, pos: 1}
animation:
  duration: 2s
  iterations: infinite
cycle: 5s
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "tcp://broker:1883", c.Mqtt.URL)
	assert.Equal(t, "leds/stream", c.Mqtt.Topics.Stream)
	assert.Equal(t, "ledanim", c.Mqtt.ClientID)
	assert.Equal(t, 50, c.Strip.Pixels)
	assert.Equal(t, 30.0, c.Strip.FrameRate)
	assert.Equal(t, GradientTable{{10, 0}, {200, 1}}, c.Gradient)
	assert.Equal(t, 5*time.Second, c.Cycle)
	assert.Equal(t, ":3000", c.Api.Listen)

	cfg, err := c.AnimationConfig()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Duration)
	assert.Equal(t, animation.Infinite, cfg.Iterations)
	assert.Equal(t, style.EaseInOut, cfg.Curve)
}

func TestLoadConfigKeepsDefaultGradient(t *testing.T) {
	c, err := LoadConfig(writeConfig(t, "strip:\n  pixels: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, RainbowGradient, c.Gradient)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadConfigMalformed(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "strip: [1, 2"))
	assert.Error(t, err)
}

func TestAnimationConfigReportsEveryError(t *testing.T) {
	c := DefaultConfig()
	c.Animation.Duration = "fast"
	c.Animation.Iterations = "lots"
	c.Animation.Curve = "wobbly"

	_, err := c.AnimationConfig()
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], style.ErrInvalidTime)
	assert.ErrorIs(t, errs[1], animation.ErrMalformedValue)
	assert.ErrorIs(t, errs[2], style.ErrInvalidCurve)
}

func TestDefaultAnimationConfig(t *testing.T) {
	cfg, err := DefaultConfig().AnimationConfig()
	require.NoError(t, err)
	assert.Equal(t, animation.DefaultConfig(), cfg)
}
