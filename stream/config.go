package stream

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/ledanim/animation"
	"github.com/matt-g-everett/ledanim/style"
)

// Config is the YAML configuration of the LED animation streamer.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Qos      byte   `yaml:"qos"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Strip struct {
		Pixels    int     `yaml:"pixels"`
		FrameRate float64 `yaml:"frameRate"`
		Chroma    float64 `yaml:"chroma"`
		Luminance float64 `yaml:"luminance"`
	} `yaml:"strip"`
	Gradient GradientTable `yaml:"gradient"`
	// Animation holds the defaults of groups that leave a longhand out,
	// written as CSS values.
	Animation struct {
		Duration   string `yaml:"duration"`
		Delay      string `yaml:"delay"`
		Iterations string `yaml:"iterations"`
		Curve      string `yaml:"curve"`
	} `yaml:"animation"`
	Stylesheet string        `yaml:"stylesheet"`
	Cycle      time.Duration `yaml:"cycle"`
	Api        struct {
		Listen string `yaml:"listen"`
	} `yaml:"api"`
}

// DefaultConfig returns the configuration used for any key a file leaves
// out.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.ClientID = "ledanim"
	c.Mqtt.Qos = 2
	c.Mqtt.Topics.Stream = "home/xmastree/stream"
	c.Strip.Pixels = 200
	c.Strip.FrameRate = 30
	c.Strip.Chroma = 0.6
	c.Strip.Luminance = 0.5
	c.Gradient = RainbowGradient
	c.Animation.Duration = "300ms"
	c.Animation.Delay = "0s"
	c.Animation.Iterations = "1"
	c.Animation.Curve = "ease-in-out"
	c.Stylesheet = "animations.css"
	c.Cycle = 2 * time.Second
	c.Api.Listen = ":3000"
	return c
}

// LoadConfig reads the YAML file at path over the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	// A configured gradient replaces the default stops rather than
	// overlaying them.
	c.Gradient = nil
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil {
		return c, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if len(c.Gradient) == 0 {
		c.Gradient = RainbowGradient
	}
	return c, nil
}

// AnimationConfig converts the animation defaults to their typed form. Every
// invalid value is reported.
func (c Config) AnimationConfig() (animation.Config, error) {
	cfg := animation.DefaultConfig()
	var errs error

	if c.Animation.Duration != "" {
		d, err := style.ParseTime(c.Animation.Duration)
		errs = multierr.Append(errs, err)
		if err == nil {
			cfg.Duration = max(d, 0)
		}
	}
	if c.Animation.Delay != "" {
		d, err := style.ParseTime(c.Animation.Delay)
		errs = multierr.Append(errs, err)
		if err == nil {
			cfg.Delay = d
		}
	}
	if c.Animation.Iterations != "" {
		if n, ok := animation.ParseIterations(c.Animation.Iterations); ok {
			cfg.Iterations = n
		} else {
			errs = multierr.Append(errs, fmt.Errorf("%w: iterations %q", animation.ErrMalformedValue, c.Animation.Iterations))
		}
	}
	if c.Animation.Curve != "" {
		curve, err := style.ParseTimingFunction(c.Animation.Curve)
		errs = multierr.Append(errs, err)
		if err == nil {
			cfg.Curve = curve
		}
	}

	return cfg, errs
}
