package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/ledanim/animation"
	"github.com/matt-g-everett/ledanim/api"
	"github.com/matt-g-everett/ledanim/css"
	"github.com/matt-g-everett/ledanim/stream"
	"github.com/matt-g-everett/ledanim/style"
)

type app struct {
	Config stream.Config
	Log    *zap.Logger
	Client mqtt.Client
}

func newApp() *app {
	a := new(app)
	a.Config = stream.DefaultConfig()
	a.Log = zap.NewNop()
	return a
}

func (a *app) initialize(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error
	if cmd.Bool("debug") {
		a.Log, err = zap.NewDevelopment()
	} else {
		a.Log, err = zap.NewProduction()
	}
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	mqtt.ERROR = zap.NewStdLog(a.Log.Named("mqtt"))

	configPath := cmd.String("config")
	a.Config, err = stream.LoadConfig(configPath)
	switch {
	case err == nil:
		a.Log.Debug("Config loaded", zap.String("path", configPath))
	case errors.Is(err, fs.ErrNotExist) && !cmd.IsSet("config"):
		a.Config = stream.DefaultConfig()
		a.Log.Info("Using defaults (no configuration file)")
	default:
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	return ctx, nil
}

func (a *app) destroy(ctx context.Context, cmd *cli.Command) error {
	// Syncing stderr fails on some platforms; the error carries no news.
	_ = a.Log.Sync()
	return nil
}

// loadGroups parses the stylesheet and builds its animation groups. Rules
// that fail to build are logged and left out.
func (a *app) loadGroups(path string) (map[string]*animation.Group, error) {
	if path == "" {
		path = a.Config.Stylesheet
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stylesheet: %w", err)
	}

	sheet := css.NewParser(a.Log).Parse(data)
	for _, w := range sheet.Warnings {
		a.Log.Warn("Stylesheet warning", zap.String("path", path), zap.String("warning", w))
	}

	cfg, err := a.Config.AnimationConfig()
	if err != nil {
		return nil, fmt.Errorf("animation defaults: %w", err)
	}
	groups, err := animation.NewBuilder(cfg, style.Default, a.Log).FromStylesheet(sheet)
	for _, e := range multierr.Errors(err) {
		a.Log.Warn("Skipping animation", zap.Error(e))
	}
	a.Log.Info("Stylesheet loaded", zap.String("path", path), zap.Int("animations", len(groups)))
	return groups, nil
}

func (a *app) handleOnConnect(client mqtt.Client) {
	a.Log.Info("Connected", zap.String("broker", a.Config.Mqtt.URL))
}

func (a *app) handleConnectionLost(client mqtt.Client, err error) {
	a.Log.Warn("Connection lost", zap.Error(err))
}

func (a *app) play(ctx context.Context, cmd *cli.Command) error {
	groups, err := a.loadGroups(cmd.Args().First())
	if err != nil {
		return err
	}

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect).
		SetConnectionLostHandler(a.handleConnectionLost)
	a.Client = mqtt.NewClient(options)
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connecting to %s: %w", a.Config.Mqtt.URL, token.Error())
	}
	defer a.Client.Disconnect(250)

	cfg := a.Config
	strip := stream.NewStrip(cfg.Strip.Pixels, cfg.Strip.FrameRate, cfg.Gradient, cfg.Strip.Chroma, cfg.Strip.Luminance, a.Log)
	streamer := stream.NewStreamer(stream.NewMQTTPublisher(a.Client, cfg.Mqtt.Qos), strip, cfg.Mqtt.Topics.Stream, cfg.Strip.FrameRate, a.Log)
	controller := stream.NewController(strip, groups, cfg.Cycle, a.Log)
	server := api.NewApi(controller, a.Log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return streamer.Run(ctx) })
	if !cmd.Bool("manual") {
		g.Go(func() error { return controller.Run(ctx) })
	}
	if cfg.Api.Listen != "" {
		g.Go(func() error { return server.Serve(ctx, cfg.Api.Listen) })
	}
	err = g.Wait()
	controller.CancelAll()
	return err
}

type inspection struct {
	Selector   string                `yaml:"selector"`
	Name       string                `yaml:"name"`
	Duration   time.Duration         `yaml:"duration"`
	Delay      time.Duration         `yaml:"delay"`
	Iterations string                `yaml:"iterations"`
	Curve      style.Curve           `yaml:"curve"`
	Forwards   bool                  `yaml:"forwards,omitempty"`
	Reverse    bool                  `yaml:"reverse,omitempty"`
	Keyframes  []*animation.Keyframe `yaml:"keyframes"`
	Timeline   []animation.Step      `yaml:"timeline"`
}

func (a *app) inspect(ctx context.Context, cmd *cli.Command) error {
	groups, err := a.loadGroups(cmd.Args().First())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))

	out := make([]inspection, 0, len(groups))
	for _, name := range names {
		g := groups[name]
		iterations := fmt.Sprint(g.Iterations)
		if g.Iterations == animation.Infinite {
			iterations = "infinite"
		}
		out = append(out, inspection{
			Selector:   name,
			Name:       g.Name,
			Duration:   g.Duration,
			Delay:      g.Delay,
			Iterations: iterations,
			Curve:      g.Curve,
			Forwards:   g.IsForwards,
			Reverse:    g.IsReverse,
			Keyframes:  g.Keyframes,
			Timeline:   g.Timeline(),
		})
	}

	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(out)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := newApp()
	cmd := &cli.Command{
		Name:            "ledanim",
		Usage:           "plays CSS keyframe animations on an LED strip over MQTT",
		HideHelpCommand: true,
		Before:          a.initialize,
		After:           a.destroy,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.yaml", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level in a human readable format"},
		},
		Commands: []*cli.Command{
			{
				Name:      "play",
				Usage:     "Streams the animations of a stylesheet to the strip",
				ArgsUsage: "[STYLESHEET]",
				Action:    a.play,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "manual", Aliases: []string{"m"}, Usage: "do not cycle through animations, play them only through the API"},
				},
			},
			{
				Name:      "inspect",
				Usage:     "Prints the groups, keyframes and timelines of a stylesheet as YAML",
				ArgsUsage: "[STYLESHEET]",
				Action:    a.inspect,
			},
		},
	}

	err := cmd.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		os.Exit(1)
	}
}
