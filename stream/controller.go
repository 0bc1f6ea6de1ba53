package stream

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"github.com/matt-g-everett/ledanim/animation"
)

// ErrUnknownAnimation is returned for a name the controller does not hold.
var ErrUnknownAnimation = errors.New("unknown animation")

// Status describes one animation held by a Controller.
type Status struct {
	Name    string `json:"name" yaml:"name"`
	State   string `json:"state" yaml:"state"`
	Playing bool   `json:"playing" yaml:"playing"`
}

// Controller that manages the animations of a stylesheet on one view.
type Controller struct {
	view   animation.View
	groups map[string]*animation.Group
	names  []string
	pause  time.Duration
	log    *zap.Logger
}

// NewController creates an instance of a Controller. Groups are addressed by
// the selector they were declared under; pause is the gap left between
// animations by Run.
func NewController(view animation.View, groups map[string]*animation.Group, pause time.Duration, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}

	c := new(Controller)
	c.view = view
	c.groups = groups
	c.pause = pause
	c.log = log.Named("controller")
	for name := range groups {
		c.names = append(c.names, name)
	}
	sort.Sort(natural.StringSlice(c.names))
	return c
}

// Names lists the selectors of every animation in natural order.
func (c *Controller) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Controller) group(name string) (*animation.Group, error) {
	g, ok := c.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	return g, nil
}

// Play starts the named animation on the view.
func (c *Controller) Play(ctx context.Context, name string) (*animation.Future, error) {
	g, err := c.group(name)
	if err != nil {
		return nil, err
	}
	fut, err := g.Play(ctx, c.view)
	if err != nil {
		return nil, fmt.Errorf("playing %q: %w", name, err)
	}
	c.log.Info("Playing animation", zap.String("selector", name), zap.String("name", g.Name))
	return fut, nil
}

// Cancel stops the named animation and reports whether it was playing.
func (c *Controller) Cancel(name string) (bool, error) {
	g, err := c.group(name)
	if err != nil {
		return false, err
	}
	return g.Cancel(), nil
}

// CancelAll stops every playing animation.
func (c *Controller) CancelAll() {
	for _, name := range c.names {
		if c.groups[name].Cancel() {
			c.log.Info("Cancelled animation", zap.String("selector", name))
		}
	}
}

// Status reports every animation in natural order.
func (c *Controller) Status() []Status {
	out := make([]Status, 0, len(c.names))
	for _, name := range c.names {
		g := c.groups[name]
		out = append(out, Status{Name: name, State: g.State().String(), Playing: g.IsPlaying()})
	}
	return out
}

// unique returns the selectors of distinct groups; a group declared under
// several selectors is played once.
func (c *Controller) unique() []string {
	seen := make(map[*animation.Group]bool, len(c.groups))
	var out []string
	for _, name := range c.names {
		g := c.groups[name]
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, name)
	}
	return out
}

// Run causes the Controller to cycle through the animations, waiting for
// each to settle and then for the pause, until ctx is done. Animations with
// infinite iterations hold the cycle until cancelled.
func (c *Controller) Run(ctx context.Context) error {
	names := c.unique()
	if len(names) == 0 {
		c.log.Warn("No animations to cycle")
		<-ctx.Done()
		return nil
	}

	for i := 0; ; i = (i + 1) % len(names) {
		fut, err := c.Play(ctx, names[i])
		if err != nil {
			c.log.Warn("Skipping animation", zap.Error(err))
		} else if err := fut.Wait(ctx); err != nil && !errors.Is(err, animation.ErrAnimationCancelled) {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Warn("Animation failed", zap.String("selector", names[i]), zap.Error(err))
		}

		t := time.NewTimer(c.pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}
