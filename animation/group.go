package animation

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/matt-g-everett/ledanim/style"
)

// KeyframeDeclaration is a property assignment active at a keyframe.
type KeyframeDeclaration struct {
	Property style.Property `yaml:"property"`
	Value    style.Value    `yaml:"value"`
}

// Declarations is an ordered set of assignments with at most one entry per
// property.
type Declarations []KeyframeDeclaration

// Set overwrites the value of p in place, or appends it.
func (d *Declarations) Set(p style.Property, v style.Value) {
	for i := range *d {
		if (*d)[i].Property == p {
			(*d)[i].Value = v
			return
		}
	}
	*d = append(*d, KeyframeDeclaration{Property: p, Value: v})
}

// Get returns the value assigned to p.
func (d Declarations) Get(p style.Property) (style.Value, bool) {
	for _, decl := range d {
		if decl.Property == p {
			return decl.Value, true
		}
	}
	return style.Value{}, false
}

// Keyframe is a point on the normalized timeline. Offset 0 is "from" and 1
// is "to".
type Keyframe struct {
	Offset       float64      `yaml:"offset"`
	Declarations Declarations `yaml:"declarations"`
}

// State is the playback state of a Group.
type State int32

const (
	StateIdle State = iota
	StatePlaying
	StateCompleted
	StateCancelled
	StateFailed
)

var stateNames = [...]string{"idle", "playing", "completed", "cancelled", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Group is a declarative animation built from one rule. The exported fields
// describe the animation and may be edited before Play; a Group must not be
// copied once it has been played.
type Group struct {
	Name       string
	Duration   time.Duration
	Delay      time.Duration
	Iterations int
	Curve      style.Curve
	IsForwards bool
	IsReverse  bool
	Keyframes  []*Keyframe

	log *zap.Logger

	mu      sync.Mutex
	state   atomic.Int32
	current *playback
}

// NewGroup returns a group initialised from cfg.
func NewGroup(cfg Config, log *zap.Logger) *Group {
	if log == nil {
		log = zap.NewNop()
	}
	return &Group{
		Duration:   cfg.Duration,
		Delay:      cfg.Delay,
		Iterations: cfg.Iterations,
		Curve:      cfg.Curve,
		log:        log,
	}
}

// State reports the playback state.
func (g *Group) State() State {
	return State(g.state.Load())
}

// IsPlaying reports whether a playback is in flight.
func (g *Group) IsPlaying() bool {
	return g.State() == StatePlaying
}
