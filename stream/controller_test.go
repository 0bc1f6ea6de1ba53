package stream

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/ledanim/animation"
	"github.com/matt-g-everett/ledanim/css"
	"github.com/matt-g-everett/ledanim/style"
)

const testSheet = `
.fade, .fade-again { animation: fade 40ms linear }
.item10 { animation: glow 40ms }
.item2 { animation: glow 40ms }
.spin { animation: spin 1s linear 0s infinite }

@keyframes fade { from { opacity: 1 } to { opacity: 0.25 } }
@keyframes glow { 0% { background-color: black } 100% { background-color: #ff8000 } }
@keyframes spin { from { transform: rotate(0deg) } to { transform: rotate(360deg) } }
`

func testGroups(t *testing.T) map[string]*animation.Group {
	t.Helper()
	sheet := css.NewParser(nil).Parse([]byte(testSheet))
	groups, err := animation.NewBuilder(animation.DefaultConfig(), nil, nil).FromStylesheet(sheet)
	require.NoError(t, err)
	return groups
}

// recordingView completes every step at once and remembers the values.
type recordingView struct {
	mu     sync.Mutex
	values []animation.Declarations
}

func (v *recordingView) Animate(ctx context.Context, step animation.Step) <-chan error {
	v.mu.Lock()
	v.values = append(v.values, step.Values)
	v.mu.Unlock()
	ch := make(chan error, 1)
	ch <- nil
	return ch
}

func (v *recordingView) seen(p style.Property) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, d := range v.values {
		if _, ok := d.Get(p); ok {
			return true
		}
	}
	return false
}

func wait(t *testing.T, f *animation.Future) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := f.Wait(ctx)
	require.NotErrorIs(t, err, context.DeadlineExceeded)
	return err
}

func TestControllerNames(t *testing.T) {
	c := NewController(&recordingView{}, testGroups(t), 0, nil)
	assert.Equal(t, []string{".fade", ".fade-again", ".item2", ".item10", ".spin"}, c.Names())
}

func TestControllerPlaysOnStrip(t *testing.T) {
	strip := NewStrip(4, 200, RainbowGradient, 0.6, 0.5, nil)
	c := NewController(strip, testGroups(t), 0, nil)

	f, err := c.Play(context.Background(), ".fade")
	require.NoError(t, err)
	require.NoError(t, wait(t, f))
	assert.Equal(t, style.NumberValue(0.25), strip.Value(style.Opacity))
}

func TestControllerPlayErrors(t *testing.T) {
	c := NewController(&recordingView{}, testGroups(t), 0, nil)

	_, err := c.Play(context.Background(), ".missing")
	assert.ErrorIs(t, err, ErrUnknownAnimation)

	f, err := c.Play(context.Background(), ".spin")
	require.NoError(t, err)
	_, err = c.Play(context.Background(), ".spin")
	assert.ErrorIs(t, err, animation.ErrAlreadyPlaying)

	cancelled, err := c.Cancel(".spin")
	require.NoError(t, err)
	assert.True(t, cancelled)
	assert.ErrorIs(t, wait(t, f), animation.ErrAnimationCancelled)

	_, err = c.Cancel(".missing")
	assert.ErrorIs(t, err, ErrUnknownAnimation)
}

func TestControllerStatus(t *testing.T) {
	c := NewController(&recordingView{}, testGroups(t), 0, nil)
	_, err := c.Play(context.Background(), ".spin")
	require.NoError(t, err)
	defer c.CancelAll()

	for _, s := range c.Status() {
		if s.Name == ".spin" {
			assert.True(t, s.Playing)
			assert.Equal(t, "playing", s.State)
		} else {
			assert.False(t, s.Playing)
			assert.Equal(t, "idle", s.State)
		}
	}

	c.CancelAll()
	for _, s := range c.Status() {
		assert.False(t, s.Playing)
	}
}

func TestControllerRunCycles(t *testing.T) {
	groups := testGroups(t)
	delete(groups, ".spin")
	v := &recordingView{}
	c := NewController(v, groups, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return v.seen(style.Opacity) && v.seen(style.BackgroundColor)
	}, 5*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not stop")
	}
}

func TestControllerUnique(t *testing.T) {
	c := NewController(&recordingView{}, testGroups(t), 0, nil)
	assert.Equal(t, []string{".fade", ".item2", ".item10", ".spin"}, c.unique())
}
