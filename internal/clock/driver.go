package clock

import (
	"errors"
	"math"
	"sync"
)

var (
	ErrNotRunning  = errors.New("clock: driver is not running")
	ErrInterrupted = errors.New("clock: interrupted before finishing")
)

// Status is the run state of a Driver.
type Status int

const (
	Stopped Status = iota
	Running
	Finished
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "stopped"
	}
}

// Token identifies one run of a Driver. A tick carrying an old token is
// ignored.
type Token uint64

// Timeline maps a candidate elapsed time to the time the scenario accepts.
// done reports that the terminal condition has been reached.
type Timeline interface {
	Settle(t float64) (accepted float64, done bool)
}

// Holder is implemented by timelines that can freeze time while running.
type Holder interface {
	Holding() bool
}

// Options configures how raw wall deltas become simulation time.
type Options struct {
	// MaxDelta caps a single raw delta in seconds. Zero disables the cap.
	MaxDelta float64
	// Scale multiplies the capped delta. Zero means 1.
	Scale float64
}

type Driver struct {
	mu       sync.Mutex
	timeline Timeline
	opts     Options
	status   Status
	elapsed  float64
	gen      Token
}

func NewDriver(tl Timeline, opts Options) *Driver {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	return &Driver{timeline: tl, opts: opts}
}

// Play starts the clock and returns the token ticks must carry. It is a
// no-op while Running or Finished; a finished clock has to be Reset first.
func (d *Driver) Play() (Token, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != Stopped {
		return d.gen, false
	}
	d.gen++
	d.status = Running
	return d.gen, true
}

// Pause stops a running clock, keeping the elapsed time.
func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != Running {
		return
	}
	d.gen++
	d.status = Stopped
}

// Toggle pauses a running clock or plays a stopped one. The returned token
// is only meaningful when started is true.
func (d *Driver) Toggle() (tok Token, started bool) {
	if d.Status() == Running {
		d.Pause()
		return 0, false
	}
	return d.Play()
}

// Reset rewinds to zero and re-arms a finished clock.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.status = Stopped
	d.elapsed = 0
}

// Tick advances a running clock by delta wall seconds. It reports whether
// the run identified by tok is still going, which tells the caller to
// schedule another tick.
func (d *Driver) Tick(tok Token, delta float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if tok != d.gen || d.status != Running {
		return false
	}

	if !(delta > 0) {
		delta = 0
	}
	if d.opts.MaxDelta > 0 {
		delta = math.Min(delta, d.opts.MaxDelta)
	}
	delta *= d.opts.Scale

	if h, ok := d.timeline.(Holder); ok && h.Holding() {
		return true
	}

	next, done := d.timeline.Settle(d.elapsed + delta)
	d.elapsed = next
	if done {
		d.gen++
		d.status = Finished
		return false
	}
	return true
}

// Seek moves the clock to t, settled by the timeline. A seek that lands on
// the terminal condition finishes the clock; one that lands before it
// re-arms a finished clock. A running clock keeps its token unless the seek
// finishes it.
func (d *Driver) Seek(t float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !(t > 0) {
		t = 0
	}
	next, done := d.timeline.Settle(t)
	d.elapsed = next

	switch {
	case done && d.status != Finished:
		d.gen++
		d.status = Finished
	case !done && d.status == Finished:
		d.status = Stopped
	}
}

// Resettle re-applies the timeline to the current time, for use after the
// timeline's parameters changed.
func (d *Driver) Resettle() {
	d.Seek(d.Elapsed())
}

// SetScale changes the time multiplier. Non-positive values are ignored.
func (d *Driver) SetScale(s float64) {
	if !(s > 0) || math.IsInf(s, 0) {
		return
	}
	d.mu.Lock()
	d.opts.Scale = s
	d.mu.Unlock()
}

func (d *Driver) Scale() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opts.Scale
}

func (d *Driver) Elapsed() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elapsed
}

func (d *Driver) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Current returns the live token and status together.
func (d *Driver) Current() (Token, Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen, d.status
}

// Unbounded is a Timeline with no terminal condition.
type Unbounded struct{}

func (Unbounded) Settle(t float64) (float64, bool) { return t, false }
