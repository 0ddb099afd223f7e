package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/san-kum/mechlab/internal/clock"
)

func manual() *clock.ManualSource {
	return clock.NewManualSource(time.Unix(0, 0), 100*time.Millisecond)
}

func TestLoopRunsToFinish(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := clock.NewDriver(endAt{end: 0.5}, clock.Options{})
	_, ok := d.Play()
	require.True(t, ok)

	var ticks int
	var last clock.Status
	loop := clock.NewLoop(d, time.Millisecond, manual())
	loop.AddObserver(clock.ObserverFunc(func(elapsed float64, status clock.Status) {
		ticks++
		last = status
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, loop.Run(ctx))
	assert.Equal(t, clock.Finished, last)
	assert.Equal(t, 0.5, d.Elapsed())
	assert.GreaterOrEqual(t, ticks, 5)
}

func TestLoopRequiresRunningDriver(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := clock.NewDriver(clock.Unbounded{}, clock.Options{})
	err := clock.NewLoop(d, time.Millisecond, nil).Run(context.Background())
	assert.ErrorIs(t, err, clock.ErrNotRunning)
}

func TestLoopCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := clock.NewDriver(clock.Unbounded{}, clock.Options{})
	d.Play()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ticks int
	loop := clock.NewLoop(d, time.Millisecond, manual())
	loop.AddObserver(clock.ObserverFunc(func(float64, clock.Status) {
		ticks++
		if ticks == 3 {
			cancel()
		}
	}))

	err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, clock.Running, d.Status())
	assert.InDelta(t, 0.3, d.Elapsed(), 1e-9)
}

func TestLoopInterruptedByPause(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := clock.NewDriver(clock.Unbounded{}, clock.Options{})
	d.Play()

	var ticks int
	loop := clock.NewLoop(d, time.Millisecond, manual())
	loop.AddObserver(clock.ObserverFunc(func(float64, clock.Status) {
		ticks++
		if ticks == 2 {
			d.Pause()
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := loop.Run(ctx)
	assert.ErrorIs(t, err, clock.ErrInterrupted)
	assert.InDelta(t, 0.2, d.Elapsed(), 1e-9)
}

func TestLoopRejectsBadInterval(t *testing.T) {
	d := clock.NewDriver(clock.Unbounded{}, clock.Options{})
	d.Play()
	assert.Error(t, clock.NewLoop(d, 0, nil).Run(context.Background()))
}

func TestManualSource(t *testing.T) {
	src := clock.NewManualSource(time.Unix(10, 0), time.Second)
	assert.Equal(t, time.Unix(10, 0), src.Now())
	assert.Equal(t, time.Unix(11, 0), src.Now())
	src.Advance(5 * time.Second)
	assert.Equal(t, time.Unix(17, 0), src.Now())
}
