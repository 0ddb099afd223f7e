package clock

import (
	"context"
	"fmt"
	"time"
)

// Observer is notified after every tick the loop delivers.
type Observer interface {
	OnTick(elapsed float64, status Status)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(elapsed float64, status Status)

func (f ObserverFunc) OnTick(elapsed float64, status Status) { f(elapsed, status) }

// Loop schedules ticks for a Driver from a time.Ticker.
type Loop struct {
	driver    *Driver
	interval  time.Duration
	source    Source
	observers []Observer
}

func NewLoop(d *Driver, interval time.Duration, src Source) *Loop {
	if src == nil {
		src = WallSource{}
	}
	return &Loop{
		driver:    d,
		interval:  interval,
		source:    src,
		observers: make([]Observer, 0),
	}
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Run ticks the driver until its run ends or ctx is done. It returns nil
// when the clock finishes, ErrInterrupted when the run was paused or reset
// from elsewhere, and ctx.Err() on cancellation. The driver must already be
// playing.
func (l *Loop) Run(ctx context.Context) error {
	if l.interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", l.interval)
	}

	tok, status := l.driver.Current()
	if status != Running {
		return ErrNotRunning
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := l.source.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		now := l.source.Now()
		delta := now.Sub(last).Seconds()
		last = now

		alive := l.driver.Tick(tok, delta)

		elapsed := l.driver.Elapsed()
		status := l.driver.Status()
		for _, obs := range l.observers {
			obs.OnTick(elapsed, status)
		}

		if !alive {
			if status == Finished {
				return nil
			}
			return ErrInterrupted
		}
	}
}
