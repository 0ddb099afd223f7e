package clock

import (
	"sync"
	"time"
)

// Source provides the wall time a Loop measures deltas against.
type Source interface {
	Now() time.Time
}

// WallSource reads the system clock.
type WallSource struct{}

func (WallSource) Now() time.Time { return time.Now() }

// ManualSource advances by Step on every read, so a loop driven by it sees
// the same delta on every tick regardless of scheduling jitter.
type ManualSource struct {
	mu      sync.Mutex
	current time.Time
	Step    time.Duration
}

func NewManualSource(start time.Time, step time.Duration) *ManualSource {
	return &ManualSource{current: start, Step: step}
}

func (m *ManualSource) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.current
	m.current = m.current.Add(m.Step)
	return now
}

// Advance moves the source forward without a read.
func (m *ManualSource) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
