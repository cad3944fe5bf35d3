package txform

import "time"

// Scheduler runs fn once after d. Implementations must invoke fn on the
// same event loop that drives the Widget.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// ManualScheduler is a Scheduler driven by explicit calls to Advance or
// Drain. Callbacks fire in due order, ties in scheduling order.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []manualTimer
}

type manualTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After implements Scheduler.
func (m *ManualScheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.timers = append(m.timers, manualTimer{at: m.now + d, seq: m.seq, fn: fn})
	m.seq++
}

// Advance moves the clock forward by d, firing every callback that falls due,
// including ones scheduled by callbacks fired along the way.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		i := m.earliest()
		if i < 0 || m.timers[i].at > target {
			break
		}
		m.fire(i)
	}
	m.now = target
}

// Drain fires callbacks until none are pending.
func (m *ManualScheduler) Drain() {
	for {
		i := m.earliest()
		if i < 0 {
			return
		}
		m.fire(i)
	}
}

// Pending is the number of callbacks not yet fired.
func (m *ManualScheduler) Pending() int {
	return len(m.timers)
}

// Now is the scheduler's current time since creation.
func (m *ManualScheduler) Now() time.Duration {
	return m.now
}

func (m *ManualScheduler) earliest() int {
	best := -1
	for i, t := range m.timers {
		if best < 0 || t.at < m.timers[best].at || (t.at == m.timers[best].at && t.seq < m.timers[best].seq) {
			best = i
		}
	}
	return best
}

func (m *ManualScheduler) fire(i int) {
	t := m.timers[i]
	m.timers = append(m.timers[:i], m.timers[i+1:]...)
	if t.at > m.now {
		m.now = t.at
	}
	t.fn()
}
