package txform

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSchedule is returned by Schedule.Validate.
var ErrInvalidSchedule = errors.New("invalid pulse schedule")

// Step moves the field to Offset over Duration.
type Step struct {
	Offset   float64
	Duration time.Duration
}

// Schedule is the ordered list of steps a pulse plays. It is plain data; the
// timing is supplied by whoever plays it.
type Schedule []Step

// DefaultSchedule is a damped horizontal shake: +10, -10, +6, -6, 0 at 50ms
// per step.
var DefaultSchedule = Schedule{
	{Offset: 10, Duration: 50 * time.Millisecond},
	{Offset: -10, Duration: 50 * time.Millisecond},
	{Offset: 6, Duration: 50 * time.Millisecond},
	{Offset: -6, Duration: 50 * time.Millisecond},
	{Offset: 0, Duration: 50 * time.Millisecond},
}

// Validate checks that the schedule is non-empty, every step has a positive
// duration, and the last step returns to the neutral offset.
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidSchedule)
	}
	for i, st := range s {
		if st.Duration <= 0 {
			return fmt.Errorf("%w: step %d has duration %s", ErrInvalidSchedule, i, st.Duration)
		}
	}
	if last := s[len(s)-1].Offset; last != 0 {
		return fmt.Errorf("%w: ends at offset %g", ErrInvalidSchedule, last)
	}
	return nil
}

// Total is the play time of the whole schedule.
func (s Schedule) Total() time.Duration {
	var total time.Duration
	for _, st := range s {
		total += st.Duration
	}
	return total
}

// Frame identifies one pending step of a running pulse.
type Frame struct {
	Gen   uint64
	Step  int
	Delay time.Duration
}

// Pulse plays a Schedule one step at a time. It is a value; each call returns
// the next Pulse. Starting a pulse while one is running restarts it under a
// new generation, and frames of older generations are ignored.
type Pulse struct {
	schedule Schedule
	gen      uint64
	step     int
	running  bool
	offset   float64
}

// NewPulse returns an idle pulse for schedule.
func NewPulse(schedule Schedule) Pulse {
	return Pulse{schedule: schedule}
}

// Start begins (or restarts) the sequence. ok is false when the schedule has
// no steps, in which case the pulse is left idle at the neutral offset.
func (p Pulse) Start() (next Pulse, first Frame, ok bool) {
	p.gen++
	if len(p.schedule) == 0 {
		p.running = false
		p.offset = 0
		return p, Frame{}, false
	}
	p.running = true
	p.step = 0
	return p, Frame{Gen: p.gen, Step: 0, Delay: p.schedule[0].Duration}, true
}

// Advance applies frame f once its delay has elapsed and returns the frame
// to schedule next. Stale or duplicate frames leave the pulse unchanged.
func (p Pulse) Advance(f Frame) (next Pulse, following Frame, more bool) {
	if !p.running || f.Gen != p.gen || f.Step != p.step {
		return p, Frame{}, false
	}
	p.offset = p.schedule[p.step].Offset
	p.step++
	if p.step >= len(p.schedule) {
		p.running = false
		p.offset = 0
		return p, Frame{}, false
	}
	return p, Frame{Gen: p.gen, Step: p.step, Delay: p.schedule[p.step].Duration}, true
}

// Stop abandons any running sequence and snaps back to neutral.
func (p Pulse) Stop() Pulse {
	p.gen++
	p.running = false
	p.step = 0
	p.offset = 0
	return p
}

// Offset is the current presentational offset.
func (p Pulse) Offset() float64 {
	return p.offset
}

// Running reports whether a sequence is in flight.
func (p Pulse) Running() bool {
	return p.running
}
