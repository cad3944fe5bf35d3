// Package txform implements the deposit/withdraw form: mode selection,
// amount validation against a fixed balance, and the shake feedback played
// when a withdrawal is rejected. It has no rendering code; see internal/tui.
package txform

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IntentHandler receives intents that passed validation.
type IntentHandler func(Intent)

// Widget owns one form instance. It is not safe for concurrent use; all
// calls, including scheduled pulse callbacks, must come from one event loop.
type Widget struct {
	state    State
	balance  decimal.Decimal
	loc      *Localizer
	schedule Schedule
	pulse    Pulse
	sched    Scheduler
	onIntent IntentHandler
	logger   *zap.Logger
}

// Option configures a Widget.
type Option func(*Widget)

// WithScheduler sets the timer used to play the pulse. Without one the pulse
// is a no-op.
func WithScheduler(s Scheduler) Option {
	return func(w *Widget) { w.sched = s }
}

// WithLocalizer sets the message catalog.
func WithLocalizer(l *Localizer) Option {
	return func(w *Widget) { w.loc = l }
}

// WithSchedule replaces DefaultSchedule. A schedule that fails Validate is
// logged and DefaultSchedule is used instead.
func WithSchedule(s Schedule) Option {
	return func(w *Widget) { w.schedule = s }
}

// WithIntentHandler sets the receiver of accepted intents.
func WithIntentHandler(h IntentHandler) Option {
	return func(w *Widget) { w.onIntent = h }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Widget) { w.logger = l }
}

// NewWidget mounts a form for balance in deposit mode with an empty amount.
func NewWidget(balance decimal.Decimal, opts ...Option) *Widget {
	w := &Widget{
		state:    NewState(),
		balance:  balance,
		schedule: DefaultSchedule,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.loc == nil {
		w.loc = NewLocalizer("")
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	if err := w.schedule.Validate(); err != nil {
		w.logger.Warn("using default pulse schedule", zap.Error(err))
		w.schedule = DefaultSchedule
	}
	w.pulse = NewPulse(w.schedule)
	return w
}

// State returns the current business state.
func (w *Widget) State() State {
	return w.state
}

// Balance returns the balance the form validates against.
func (w *Widget) Balance() decimal.Decimal {
	return w.balance
}

// Localizer returns the form's message catalog.
func (w *Widget) Localizer() *Localizer {
	return w.loc
}

// Schedule is the pulse schedule in use.
func (w *Widget) Schedule() Schedule {
	return w.schedule
}

// Offset is the current pulse offset; 0 when no pulse is playing.
func (w *Widget) Offset() float64 {
	return w.pulse.Offset()
}

// Pulsing reports whether a pulse sequence is in flight.
func (w *Widget) Pulsing() bool {
	return w.pulse.Running()
}

// SelectMode switches the mode and clears any error.
func (w *Widget) SelectMode(m Mode) {
	if m != w.state.Mode {
		w.logger.Debug("mode selected", zap.String("mode", string(m)))
	}
	w.state = w.state.SelectMode(m)
}

// ChangeAmount records the amount text exactly as typed and clears any error.
func (w *Widget) ChangeAmount(text string) {
	w.state = w.state.ChangeAmount(text)
}

// CanSubmit reports whether the submit action is enabled.
func (w *Widget) CanSubmit() bool {
	return w.state.CanSubmit()
}

// AttemptSubmit validates the amount. A rejected withdrawal sets the error
// message and plays the pulse; an accepted attempt is handed to the intent
// handler. The balance is never changed here.
func (w *Widget) AttemptSubmit() Result {
	res := w.state.Submit(w.balance, w.loc)
	w.state = res.State

	switch {
	case res.Pulse:
		w.logger.Info("submit rejected",
			zap.String("mode", string(w.state.Mode)),
			zap.String("amount", w.state.AmountText),
			zap.String("balance", w.balance.String()),
			zap.Error(res.Reason))
		w.Pulse()
	case res.Intent != nil:
		w.logger.Info("submit accepted",
			zap.String("mode", string(res.Intent.Mode)),
			zap.String("amount", res.Intent.Amount.String()))
		if w.onIntent != nil {
			w.onIntent(*res.Intent)
		}
	default:
		w.logger.Debug("submit ignored", zap.Error(res.Reason))
	}
	return res
}

// Pulse plays the shake sequence, restarting it if one is in flight.
func (w *Widget) Pulse() {
	if w.sched == nil {
		w.pulse = w.pulse.Stop()
		return
	}
	p, first, ok := w.pulse.Start()
	w.pulse = p
	if ok {
		w.scheduleFrame(first)
	}
}

func (w *Widget) scheduleFrame(f Frame) {
	w.sched.After(f.Delay, func() {
		wasRunning := w.pulse.Running()
		p, next, more := w.pulse.Advance(f)
		w.pulse = p
		if more {
			w.scheduleFrame(next)
			return
		}
		if wasRunning && !p.Running() {
			w.logger.Debug("pulse finished")
		}
	})
}
