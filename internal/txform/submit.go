package txform

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Rejection reasons reported in Result.Reason.
var (
	// ErrSubmitDisabled means the amount is missing, non-numeric or below
	// MinAmount. The interactive form never reaches it because the send
	// control is disabled; it carries no message and no pulse.
	ErrSubmitDisabled = errors.New("submit disabled")
	// ErrInsufficientBalance means a withdrawal exceeds the balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Intent is what the form hands to the transaction executor.
type Intent struct {
	Mode   Mode
	Amount decimal.Decimal
}

// Result is the outcome of a submit attempt.
type Result struct {
	State  State
	Intent *Intent // nil unless the attempt passed validation
	Pulse  bool    // the feedback pulse should play
	Reason error   // nil, ErrSubmitDisabled or ErrInsufficientBalance
}

// Accepted reports whether the attempt produced an intent.
func (r Result) Accepted() bool {
	return r.Intent != nil
}

// Submit validates the current amount against balance. Deposits are never
// balance-checked; a withdrawal equal to the balance is allowed.
func (s State) Submit(balance decimal.Decimal, loc *Localizer) Result {
	s.Validation = Validation{}

	amount, ok := s.Amount()
	if !ok || !s.CanSubmit() {
		return Result{State: s, Reason: ErrSubmitDisabled}
	}

	if s.Mode == ModeWithdraw && amount.GreaterThan(balance) {
		if loc == nil {
			loc = NewLocalizer("")
		}
		s.Validation = Validation{Message: loc.InsufficientBalance()}
		return Result{State: s, Pulse: true, Reason: ErrInsufficientBalance}
	}

	return Result{State: s, Intent: &Intent{Mode: s.Mode, Amount: amount}}
}
