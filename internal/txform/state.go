package txform

import "github.com/shopspring/decimal"

// Validation is the form's error line. The form is in error exactly when
// Message is non-empty.
type Validation struct {
	Message string
}

// IsError reports whether the validation carries an error message.
func (v Validation) IsError() bool {
	return v.Message != ""
}

// State is the complete business state of the form. It is a value: every
// transition returns a new State and leaves the receiver untouched.
type State struct {
	Mode       Mode
	AmountText string
	Validation Validation
}

// NewState returns the state of a freshly mounted form.
func NewState() State {
	return State{Mode: ModeDeposit}
}

// SelectMode switches to mode and clears the validation, even when mode is
// already active.
func (s State) SelectMode(mode Mode) State {
	s.Mode = mode
	s.Validation = Validation{}
	return s
}

// ChangeAmount stores text verbatim and clears the validation.
func (s State) ChangeAmount(text string) State {
	s.AmountText = text
	s.Validation = Validation{}
	return s
}

// Amount parses the current amount text. It is recomputed on every call.
func (s State) Amount() (decimal.Decimal, bool) {
	return ParseAmount(s.AmountText)
}

// CanSubmit reports whether the submit action is enabled.
func (s State) CanSubmit() bool {
	return CanSubmit(s.AmountText)
}
