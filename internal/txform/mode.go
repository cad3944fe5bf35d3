package txform

import (
	"fmt"
	"strings"
)

// Mode is the transaction direction selected in the form.
type Mode string

const (
	ModeDeposit  Mode = "deposit"
	ModeWithdraw Mode = "withdraw"
)

// Modes lists the selectable modes in display order.
var Modes = []Mode{ModeDeposit, ModeWithdraw}

// ParseMode parses a mode name, ignoring case and surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDeposit:
		return ModeDeposit, nil
	case ModeWithdraw:
		return ModeWithdraw, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want deposit or withdraw)", s)
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeDeposit || m == ModeWithdraw
}

// Next returns the other mode.
func (m Mode) Next() Mode {
	if m == ModeWithdraw {
		return ModeDeposit
	}
	return ModeWithdraw
}

// Label is the tab caption for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeDeposit:
		return "Deposit"
	case ModeWithdraw:
		return "Withdraw"
	default:
		return string(m)
	}
}
