package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError describes a single ledger invariant violation.
type ValidationError struct {
	Invariant int
	ID        string
	Message   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.ID, e.Message)
}

// Validate checks a chronologically ordered ledger:
//
//  1. IDs parse, match their date's month, and run 1..N within each month.
//  2. Amounts are positive.
//  3. Modes are deposit or withdraw.
//  4. Amounts have at most 2 decimal places.
//  5. The running balance never goes negative and matches the balance column.
func Validate(txns []Transaction) []ValidationError {
	var errs []ValidationError

	type month struct{ year, month int }
	seqs := make(map[month]map[int]bool)
	var order []month

	hundred := decimal.NewFromInt(100)
	running := decimal.Zero

	for _, t := range txns {
		year, mon, seq, err := ParseID(t.ID)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{Invariant: 1, ID: t.ID, Message: err.Error()})
		case year != t.Date.Year() || mon != int(t.Date.Month()):
			errs = append(errs, ValidationError{
				Invariant: 1,
				ID:        t.ID,
				Message:   fmt.Sprintf("date %s not in %04d-%02d", t.Date.Format(dateFormat), year, mon),
			})
		default:
			k := month{year, mon}
			if seqs[k] == nil {
				seqs[k] = make(map[int]bool)
				order = append(order, k)
			}
			if seqs[k][seq] {
				errs = append(errs, ValidationError{Invariant: 1, ID: t.ID, Message: "duplicate sequence"})
			}
			seqs[k][seq] = true
		}

		if !t.Amount.IsPositive() {
			errs = append(errs, ValidationError{
				Invariant: 2,
				ID:        t.ID,
				Message:   fmt.Sprintf("amount %s is not positive", t.Amount),
			})
		}

		if !t.Mode.Valid() {
			errs = append(errs, ValidationError{
				Invariant: 3,
				ID:        t.ID,
				Message:   fmt.Sprintf("unknown mode %q", t.Mode),
			})
		}

		if scaled := t.Amount.Mul(hundred); !scaled.Equal(scaled.Floor()) {
			errs = append(errs, ValidationError{
				Invariant: 4,
				ID:        t.ID,
				Message:   fmt.Sprintf("amount %s has more than 2 decimal places", t.Amount),
			})
		}

		running = running.Add(t.Signed())
		if running.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant: 5,
				ID:        t.ID,
				Message:   fmt.Sprintf("balance goes negative (%s)", running.StringFixed(2)),
			})
		}
		if !running.Equal(t.Balance) {
			errs = append(errs, ValidationError{
				Invariant: 5,
				ID:        t.ID,
				Message:   fmt.Sprintf("balance column %s != running balance %s", t.Balance.StringFixed(2), running.StringFixed(2)),
			})
		}
	}

	for _, k := range order {
		n := len(seqs[k])
		for i := 1; i <= n; i++ {
			if !seqs[k][i] {
				errs = append(errs, ValidationError{
					Invariant: 1,
					ID:        fmt.Sprintf("%04d-%02d", k.year, k.month),
					Message:   fmt.Sprintf("missing sequence %d in 1..%d", i, n),
				})
			}
		}
	}

	return errs
}
