package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/teller/internal/txform"
)

// Transaction is one row of a monthly ledger file.
type Transaction struct {
	ID        string // "YYYY-MM-NNN"
	Reference string // UUID assigned at recording time
	Date      time.Time
	Mode      txform.Mode
	Amount    decimal.Decimal // always positive
	Balance   decimal.Decimal // running balance after this transaction
	Note      string
}

// Signed returns the amount with withdrawals negated.
func (t Transaction) Signed() decimal.Decimal {
	if t.Mode == txform.ModeWithdraw {
		return t.Amount.Neg()
	}
	return t.Amount
}

// FormatID returns a transaction ID like "2025-01-001".
func FormatID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseID parses "2025-01-001" into year, month, seq.
func ParseID(id string) (year, month, seq int, err error) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid transaction ID format: %q", id)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid transaction ID %q: %w", id, err)
		}
		nums[i] = n
	}
	if nums[1] < 1 || nums[1] > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in transaction ID %q", id)
	}
	return nums[0], nums[1], nums[2], nil
}
