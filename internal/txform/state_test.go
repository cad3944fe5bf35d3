package txform

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNewState(t *testing.T) {
	want := State{Mode: ModeDeposit}
	if diff := cmp.Diff(want, NewState()); diff != "" {
		t.Errorf("NewState() mismatch (-want +got):\n%s", diff)
	}
}

func TestChangeAmount_EchoesVerbatim(t *testing.T) {
	inputs := []string{"", " 12 ", "abc", "1.50", "٣", "-0", "1,000", "\t"}
	for _, in := range inputs {
		s := NewState().SelectMode(ModeWithdraw)
		s.Validation = Validation{Message: "stale"}

		got := s.ChangeAmount(in)

		assert.Equal(t, in, got.AmountText)
		assert.False(t, got.Validation.IsError(), "error should clear for %q", in)
		assert.Empty(t, got.Validation.Message)
		assert.Equal(t, ModeWithdraw, got.Mode)
	}
}

func TestSelectMode_ClearsValidation(t *testing.T) {
	tests := []struct {
		name string
		from Mode
		to   Mode
	}{
		{"deposit to withdraw", ModeDeposit, ModeWithdraw},
		{"withdraw to deposit", ModeWithdraw, ModeDeposit},
		{"same mode", ModeWithdraw, ModeWithdraw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Mode: tt.from, AmountText: "150", Validation: Validation{Message: "insufficient balance"}}

			got := s.SelectMode(tt.to)

			want := State{Mode: tt.to, AmountText: "150"}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("SelectMode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	s := State{Mode: ModeWithdraw, AmountText: "5", Validation: Validation{Message: "x"}}
	_ = s.ChangeAmount("7")
	_ = s.SelectMode(ModeDeposit)
	assert.Equal(t, State{Mode: ModeWithdraw, AmountText: "5", Validation: Validation{Message: "x"}}, s)
}

func TestValidationIsError(t *testing.T) {
	assert.False(t, Validation{}.IsError())
	assert.True(t, Validation{Message: "insufficient balance"}.IsError())
}

func TestStateAmountIsNotCached(t *testing.T) {
	s := NewState().ChangeAmount("10")
	d, ok := s.Amount()
	assert.True(t, ok)
	assert.Equal(t, "10", d.String())

	s = s.ChangeAmount("oops")
	_, ok = s.Amount()
	assert.False(t, ok)
	assert.False(t, s.CanSubmit())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Withdraw ")
	assert.NoError(t, err)
	assert.Equal(t, ModeWithdraw, m)

	m, err = ParseMode("deposit")
	assert.NoError(t, err)
	assert.Equal(t, ModeDeposit, m)

	_, err = ParseMode("transfer")
	assert.Error(t, err)

	assert.Equal(t, ModeWithdraw, ModeDeposit.Next())
	assert.Equal(t, ModeDeposit, ModeWithdraw.Next())
	assert.Equal(t, "Withdraw", ModeWithdraw.Label())
	assert.True(t, ModeDeposit.Valid())
	assert.False(t, Mode("transfer").Valid())
}
