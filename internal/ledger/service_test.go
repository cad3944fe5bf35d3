package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/teller/internal/txform"
)

type fakeCommitter struct {
	messages []string
	err      error
}

func (f *fakeCommitter) Commit(_ context.Context, message string) (string, error) {
	f.messages = append(f.messages, message)
	if f.err != nil {
		return "", f.err
	}
	return "abc1234", nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(t *testing.T, opts ...Option) (*Service, *clock, string) {
	t.Helper()
	dir := t.TempDir()
	c := &clock{t: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)}
	n := 0
	all := append([]Option{
		WithClock(c.now),
		WithReferences(func() string { n++; return fmt.Sprintf("ref-%d", n) }),
	}, opts...)
	return NewService(dir, all...), c, dir
}

func deposit(amount string) txform.Intent {
	return txform.Intent{Mode: txform.ModeDeposit, Amount: dec(amount)}
}

func withdraw(amount string) txform.Intent {
	return txform.Intent{Mode: txform.ModeWithdraw, Amount: dec(amount)}
}

func TestRecord_NewMonth(t *testing.T) {
	svc, _, dir := newTestService(t)
	ctx := context.Background()

	txn, err := svc.Record(ctx, deposit("100"), "paycheck")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", txn.ID)
	assert.Equal(t, "ref-1", txn.Reference)
	assert.Equal(t, date(2025, 1, 15), txn.Date)
	assert.True(t, txn.Balance.Equal(dec("100")))

	data, err := os.ReadFile(filepath.Join(dir, "ledger", "2025", "01.csv"))
	require.NoError(t, err)
	assert.Equal(t, Header+"\n2025-01-001,ref-1,2025-01-15,deposit,100.00,100.00,paycheck\n", string(data))
}

func TestRecord_SequenceAndBalance(t *testing.T) {
	svc, c, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, deposit("100"), "")
	require.NoError(t, err)
	second, err := svc.Record(ctx, withdraw("30.25"), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-002", second.ID)
	assert.True(t, second.Balance.Equal(dec("69.75")))

	c.t = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	third, err := svc.Record(ctx, withdraw("69.75"), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-001", third.ID)
	assert.True(t, third.Balance.IsZero())

	bal, err := svc.Balance(ctx)
	require.NoError(t, err)
	assert.True(t, bal.IsZero())

	errs, err := svc.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestRecord_InsufficientFunds(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, deposit("10"), "")
	require.NoError(t, err)

	_, err = svc.Record(ctx, withdraw("10.01"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	txns, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, txns, 1, "rejected withdrawal must not be written")
}

func TestRecord_RejectsBadIntents(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, deposit("0"), "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Record(ctx, txform.Intent{Mode: "transfer", Amount: dec("1")}, "")
	assert.Error(t, err)

	_, err = svc.Record(ctx, deposit("1.005"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invariant 4")
}

func TestRecord_CanceledContext(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Record(ctx, deposit("1"), "")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRecord_Commits(t *testing.T) {
	fc := &fakeCommitter{}
	svc, _, _ := newTestService(t, WithCommitter(fc))

	_, err := svc.Record(context.Background(), deposit("12.5"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-001: deposit 12.50"}, fc.messages)
}

func TestRecord_CommitFailureKeepsRow(t *testing.T) {
	fc := &fakeCommitter{err: errors.New("git unavailable")}
	svc, _, _ := newTestService(t, WithCommitter(fc))
	ctx := context.Background()

	_, err := svc.Record(ctx, deposit("5"), "")
	require.NoError(t, err)

	bal, err := svc.Balance(ctx)
	require.NoError(t, err)
	assert.True(t, bal.Equal(dec("5")))
}

func TestHistory(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	for _, amt := range []string{"1", "2", "3"} {
		_, err := svc.Record(ctx, deposit(amt), "")
		require.NoError(t, err)
	}

	recent, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2025-01-003", recent[0].ID)
	assert.Equal(t, "2025-01-002", recent[1].ID)

	all, err := svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBalance_EmptyLedger(t *testing.T) {
	svc, _, _ := newTestService(t)
	bal, err := svc.Balance(context.Background())
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestAll_ReportsCorruptFile(t *testing.T) {
	svc, _, dir := newTestService(t)
	path := filepath.Join(dir, "ledger", "2024", "12.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("garbage\n"), 0o644))

	_, err := svc.All(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "12.csv")
}
