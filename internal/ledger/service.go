// Package ledger stores committed transactions as monthly CSV files under
// <root>/ledger/YYYY/MM.csv and derives the account balance from them.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/teller/internal/txform"
)

// Dir is the ledger directory relative to the repository root.
const Dir = "ledger"

var (
	// ErrInsufficientFunds is returned when a withdrawal exceeds the ledger balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount is returned for non-positive amounts.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Committer records a change to the repository, e.g. as a git commit.
type Committer interface {
	Commit(ctx context.Context, message string) (string, error)
}

// Service reads and appends ledger files.
type Service struct {
	root      string
	now       func() time.Time
	newRef    func() string
	committer Committer
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithReferences overrides the UUID generator.
func WithReferences(next func() string) Option {
	return func(s *Service) { s.newRef = next }
}

// WithCommitter commits every recorded transaction.
func WithCommitter(c Committer) Option {
	return func(s *Service) { s.committer = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a ledger Service rooted at repoRoot.
func NewService(repoRoot string, opts ...Option) *Service {
	s := &Service{
		root:   repoRoot,
		now:    time.Now,
		newRef: func() string { return uuid.NewString() },
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// All returns every transaction in chronological order.
func (s *Service) All(ctx context.Context) ([]Transaction, error) {
	paths, err := s.monthFiles()
	if err != nil {
		return nil, err
	}

	var all []Transaction
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		txns, err := readFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, txns...)
	}
	return all, nil
}

// Balance is the sum of deposits minus withdrawals.
func (s *Service) Balance(ctx context.Context) (decimal.Decimal, error) {
	txns, err := s.All(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return sum(txns), nil
}

// History returns up to limit transactions, newest first. limit <= 0 means all.
func (s *Service) History(ctx context.Context, limit int) ([]Transaction, error) {
	txns, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, 0, len(txns))
	for i := len(txns) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, txns[i])
	}
	return out, nil
}

// Check validates the whole ledger.
func (s *Service) Check(ctx context.Context) ([]ValidationError, error) {
	txns, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return Validate(txns), nil
}

// Record appends the intent to the current month's file and returns the
// stored transaction. Withdrawals are checked against the ledger balance,
// which may have moved since the form was mounted.
func (s *Service) Record(ctx context.Context, in txform.Intent, note string) (Transaction, error) {
	if err := ctx.Err(); err != nil {
		return Transaction{}, err
	}
	if !in.Mode.Valid() {
		return Transaction{}, fmt.Errorf("recording transaction: unknown mode %q", in.Mode)
	}
	if !in.Amount.IsPositive() {
		return Transaction{}, fmt.Errorf("recording transaction: %w: %s", ErrInvalidAmount, in.Amount)
	}

	existing, err := s.All(ctx)
	if err != nil {
		return Transaction{}, err
	}
	balance := sum(existing)
	if in.Mode == txform.ModeWithdraw && in.Amount.GreaterThan(balance) {
		return Transaction{}, fmt.Errorf("withdrawing %s from %s: %w", in.Amount.StringFixed(2), balance.StringFixed(2), ErrInsufficientFunds)
	}

	now := s.now()
	year, month := now.Year(), int(now.Month())
	seq := nextSeq(existing, year, month)

	t := Transaction{
		ID:        FormatID(year, month, seq),
		Reference: s.newRef(),
		Date:      time.Date(year, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Mode:      in.Mode,
		Amount:    in.Amount,
		Note:      note,
	}
	t.Balance = balance.Add(t.Signed())

	if verrs := Validate(append(existing, t)); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return Transaction{}, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	if err := s.appendToMonth(year, month, t); err != nil {
		return Transaction{}, err
	}
	s.logger.Info("transaction recorded",
		zap.String("id", t.ID),
		zap.String("mode", string(t.Mode)),
		zap.String("amount", t.Amount.StringFixed(2)),
		zap.String("balance", t.Balance.StringFixed(2)))

	if s.committer != nil {
		msg := fmt.Sprintf("%s: %s %s", t.ID, t.Mode, t.Amount.StringFixed(2))
		hash, err := s.committer.Commit(ctx, msg)
		if err != nil {
			// The row is already on disk; the next commit will pick it up.
			s.logger.Warn("commit failed", zap.String("id", t.ID), zap.Error(err))
		} else {
			s.logger.Debug("transaction committed", zap.String("id", t.ID), zap.String("commit", hash))
		}
	}

	return t, nil
}

func (s *Service) appendToMonth(year, month int, t Transaction) error {
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendTransactions(f, []Transaction{t}); err != nil {
		return fmt.Errorf("appending transaction: %w", err)
	}
	return nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, Dir, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d.csv", month))
}

// monthFiles lists ledger files in chronological order.
func (s *Service) monthFiles() ([]string, error) {
	pattern := filepath.Join(s.root, Dir, "[0-9][0-9][0-9][0-9]", "[0-9][0-9].csv")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing ledger files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func readFile(path string) ([]Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

func sum(txns []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Signed())
	}
	return total
}

func nextSeq(txns []Transaction, year, month int) int {
	maxSeq := 0
	for _, t := range txns {
		y, m, seq, err := ParseID(t.ID)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}
