package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/teller/internal/ledger"
	"github.com/cleared-dev/teller/internal/txform"
)

// Recorder persists accepted intents. *ledger.Service satisfies it.
type Recorder interface {
	Record(ctx context.Context, in txform.Intent, note string) (ledger.Transaction, error)
}

type recordedMsg struct {
	txn ledger.Transaction
}

type recordFailedMsg struct {
	err error
}

// AppModel hosts a FormModel and records what it emits. After each
// recorded transaction the form is remounted with the new balance.
type AppModel struct {
	ctx      context.Context
	recorder Recorder
	opts     FormOptions
	account  string
	logger   *zap.Logger

	form      FormModel
	keys      keyMap
	styles    Styles
	busy      bool
	status    string
	statusErr bool
	recorded  []ledger.Transaction
	quitting  bool
}

// NewAppModel builds the interactive transaction screen.
func NewAppModel(ctx context.Context, rec Recorder, account string, balance decimal.Decimal, opts FormOptions) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	return AppModel{
		ctx:      ctx,
		recorder: rec,
		opts:     opts,
		account:  account,
		logger:   logger,
		form:     NewFormModel(balance, opts),
		keys:     defaultKeyMap(),
		styles:   styles,
	}
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}

	case IntentMsg:
		m.busy = true
		m.status = ""
		m.statusErr = false
		return m, m.record(msg.Intent)

	case recordedMsg:
		m.busy = false
		m.recorded = append(m.recorded, msg.txn)
		m.status = fmt.Sprintf("Recorded %s: %s %s, balance %s",
			msg.txn.ID, msg.txn.Mode, msg.txn.Amount.StringFixed(2), msg.txn.Balance.StringFixed(2))
		m.statusErr = false
		m.form = NewFormModel(msg.txn.Balance, m.opts)
		return m, m.form.Init()

	case recordFailedMsg:
		m.busy = false
		m.status = msg.err.Error()
		m.statusErr = true
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m AppModel) record(in txform.Intent) tea.Cmd {
	ctx, rec, logger := m.ctx, m.recorder, m.logger
	return func() tea.Msg {
		t, err := rec.Record(ctx, in, "")
		if err != nil {
			logger.Error("recording intent", zap.String("mode", string(in.Mode)), zap.Error(err))
			return recordFailedMsg{err: err}
		}
		return recordedMsg{txn: t}
	}
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.account))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Card.Render(m.form.View()))
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(m.styles.Status.Render("Recording..."))
	case m.statusErr:
		b.WriteString(m.styles.StatusError.Render(m.status))
	case m.status != "":
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

// Form returns the mounted form.
func (m AppModel) Form() FormModel {
	return m.form
}

// Recorded lists the transactions stored during this session.
func (m AppModel) Recorded() []ledger.Transaction {
	return m.recorded
}
