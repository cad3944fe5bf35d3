package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/teller/internal/txform"
)

// IntentMsg is emitted when the form accepts a submit.
type IntentMsg struct {
	Intent txform.Intent
}

// pulseMsg carries a scheduled widget callback back onto the event loop.
type pulseMsg struct {
	fn func()
}

// tickScheduler turns widget timers into tea.Tick commands. Commands queue
// up while the widget runs and are handed to bubbletea by flush.
type tickScheduler struct {
	pending []tea.Cmd
}

func (s *tickScheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return pulseMsg{fn: fn}
	}))
}

func (s *tickScheduler) flush() tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// DefaultShakeScale is used when FormOptions.ShakeScale is unset.
const DefaultShakeScale = 0.5

// FormOptions configures a FormModel.
type FormOptions struct {
	Localizer  *txform.Localizer
	Schedule   txform.Schedule
	ShakeScale float64 // columns per pulse unit
	Currency   string
	Logger     *zap.Logger
	Styles     *Styles
}

// FormModel renders a txform.Widget: mode tabs, amount input, error line,
// and send button.
type FormModel struct {
	widget *txform.Widget
	sched  *tickScheduler
	input  textinput.Model
	keys   keyMap
	help   help.Model
	styles Styles

	scale    float64
	margin   int
	currency string
}

// NewFormModel mounts a form for balance.
func NewFormModel(balance decimal.Decimal, opts FormOptions) FormModel {
	sched := &tickScheduler{}
	wopts := []txform.Option{txform.WithScheduler(sched)}
	if opts.Schedule != nil {
		wopts = append(wopts, txform.WithSchedule(opts.Schedule))
	}
	if opts.Localizer != nil {
		wopts = append(wopts, txform.WithLocalizer(opts.Localizer))
	}
	if opts.Logger != nil {
		wopts = append(wopts, txform.WithLogger(opts.Logger))
	}
	w := txform.NewWidget(balance, wopts...)

	if opts.ShakeScale <= 0 {
		opts.ShakeScale = DefaultShakeScale
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	ti := textinput.New()
	ti.Placeholder = w.Localizer().Placeholder()
	ti.Prompt = ""
	ti.CharLimit = 0 // never drop keystrokes
	ti.Width = 24
	ti.Focus()

	return FormModel{
		widget:   w,
		sched:    sched,
		input:    ti,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   styles,
		scale:    opts.ShakeScale,
		margin:   int(math.Ceil(maxOffset(w.Schedule()) * opts.ShakeScale)),
		currency: opts.Currency,
	}
}

// Init starts the cursor blinking.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keys and pulse frames.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case pulseMsg:
		msg.fn()
		return m, m.sched.flush()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.NextMode):
			m.widget.SelectMode(m.widget.State().Mode.Next())
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.widget.SelectMode(prevMode(m.widget.State().Mode))
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.widget.State().AmountText {
		m.widget.ChangeAmount(v)
	}
	return m, cmd
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	if !m.widget.CanSubmit() {
		return m, nil
	}
	res := m.widget.AttemptSubmit()
	cmds := []tea.Cmd{m.sched.flush()}
	if res.Intent != nil {
		intent := *res.Intent
		cmds = append(cmds, func() tea.Msg { return IntentMsg{Intent: intent} })
	}
	return m, tea.Batch(cmds...)
}

// View renders the form.
func (m FormModel) View() string {
	state := m.widget.State()
	var b strings.Builder

	tabs := make([]string, 0, len(txform.Modes))
	for _, mode := range txform.Modes {
		style := m.styles.Tab
		if mode == state.Mode {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(mode.Label()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Balance.Render(fmt.Sprintf("Balance: %s %s",
		m.widget.Balance().StringFixed(2), m.currency)))
	b.WriteString("\n")

	inputStyle := m.styles.Input
	if state.Validation.IsError() {
		inputStyle = m.styles.InputError
	}
	b.WriteString(lipgloss.NewStyle().
		MarginLeft(m.shift()).
		Render(inputStyle.Render(m.input.View())))
	b.WriteString("\n")

	if state.Validation.IsError() {
		b.WriteString(lipgloss.NewStyle().MarginLeft(m.margin).
			Render(m.styles.ErrorText.Render(state.Validation.Message)))
		b.WriteString("\n")
	}

	button := m.styles.Button
	if !m.widget.CanSubmit() {
		button = m.styles.DisabledButton
	}
	b.WriteString(lipgloss.NewStyle().MarginLeft(m.margin).
		Render(button.Render(m.widget.Localizer().Send())))
	b.WriteString("\n\n")

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// State returns the widget's business state.
func (m FormModel) State() txform.State {
	return m.widget.State()
}

// Offset returns the current pulse offset.
func (m FormModel) Offset() float64 {
	return m.widget.Offset()
}

// Pulsing reports whether a shake is playing.
func (m FormModel) Pulsing() bool {
	return m.widget.Pulsing()
}

// CanSubmit reports whether the send button is enabled.
func (m FormModel) CanSubmit() bool {
	return m.widget.CanSubmit()
}

// shift is the input's left margin: the resting margin plus the scaled
// pulse offset, never negative.
func (m FormModel) shift() int {
	s := m.margin + int(math.Round(m.widget.Offset()*m.scale))
	if s < 0 {
		return 0
	}
	return s
}

func maxOffset(s txform.Schedule) float64 {
	var peak float64
	for _, step := range s {
		if a := math.Abs(step.Offset); a > peak {
			peak = a
		}
	}
	return peak
}

func prevMode(m txform.Mode) txform.Mode {
	for i, mode := range txform.Modes {
		if mode == m {
			return txform.Modes[(i+len(txform.Modes)-1)%len(txform.Modes)]
		}
	}
	return txform.ModeDeposit
}
