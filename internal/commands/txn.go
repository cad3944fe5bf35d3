package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/teller/internal/tui"
	"github.com/cleared-dev/teller/internal/txform"
)

type txnOptions struct {
	repoDir string
	mode    string
	amount  string
	note    string
}

func newTxnCommand(flags *globalFlags) *cobra.Command {
	var opts txnOptions

	cmd := &cobra.Command{
		Use:   "txn",
		Short: "Deposit or withdraw, interactively or with --amount",
		Long: `Opens the transaction form. With --amount the form is filled and
submitted without a terminal UI, applying the same validation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := openRepo(opts.repoDir, flags)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := cmd.Context()
			bal, err := r.ledger.Balance(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("amount") {
				return runScriptedTxn(ctx, cmd.OutOrStdout(), r, bal, opts)
			}
			return runInteractiveTxn(ctx, r, bal)
		},
	}

	cmd.Flags().StringVar(&opts.repoDir, "repo", ".", "repository directory")
	cmd.Flags().StringVar(&opts.mode, "mode", string(txform.ModeDeposit), "deposit or withdraw (with --amount)")
	cmd.Flags().StringVar(&opts.amount, "amount", "", "amount to submit without the interactive form")
	cmd.Flags().StringVar(&opts.note, "note", "", "note stored with the transaction (with --amount)")

	return cmd
}

func runInteractiveTxn(ctx context.Context, r *repo, balance decimal.Decimal) error {
	model := tui.NewAppModel(ctx, r.ledger, r.cfg.Account.Name, balance, tui.FormOptions{
		Localizer:  r.localizer,
		ShakeScale: r.cfg.Form.ShakeScale,
		Currency:   r.cfg.Account.Currency,
		Logger:     r.logger,
	})
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running form: %w", err)
	}
	return nil
}

// runScriptedTxn drives the form headlessly. A rejected withdrawal plays its
// pulse on a manual scheduler, advanced through the whole schedule at once,
// so the widget settles at the neutral offset before the command exits.
func runScriptedTxn(ctx context.Context, out io.Writer, r *repo, balance decimal.Decimal, opts txnOptions) error {
	mode, err := txform.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	var intent *txform.Intent
	sched := txform.NewManualScheduler()
	w := txform.NewWidget(balance,
		txform.WithScheduler(sched),
		txform.WithLocalizer(r.localizer),
		txform.WithLogger(r.logger),
		txform.WithIntentHandler(func(in txform.Intent) { intent = &in }),
	)
	w.SelectMode(mode)
	w.ChangeAmount(opts.amount)

	if !w.CanSubmit() {
		return fmt.Errorf("%s: %w", r.localizer.AmountTooSmall(), txform.ErrSubmitDisabled)
	}
	res := w.AttemptSubmit()
	sched.Advance(w.Schedule().Total())
	if res.Reason != nil {
		return fmt.Errorf("%s (balance %s %s): %w",
			res.State.Validation.Message, balance.StringFixed(2), r.cfg.Account.Currency, res.Reason)
	}

	t, err := r.ledger.Record(ctx, *intent, opts.note)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Recorded %s: %s %s %s, balance %s %s\n",
		t.ID, t.Mode, t.Amount.StringFixed(2), r.cfg.Account.Currency,
		t.Balance.StringFixed(2), r.cfg.Account.Currency)
	return nil
}
