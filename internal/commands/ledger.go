package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// ErrLedgerInvalid is returned by `teller check` when violations are found.
var ErrLedgerInvalid = errors.New("ledger has violations")

func newBalanceCommand(flags *globalFlags) *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Print the current ledger balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := openRepo(repoDir, flags)
			if err != nil {
				return err
			}
			defer r.Close()

			bal, err := r.ledger.Balance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", r.cfg.Account.Name, bal.StringFixed(2), r.cfg.Account.Currency)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")
	return cmd
}

func newHistoryCommand(flags *globalFlags) *cobra.Command {
	var repoDir string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := openRepo(repoDir, flags)
			if err != nil {
				return err
			}
			defer r.Close()

			txns, err := r.ledger.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions yet.")
				return nil
			}

			rows := make([][]string, len(txns))
			for i, t := range txns {
				rows[i] = []string{
					t.ID,
					t.Date.Format("2006-01-02"),
					string(t.Mode),
					t.Signed().StringFixed(2),
					t.Balance.StringFixed(2),
					t.Note,
				}
			}
			tbl := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "DATE", "MODE", "AMOUNT", "BALANCE", "NOTE").
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of transactions to show (0 for all)")
	return cmd
}

func newCheckCommand(flags *globalFlags) *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate ledger IDs, amounts, and running balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := openRepo(repoDir, flags)
			if err != nil {
				return err
			}
			defer r.Close()

			verrs, err := r.ledger.Check(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(verrs) == 0 {
				fmt.Fprintln(out, "Ledger OK.")
				return nil
			}
			for _, ve := range verrs {
				fmt.Fprintln(out, ve.Error())
			}
			return fmt.Errorf("%w: %s found", ErrLedgerInvalid, plural(len(verrs), "violation"))
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")
	return cmd
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
