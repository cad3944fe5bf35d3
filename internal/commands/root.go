package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/teller/internal/buildinfo"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	verbose bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "teller",
		Short:   "Deposit to and withdraw from a git-backed ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(
		newInitCommand(),
		newBalanceCommand(flags),
		newTxnCommand(flags),
		newHistoryCommand(flags),
		newCheckCommand(flags),
	)

	return rootCmd
}
