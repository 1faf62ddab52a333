package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRecomputeBalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute-balances",
		Short: "Rewrite every account balance from posted journal lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := svc.Balance.Recompute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recomputed %d account balances\n", n)
			return nil
		},
	}
}

func newTrialBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance of posted entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			tb, err := svc.Balance.TrialBalance(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "CODE\tNAME\tDEBIT\tCREDIT\tBALANCE\t")
			for _, row := range tb.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
					row.AccountCode, row.AccountName,
					row.Debit.StringFixed(2), row.Credit.StringFixed(2), row.Balance.StringFixed(2))
			}
			fmt.Fprintf(w, "\tTOTAL\t%s\t%s\t\t\n", tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2))
			if err := w.Flush(); err != nil {
				return err
			}

			if !tb.Balanced {
				return fmt.Errorf("trial balance is out of balance: debits %s, credits %s",
					tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2))
			}
			return nil
		},
	}
}
