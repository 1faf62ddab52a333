package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSequenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Manage document number series",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "next <series>",
			Short: "Issue the next number of a series (JE, VB, ADJ, FUEL, POS, GRN)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, closeFn, err := openServices(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()

				number, err := svc.Sequence.Next(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), number)
				return nil
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Lift sequential counters past numbers already stored",
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, closeFn, err := openServices(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()

				return svc.Sequence.SeedFromExisting(cmd.Context())
			},
		},
	)
	return cmd
}
