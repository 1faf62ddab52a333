package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOutboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Inspect and drive the posting outbox",
	}

	cmd.AddCommand(newOutboxDrainCmd())
	return cmd
}

func newOutboxDrainCmd() *cobra.Command {
	var maxBatches int

	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Process due posting intents until none are left",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			total := 0
			for i := 0; i < maxBatches; i++ {
				n, err := svc.Outbox.ProcessDue(cmd.Context())
				if err != nil {
					return err
				}
				if n == 0 {
					break
				}
				total += n
			}
			fmt.Fprintf(cmd.OutOrStdout(), "processed %d posting intents\n", total)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxBatches, "max-batches", 100, "stop after this many batches")
	return cmd
}
