package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/platform/config"
	"github.com/KANAL1234/business-erp-system-sub002/internal/repositories/database/pgsql"
	"github.com/KANAL1234/business-erp-system-sub002/pkg/database"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the ERP general ledger",
	Long: `ledgerctl runs maintenance tasks against the ledger database:

  - apply schema migrations
  - recompute stored account balances from posted lines
  - print the trial balance
  - drain the posting outbox once
  - issue document numbers
  - issue API bearer tokens

Configuration is read from the environment (and .env) exactly like the API server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newMigrateCmd(),
		newRecomputeBalancesCmd(),
		newTrialBalanceCmd(),
		newOutboxCmd(),
		newSequenceCmd(),
		newTokenCmd(),
	)
}

// openServices connects to the database and wires the service container.
// The returned func releases the pool.
func openServices(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, nil, err
	}

	roleCodes, err := services.LoadRoleCodes(cfg.AccountRolesFile)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	svc := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), roleCodes, nil)
	return svc, func() { database.ClosePgxPool(pool) }, nil
}
