package cmd

import (
	"log/slog"

	"github.com/KANAL1234/business-erp-system-sub002/internal/platform/config"
	"github.com/KANAL1234/business-erp-system-sub002/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.MigrationsPath
			}
			return database.RunMigrations(cfg.DatabaseURL, path, slog.Default())
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "migrations source URL (default MIGRATIONS_PATH)")
	return cmd
}
