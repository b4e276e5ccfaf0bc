package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bigkaa/swift-monitor/internal/config"
	"github.com/bigkaa/swift-monitor/internal/database"
)

// migrateCommand применяет схему и справочники. Журнал транзакций не изменяется.
func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции схемы и справочников",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromCommand(cmd)
			if err != nil {
				return err
			}
			logger := commonRun(cfg)

			switch cfg.DBDriver {
			case config.DriverPostgres:
				return database.Migrate(cfg, logger)
			case config.DriverSQLite:
				if cfg.SQLitePath == "" {
					return fmt.Errorf("SM_SQLITE_PATH: для миграции SQLite нужен файл базы")
				}
				store, err := database.OpenSQLite(database.SQLiteDSN(cfg.SQLitePath), logger)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				if err := store.AutoMigrate(); err != nil {
					return err
				}
				logger.Info("Схема SQLite применена", slog.String("path", cfg.SQLitePath))
				return nil
			default:
				return fmt.Errorf("неизвестный драйвер %q", cfg.DBDriver)
			}
		},
	}
}
