// main.go — точка входа SWIFT Monitor.
// Команды: serve (по умолчанию), migrate, export, version.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/bigkaa/swift-monitor/internal/config"
)

const programName = "swift-monitor"

var configFile string

// commonRun настраивает логгер и GOMAXPROCS под лимиты контейнера.
func commonRun(cfg *config.Config) *slog.Logger {
	logger := config.SetupLogger(cfg)

	_, err := maxprocs.Set(maxprocs.Logger(func(format string, v ...any) {
		logger.Debug(fmt.Sprintf(format, v...), slog.String("component", "maxprocs"))
	}))
	if err != nil {
		logger.Warn("Не удалось настроить GOMAXPROCS", slog.String("error", err.Error()))
	}
	return logger
}

// configFromCommand возвращает конфигурацию, загруженную в PersistentPreRunE.
func configFromCommand(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация не загружена")
	}
	return cfg, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Мониторинг журнала SWIFT/ISO 20022 транзакций",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveRun,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "путь к YAML-файлу конфигурации")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		// .env необязателен; переменные окружения имеют приоритет над ним
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("ошибка чтения .env: %w", err)
		}

		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(exportCommand())
	rootCmd.AddCommand(versionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Версия сборки",
		// Конфигурация для вывода версии не нужна
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", programName, config.Version)
		},
	}
}
