package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bigkaa/swift-monitor/internal/api/contract"
	"github.com/bigkaa/swift-monitor/internal/api/handlers"
	"github.com/bigkaa/swift-monitor/internal/api/middleware"
	"github.com/bigkaa/swift-monitor/internal/config"
	"github.com/bigkaa/swift-monitor/internal/database"
	"github.com/bigkaa/swift-monitor/internal/repository"
	"github.com/bigkaa/swift-monitor/internal/server"
	"github.com/bigkaa/swift-monitor/internal/service"
	"github.com/bigkaa/swift-monitor/internal/telemetry"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запуск HTTP API",
		RunE:  serveRun,
	}
}

func serveRun(cmd *cobra.Command, _ []string) error {
	cfg, err := configFromCommand(cmd)
	if err != nil {
		return err
	}
	logger := commonRun(cfg)
	logger.Info("SWIFT Monitor запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("db_driver", cfg.DBDriver),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Контракт API проверяется до открытия порта
	if _, err := contract.Load(ctx); err != nil {
		return err
	}

	// 2. Трассировка
	if cfg.TracingEnabled {
		shutdown, err := telemetry.Setup(ctx, config.Version, cfg.TracingStdout)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("Ошибка завершения трассировки", slog.String("error", err.Error()))
			}
		}()
	}

	// 3. Источник данных
	store, err := openStore(ctx, cfg, logger, cfg.DBMigrate)
	if err != nil {
		return err
	}
	defer store.close()

	// 4. Репозитории и сервисы
	txSvc := service.NewTransactionService(repository.NewTransactionRepository(store.gateway), logger)
	refSvc := service.NewReferenceService(
		repository.NewReferenceRepository(store.gateway),
		service.NewReferenceCache(cfg.ReferenceCacheSize, cfg.ReferenceCacheTTL),
		logger,
	)
	exportSvc := service.NewExportService(repository.NewExportRepository(store.gateway), logger)

	// 5. HTTP
	healthHandler := handlers.NewHealthHandler(database.NewReadinessChecker(store.pinger, cfg.DBDriver))
	apiHandler := handlers.NewAPIHandler(healthHandler, txSvc, refSvc, exportSvc, logger)
	srv := server.New(cfg, logger, apiHandler,
		middleware.MetricsMiddleware(cfg.APIPrefix),
		middleware.RequestLogger(logger),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	// 6. Мониторинг зависимостей (только PostgreSQL)
	if cfg.DephealthEnabled && store.pool != nil {
		pgDB := stdlib.OpenDBFromPool(store.pool)
		defer pgDB.Close()

		dh, err := service.NewDephealthService(pgDB, service.DephealthOptions{
			ServiceID:     programName,
			Group:         cfg.DephealthGroup,
			PgConnURL:     cfg.DatabaseURL(),
			CheckInterval: cfg.DephealthCheckInterval,
			IsEntry:       cfg.DephealthIsEntry,
		}, logger)
		if err != nil {
			logger.Warn("Ошибка инициализации topologymetrics", slog.String("error", err.Error()))
		} else {
			g.Go(func() error {
				if err := dh.Start(gctx); err != nil {
					return fmt.Errorf("запуск topologymetrics: %w", err)
				}
				<-gctx.Done()
				dh.Stop()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		logger.Error("Сервер завершился с ошибкой", slog.String("error", err.Error()))
		return err
	}
	logger.Info("SWIFT Monitor остановлен")
	return nil
}
