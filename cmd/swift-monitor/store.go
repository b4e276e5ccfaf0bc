package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bigkaa/swift-monitor/internal/config"
	"github.com/bigkaa/swift-monitor/internal/database"
	"github.com/bigkaa/swift-monitor/internal/repository"
)

// dataStore — открытый источник журнала транзакций.
type dataStore struct {
	gateway repository.Gateway
	pinger  database.Pinger
	// pool задан только для PostgreSQL
	pool  *pgxpool.Pool
	close func()
}

// openStore открывает источник по SM_DB_DRIVER.
// migrate — применить схему и справочники перед подключением.
// База SQLite в памяти всегда создаётся со схемой, иначе она пуста.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (*dataStore, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		store, err := database.OpenSQLite(database.SQLiteDSN(cfg.SQLitePath), logger)
		if err != nil {
			return nil, err
		}
		if migrate || cfg.SQLitePath == "" {
			if err := store.AutoMigrate(); err != nil {
				_ = store.Close()
				return nil, err
			}
		}
		return &dataStore{
			gateway: repository.NewGormGateway(store.DB()),
			pinger:  store,
			close:   func() { _ = store.Close() },
		}, nil

	case config.DriverPostgres:
		if migrate {
			if err := database.Migrate(cfg, logger); err != nil {
				return nil, err
			}
		}
		pool, err := database.Connect(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return &dataStore{
			gateway: repository.NewPostgresGateway(pool),
			pinger:  pool,
			pool:    pool,
			close:   pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("неизвестный драйвер %q", cfg.DBDriver)
	}
}
