package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// MemoryDSN — общая in-memory база SQLite.
const MemoryDSN = "file::memory:?cache=shared"

// SQLiteDSN возвращает DSN для файла path; пустой path — база в памяти.
func SQLiteDSN(path string) string {
	if path == "" {
		return MemoryDSN
	}
	// WAL и ожидание блокировок вместо немедленной ошибки
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
}

// SQLiteStore — встроенное хранилище журнала на SQLite через gorm.
type SQLiteStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// OpenSQLite открывает хранилище по DSN.
func OpenSQLite(dsn string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := gorm.Open(
		sqlite.Open(dsn),
		&gorm.Config{
			Logger:                 gormlogger.Discard,
			SkipDefaultTransaction: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия SQLite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		if c, ok := db.ConnPool.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, fmt.Errorf("ошибка получения соединения SQLite: %w", err)
	}
	// In-memory база живёт, пока открыто хотя бы одно соединение
	if strings.Contains(dsn, "memory") {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := instrument(db, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("Встроенное хранилище SQLite открыто", slog.String("dsn", dsn))
	return &SQLiteStore{db: db, logger: logger}, nil
}

// instrument подключает трассировку gorm; при ошибке соединение закрывается.
func instrument(db *gorm.DB, sqlDB *sql.DB) error {
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("ошибка подключения трассировки gorm: %w", err)
	}
	return nil
}

// DB возвращает gorm-соединение.
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// Ping проверяет доступность хранилища.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close закрывает соединения.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate создаёт таблицы и наполняет справочники.
func (s *SQLiteStore) AutoMigrate() error {
	for _, m := range MigrateModels {
		s.logger.Debug("Создание таблицы", slog.String("model", fmt.Sprintf("%T", m)))
		if err := s.db.AutoMigrate(m); err != nil {
			return fmt.Errorf("ошибка создания таблицы: %w", err)
		}
	}
	if err := s.seedReference(); err != nil {
		return err
	}
	s.logger.Info("Схема SQLite применена")
	return nil
}

// seedReference добавляет справочные записи, не затирая существующие.
func (s *SQLiteStore) seedReference() error {
	for _, rows := range []any{&seedErrors, &seedFormTypes, &seedQueryStates} {
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error; err != nil {
			return fmt.Errorf("ошибка наполнения справочников: %w", err)
		}
	}
	return nil
}
