package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Conn, так и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgGateway — шлюз к PostgreSQL через пул pgx.
type pgGateway struct {
	pool    *pgxpool.Pool
	dialect Dialect
}

// NewPostgresGateway создаёт шлюз поверх пула соединений PostgreSQL.
func NewPostgresGateway(pool *pgxpool.Pool) Gateway {
	return &pgGateway{pool: pool, dialect: PostgresDialect{}}
}

func (g *pgGateway) Dialect() Dialect { return g.dialect }

// Execute берёт соединение из пула на время одного запроса.
func (g *pgGateway) Execute(ctx context.Context, query string, args ...any) (*ResultSet, error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения соединения: %w", err)
	}
	defer conn.Release()

	return pgExecute(ctx, conn, g.dialect, query, args...)
}

// ReadConsistent выполняет fn в транзакции REPEATABLE READ READ ONLY:
// все запросы видят один снимок данных.
func (g *pgGateway) ReadConsistent(ctx context.Context, fn func(ex Executor) error) error {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения соединения: %w", err)
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgExecutor{db: tx, dialect: g.dialect}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return nil
}

// pgExecutor выполняет запросы внутри открытой транзакции.
type pgExecutor struct {
	db      DBTX
	dialect Dialect
}

func (e *pgExecutor) Execute(ctx context.Context, query string, args ...any) (*ResultSet, error) {
	return pgExecute(ctx, e.db, e.dialect, query, args...)
}

// pgExecute выполняет запрос и читает все строки до закрытия курсора.
func pgExecute(ctx context.Context, db DBTX, d Dialect, query string, args ...any) (*ResultSet, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(d, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	rs := &ResultSet{Columns: lowerColumns(names)}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки: %w", err)
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(d, err)
	}
	return rs, nil
}
