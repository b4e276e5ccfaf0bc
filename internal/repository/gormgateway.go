package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// gormGateway — шлюз к встроенному хранилищу (SQLite через gorm).
// Используется для локального запуска и тестов.
type gormGateway struct {
	db      *gorm.DB
	dialect Dialect
}

// NewGormGateway создаёт шлюз поверх gorm-соединения SQLite.
func NewGormGateway(db *gorm.DB) Gateway {
	return &gormGateway{db: db, dialect: SQLiteDialect{}}
}

func (g *gormGateway) Dialect() Dialect { return g.dialect }

func (g *gormGateway) Execute(ctx context.Context, query string, args ...any) (*ResultSet, error) {
	return gormExecute(g.db.WithContext(ctx), g.dialect, query, args...)
}

// ReadConsistent выполняет fn в одной транзакции SQLite.
func (g *gormGateway) ReadConsistent(ctx context.Context, fn func(ex Executor) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormExecutor{db: tx, dialect: g.dialect})
	})
}

type gormExecutor struct {
	db      *gorm.DB
	dialect Dialect
}

func (e *gormExecutor) Execute(ctx context.Context, query string, args ...any) (*ResultSet, error) {
	return gormExecute(e.db.WithContext(ctx), e.dialect, query, args...)
}

func gormExecute(db *gorm.DB, d Dialect, query string, args ...any) (*ResultSet, error) {
	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, classify(d, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения столбцов: %w", err)
	}

	rs := &ResultSet{Columns: lowerColumns(names)}
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки: %w", err)
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(d, err)
	}
	return rs, nil
}
