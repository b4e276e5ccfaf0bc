package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// TransactionRepository — read-only доступ к журналу SWIFT-транзакций.
type TransactionRepository interface {
	// List возвращает окно журнала и общее количество совпадений.
	// Оба запроса выполняются в одном согласованном снимке.
	List(ctx context.Context, f model.TransactionFilter, page model.PageRequest) ([]model.Record, int64, error)
	// GetByID возвращает транзакцию по id или ErrNotFound.
	GetByID(ctx context.Context, id int64) (model.Record, error)
	// Stats возвращает агрегаты по транзакциям с init_time >= since.
	Stats(ctx context.Context, since time.Time) (*model.Stats, error)
}

// transactionRepo — реализация TransactionRepository поверх Gateway.
type transactionRepo struct {
	gw Gateway
}

// NewTransactionRepository создаёт репозиторий журнала транзакций.
func NewTransactionRepository(gw Gateway) TransactionRepository {
	return &transactionRepo{gw: gw}
}

// List выполняет подсчёт и выборку окна в одном снимке данных.
func (r *transactionRepo) List(ctx context.Context, f model.TransactionFilter, page model.PageRequest) ([]model.Record, int64, error) {
	d := r.gw.Dialect()
	countQuery, countArgs := buildCountQuery(f, d)
	listQuery, listArgs := buildListQuery(f, page, d)

	var (
		total   int64
		records []model.Record
	)
	err := r.gw.ReadConsistent(ctx, func(ex Executor) error {
		rs, err := ex.Execute(ctx, countQuery, countArgs...)
		if err != nil {
			return fmt.Errorf("ошибка подсчёта транзакций: %w", err)
		}
		if rs.Len() > 0 {
			if total, err = asInt64(rs.Rows[0][0]); err != nil {
				return fmt.Errorf("ошибка чтения количества: %w", err)
			}
		}

		rs, err = ex.Execute(ctx, listQuery, listArgs...)
		if err != nil {
			return fmt.Errorf("ошибка выборки транзакций: %w", err)
		}
		records, err = toRecords(rs)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// GetByID возвращает транзакцию с полным набором связанных полей.
func (r *transactionRepo) GetByID(ctx context.Context, id int64) (model.Record, error) {
	query, args := buildGetQuery(id, r.gw.Dialect())

	rs, err := r.gw.Execute(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакции: %w", err)
	}
	if rs.Len() == 0 {
		return nil, ErrNotFound
	}

	records, err := toRecords(&ResultSet{Columns: rs.Columns, Rows: rs.Rows[:1]})
	if err != nil {
		return nil, err
	}
	return records[0], nil
}
