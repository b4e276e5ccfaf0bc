package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// statsQuery — агрегаты одним запросом; пустые суммы приводятся к нулю.
// Параметры: список состояний «в работе», код успеха, условие по времени.
const statsQuery = `SELECT
	COUNT(*) AS total,
	COALESCE(SUM(CASE WHEN t.error IS NOT NULL AND t.error <> 0 THEN 1 ELSE 0 END), 0) AS errors,
	COALESCE(SUM(CASE WHEN t.state IN (%s) THEN 1 ELSE 0 END), 0) AS pending,
	COALESCE(SUM(CASE WHEN t.state = %d THEN 1 ELSE 0 END), 0) AS success
FROM swift_transactions t
WHERE %s`

// Stats считает общее количество, ошибки, транзакции в работе и успешные.
func (r *transactionRepo) Stats(ctx context.Context, since time.Time) (*model.Stats, error) {
	args := newQueryArgs(r.gw.Dialect())
	query := fmt.Sprintf(statsQuery,
		stateList(model.PendingStates), model.StateCompleted, initTimeSince(since, args))

	rs, err := r.gw.Execute(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("ошибка расчёта статистики: %w", err)
	}

	stats := &model.Stats{}
	if rs.Len() == 0 {
		return stats, nil
	}
	for _, f := range []struct {
		col string
		dst *int64
	}{
		{"total", &stats.Total},
		{"errors", &stats.Errors},
		{"pending", &stats.Pending},
		{"success", &stats.Success},
	} {
		v, err := asInt64(rs.Value(0, f.col))
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения %s: %w", f.col, err)
		}
		*f.dst = v
	}
	return stats, nil
}
