package repository

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// TimestampLayout — формат дат в JSON-ответах (ISO-8601, UTC, миллисекунды).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// decimalColumns — столбцы с денежными суммами.
var decimalColumns = map[string]bool{"amount": true}

// timeColumns — столбцы дат; SQLite может вернуть их текстом.
var timeColumns = map[string]bool{"init_time": true, "send_time": true, "response_time": true}

// toRecords превращает результат запроса в записи с JSON-совместимыми значениями.
func toRecords(rs *ResultSet) ([]model.Record, error) {
	records := make([]model.Record, 0, rs.Len())
	for _, row := range rs.Rows {
		rec := make(model.Record, len(rs.Columns))
		for i, col := range rs.Columns {
			v, err := materialize(row[i])
			if err != nil {
				return nil, fmt.Errorf("столбец %s: %w", col, err)
			}
			if s, ok := v.(string); ok {
				switch {
				case decimalColumns[col]:
					if d, err := decimal.NewFromString(s); err == nil {
						v = d
					}
				case timeColumns[col]:
					if t := asTime(s); t != nil {
						v = t.Format(TimestampLayout)
					}
				}
			}
			rec[col] = v
		}
		records = append(records, rec)
	}
	return records, nil
}

// materialize приводит значение драйвера к JSON-совместимому виду.
// Потоковые значения читаются полностью.
//
//nolint:cyclop // перечисление типов драйверов
func materialize(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return string(x), nil
	case io.Reader:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения потока: %w", err)
		}
		return string(b), nil
	case time.Time:
		return x.UTC().Format(TimestampLayout), nil
	case pgtype.Numeric:
		return numericValue(x)
	case decimal.Decimal:
		return x, nil
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return x, nil
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, fmt.Errorf("ошибка сериализации JSON: %w", err)
		}
		return string(b), nil
	default:
		return fmt.Sprint(x), nil
	}
}

// numericValue конвертирует NUMERIC PostgreSQL в decimal.
func numericValue(n pgtype.Numeric) (any, error) {
	switch {
	case !n.Valid:
		return nil, nil
	case n.NaN:
		return "NaN", nil
	case n.InfinityModifier != pgtype.Finite:
		return n.InfinityModifier.String(), nil
	}
	i := n.Int
	if i == nil {
		i = new(big.Int)
	}
	return decimal.NewFromBigInt(i, n.Exp), nil
}

// asInt64 читает целое значение, независимо от представления драйвера.
func asInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case float64:
		return int64(x), nil
	case []byte:
		return strconv.ParseInt(string(x), 10, 64)
	case string:
		return strconv.ParseInt(x, 10, 64)
	case pgtype.Numeric:
		i8, err := x.Int64Value()
		if err != nil {
			return 0, err
		}
		return i8.Int64, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("неожиданный тип целого: %T", v)
	}
}

// asNullInt64 — как asInt64, но NULL остаётся nil.
func asNullInt64(v any) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	n, err := asInt64(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// asString читает текстовое значение; NULL — пустая строка.
func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// sqliteTimeLayouts — форматы, в которых SQLite может вернуть дату текстом.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	time.DateTime,
	time.DateOnly,
}

// asTime читает значение даты; NULL и нераспознанные строки — nil.
func asTime(v any) *time.Time {
	switch x := v.(type) {
	case time.Time:
		t := x.UTC()
		return &t
	case []byte:
		return asTime(string(x))
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range sqliteTimeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				t = t.UTC()
				return &t
			}
		}
	}
	return nil
}
