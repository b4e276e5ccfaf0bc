// Пакет filter — нормализация параметров запроса в типизированный фильтр.
// Нормализация никогда не завершается ошибкой: некорректные значения
// считаются отсутствующими или заменяются значениями по умолчанию.
package filter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// Значения пагинации по умолчанию.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Имена параметров запроса.
const (
	ParamDateFrom   = "dateFrom"
	ParamDateTo     = "dateTo"
	ParamStatus     = "status"
	ParamType       = "type"
	ParamSearch     = "search"
	ParamErrorsOnly = "errorsOnly"
	ParamPage       = "page"
	ParamLimit      = "limit"
)

// Params — источник сырых параметров. Реализуется url.Values.
type Params interface {
	Get(key string) string
}

// Map — Params поверх обычной map (CLI, тесты).
type Map map[string]string

// Get возвращает значение ключа или пустую строку.
func (m Map) Get(key string) string {
	return m[key]
}

// Normalize строит TransactionFilter из сырых параметров.
func Normalize(p Params) model.TransactionFilter {
	var f model.TransactionFilter

	if v, ok := value(p, ParamDateFrom); ok {
		f.DateFrom = parseDay(v)
	}
	if v, ok := value(p, ParamDateTo); ok {
		f.DateTo = parseDay(v)
	}

	if v, ok := value(p, ParamStatus); ok {
		s := &model.StatusFilter{Raw: v}
		if n, err := strconv.Atoi(v); err == nil {
			s.Code = n
			s.Numeric = true
		}
		f.Status = s
	}

	if v, ok := value(p, ParamType); ok {
		f.Type = &v
	}
	if v, ok := value(p, ParamSearch); ok {
		f.Search = &v
	}

	// Только точное совпадение со строкой "true"
	f.ErrorsOnly = p.Get(ParamErrorsOnly) == "true"

	return f
}

// NormalizePage извлекает номер страницы и размер окна.
func NormalizePage(p Params) model.PageRequest {
	return model.PageRequest{
		Page:  positiveInt(p.Get(ParamPage), DefaultPage),
		Limit: positiveInt(p.Get(ParamLimit), DefaultLimit),
	}
}

// IsAbsent сообщает, считается ли сырое значение отсутствующим.
func IsAbsent(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "", "null", "undefined":
		return true
	default:
		return false
	}
}

// value возвращает очищенное значение параметра и признак присутствия.
func value(p Params, key string) (string, bool) {
	raw := p.Get(key)
	if IsAbsent(raw) {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

// parseDay разбирает дату в формате YYYY-MM-DD или RFC 3339
// и возвращает начало соответствующего дня.
func parseDay(s string) *time.Time {
	var t time.Time
	var err error
	if t, err = time.Parse(time.DateOnly, s); err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return nil
		}
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

// positiveInt разбирает положительное целое; иначе возвращает def.
func positiveInt(raw string, def int) int {
	if IsAbsent(raw) {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > math.MaxInt32 {
		return def
	}
	return n
}
