// Пакет repository — слой доступа к журналу SWIFT-транзакций и справочникам.
// Сервис — read-only потребитель таблиц, которыми владеет система обработки платежей.
// Все запросы — чистый SQL; диалект (PostgreSQL / SQLite) определяется шлюзом.
package repository

import (
	"context"
	"errors"
	"strings"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrSchemaMismatch — запрос ссылается на столбец или таблицу,
	// отсутствующие в текущей версии схемы.
	ErrSchemaMismatch = errors.New("несоответствие схемы БД")
)

// ResultSet — результат запроса: имена столбцов и строки значений.
// Имена столбцов приводятся к нижнему регистру.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Len возвращает количество строк.
func (rs *ResultSet) Len() int {
	return len(rs.Rows)
}

// Value возвращает значение столбца name в строке row (nil, если столбца нет).
func (rs *ResultSet) Value(row int, name string) any {
	for i, c := range rs.Columns {
		if c == name {
			return rs.Rows[row][i]
		}
	}
	return nil
}

// Executor выполняет запрос и полностью материализует результат.
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) (*ResultSet, error)
}

// Gateway — шлюз к источнику данных.
// Соединение берётся на время одного вызова и всегда возвращается в пул.
type Gateway interface {
	Executor
	// ReadConsistent выполняет fn внутри одного согласованного read-only снимка.
	ReadConsistent(ctx context.Context, fn func(ex Executor) error) error
	// Dialect возвращает SQL-диалект источника.
	Dialect() Dialect
}

// lowerColumns приводит имена столбцов к нижнему регистру.
func lowerColumns(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
