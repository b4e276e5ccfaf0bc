package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Dialect инкапсулирует различия SQL между PostgreSQL и SQLite.
type Dialect interface {
	// Name — имя диалекта для логов и метрик.
	Name() string
	// Placeholder возвращает обозначение n-го параметра (нумерация с 1).
	Placeholder(n int) string
	// ContainsFold строит регистронезависимое сравнение column с шаблоном LIKE.
	ContainsFold(column, placeholder string) string
	// TimeExpr приводит столбец или параметр даты к сравнимому виду.
	TimeExpr(expr string) string
	// IsSchemaMismatch сообщает, вызвана ли ошибка отсутствующим столбцом или таблицей.
	IsSchemaMismatch(err error) bool
}

// Коды SQLSTATE PostgreSQL.
const (
	pgUndefinedColumn = "42703"
	pgUndefinedTable  = "42P01"
)

// PostgresDialect — диалект PostgreSQL.
type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (PostgresDialect) ContainsFold(column, placeholder string) string {
	return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, column, placeholder)
}

func (PostgresDialect) TimeExpr(expr string) string { return expr }

func (PostgresDialect) IsSchemaMismatch(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedColumn || pgErr.Code == pgUndefinedTable
	}
	return false
}

// SQLiteDialect — диалект встроенного хранилища SQLite.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) Placeholder(int) string { return "?" }

func (SQLiteDialect) ContainsFold(column, placeholder string) string {
	return fmt.Sprintf(`LOWER(%s) LIKE LOWER(%s) ESCAPE '\'`, column, placeholder)
}

// TimeExpr переводит дату в юлианский день: текстовые форматы SQLite
// ('2024-03-16 00:00:00', с 'T', с зоной) сравниваются как моменты времени.
func (SQLiteDialect) TimeExpr(expr string) string { return "julianday(" + expr + ")" }

func (SQLiteDialect) IsSchemaMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such column") || strings.Contains(msg, "no such table")
}

// classify оборачивает ошибку несоответствия схемы в ErrSchemaMismatch.
func classify(d Dialect, err error) error {
	if d.IsSchemaMismatch(err) {
		return fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	return err
}

// likeEscaper экранирует спецсимволы шаблона LIKE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит шаблон «подстрока» для LIKE / ILIKE.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
