package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresDialect_IsSchemaMismatch(t *testing.T) {
	d := PostgresDialect{}
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"undefined column", &pgconn.PgError{Code: "42703"}, true},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, true},
		{"обёрнутая ошибка", fmt.Errorf("query: %w", &pgconn.PgError{Code: "42703"}), true},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"не PgError", errors.New("connection refused"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsSchemaMismatch(tt.err); got != tt.want {
				t.Errorf("IsSchemaMismatch() = %v, ожидается %v", got, tt.want)
			}
		})
	}
}

func TestSQLiteDialect_IsSchemaMismatch(t *testing.T) {
	d := SQLiteDialect{}
	if !d.IsSchemaMismatch(errors.New("SQL logic error: no such column: state (1)")) {
		t.Error("no such column должна считаться несоответствием схемы")
	}
	if !d.IsSchemaMismatch(errors.New("SQL logic error: no such table: swift_query_states (1)")) {
		t.Error("no such table должна считаться несоответствием схемы")
	}
	if d.IsSchemaMismatch(errors.New("database is locked")) {
		t.Error("database is locked не является несоответствием схемы")
	}
	if d.IsSchemaMismatch(nil) {
		t.Error("nil не является несоответствием схемы")
	}
}

func TestClassify(t *testing.T) {
	src := &pgconn.PgError{Code: "42703", Message: `column "state" does not exist`}
	err := classify(PostgresDialect{}, src)

	if !errors.Is(err, ErrSchemaMismatch) {
		t.Error("ожидалась ErrSchemaMismatch")
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Error("исходная ошибка должна сохраняться в цепочке")
	}

	other := errors.New("timeout")
	if classify(PostgresDialect{}, other) != other {
		t.Error("прочие ошибки не должны оборачиваться")
	}
}

func TestTimeExpr(t *testing.T) {
	if got := (PostgresDialect{}).TimeExpr("t.init_time"); got != "t.init_time" {
		t.Errorf("PostgreSQL TimeExpr() = %q", got)
	}
	if got := (SQLiteDialect{}).TimeExpr("?"); got != "julianday(?)" {
		t.Errorf("SQLite TimeExpr() = %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	if got := (PostgresDialect{}).Placeholder(3); got != "$3" {
		t.Errorf("Placeholder(3) = %q, ожидался $3", got)
	}
	if got := (SQLiteDialect{}).Placeholder(3); got != "?" {
		t.Errorf("Placeholder(3) = %q, ожидался ?", got)
	}
}

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"abc":  "%abc%",
		"50%":  `%50\%%`,
		"a_b":  `%a\_b%`,
		`c:\x`: `%c:\\x%`,
		"":     "%%",
	}
	for in, want := range tests {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, ожидался %q", in, got, want)
		}
	}
}
