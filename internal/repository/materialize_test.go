package repository

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestMaterialize(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 45, 123_000_000, time.FixedZone("MSK", 3*3600))

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bytes", []byte("<xml/>"), "<xml/>"},
		{"reader", strings.NewReader(`{"a":1}`), `{"a":1}`},
		{"time в UTC", ts, "2024-03-15T07:30:45.123Z"},
		{"int64", int64(7), int64(7)},
		{"string", "x", "x"},
		{"bool", true, true},
		{"map", map[string]any{"k": "v"}, `{"k":"v"}`},
		{"неизвестный тип", struct{ A int }{1}, "{1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := materialize(tt.in)
			if err != nil {
				t.Fatalf("materialize() вернул ошибку: %v", err)
			}
			if got != tt.want {
				t.Errorf("materialize() = %#v, ожидается %#v", got, tt.want)
			}
		})
	}
}

func TestMaterialize_Numeric(t *testing.T) {
	n := pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true}
	got, err := materialize(n)
	if err != nil {
		t.Fatalf("materialize() вернул ошибку: %v", err)
	}
	d, ok := got.(decimal.Decimal)
	if !ok {
		t.Fatalf("materialize() = %T, ожидался decimal.Decimal", got)
	}
	if !d.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("materialize() = %s, ожидалось 123.45", d)
	}

	if got, _ := materialize(pgtype.Numeric{}); got != nil {
		t.Errorf("NULL NUMERIC = %v, ожидался nil", got)
	}
}

func TestToRecords(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"id", "amount", "init_time", "xml_data"},
		Rows: [][]any{
			{int64(1), "100.50", "2024-03-15 07:30:45+00:00", []byte("<a/>")},
		},
	}
	records, err := toRecords(rs)
	if err != nil {
		t.Fatalf("toRecords() вернул ошибку: %v", err)
	}
	rec := records[0]
	if rec["id"] != int64(1) {
		t.Errorf("id = %#v", rec["id"])
	}
	if d, ok := rec["amount"].(decimal.Decimal); !ok || d.String() != "100.5" {
		t.Errorf("amount = %#v, ожидался decimal 100.5", rec["amount"])
	}
	if rec["init_time"] != "2024-03-15T07:30:45.000Z" {
		t.Errorf("init_time = %v", rec["init_time"])
	}
	if rec["xml_data"] != "<a/>" {
		t.Errorf("xml_data = %v", rec["xml_data"])
	}
}

func TestAsInt64(t *testing.T) {
	for _, v := range []any{int64(5), int32(5), 5, float64(5), "5", []byte("5")} {
		got, err := asInt64(v)
		if err != nil || got != 5 {
			t.Errorf("asInt64(%#v) = %d, %v", v, got, err)
		}
	}
	if _, err := asInt64(struct{}{}); err == nil {
		t.Error("asInt64(struct{}) должен вернуть ошибку")
	}
}

func TestAsTime(t *testing.T) {
	want := time.Date(2024, 3, 15, 7, 30, 45, 0, time.UTC)
	for _, v := range []any{
		want,
		"2024-03-15 07:30:45+00:00",
		"2024-03-15 10:30:45+03:00",
		"2024-03-15T07:30:45Z",
		"2024-03-15 07:30:45",
	} {
		got := asTime(v)
		if got == nil || !got.Equal(want) {
			t.Errorf("asTime(%#v) = %v, ожидалось %v", v, got, want)
		}
	}
	if asTime(nil) != nil || asTime("вчера") != nil {
		t.Error("asTime для NULL и мусора должен вернуть nil")
	}
}
