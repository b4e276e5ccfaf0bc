package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
	"github.com/bigkaa/swift-monitor/internal/repository"
)

func newTestTransactionService(repo *mockTransactionRepo) *TransactionService {
	return NewTransactionService(repo, slog.Default())
}

// TestTransactionService_List проверяет сборку страницы и пагинации.
func TestTransactionService_List(t *testing.T) {
	status := &model.StatusFilter{Raw: "9", Code: 9, Numeric: true}
	var gotFilter model.TransactionFilter
	var gotPage model.PageRequest

	repo := &mockTransactionRepo{
		listFn: func(_ context.Context, f model.TransactionFilter, page model.PageRequest) ([]model.Record, int64, error) {
			gotFilter, gotPage = f, page
			return []model.Record{{"id": int64(2)}, {"id": int64(1)}}, 42, nil
		},
	}
	svc := newTestTransactionService(repo)

	page, err := svc.List(context.Background(),
		model.TransactionFilter{Status: status}, model.PageRequest{Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if gotFilter.Status != status {
		t.Error("фильтр не передан в репозиторий")
	}
	if gotPage.Page != 3 || gotPage.Limit != 2 {
		t.Errorf("окно = %+v", gotPage)
	}
	if len(page.Data) != 2 {
		t.Errorf("len(Data) = %d, ожидалось 2", len(page.Data))
	}
	want := model.Pagination{Page: 3, Limit: 2, Total: 42}
	if page.Pagination != want {
		t.Errorf("Pagination = %+v, ожидалось %+v", page.Pagination, want)
	}
}

// TestTransactionService_List_EmptyData проверяет, что пустая страница — пустой массив, не nil.
func TestTransactionService_List_EmptyData(t *testing.T) {
	svc := newTestTransactionService(&mockTransactionRepo{
		listFn: func(context.Context, model.TransactionFilter, model.PageRequest) ([]model.Record, int64, error) {
			return nil, 5, nil
		},
	})

	page, err := svc.List(context.Background(), model.TransactionFilter{}, model.PageRequest{Page: 100, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Data == nil {
		t.Error("Data не должен быть nil")
	}
	if page.Pagination.Total != 5 {
		t.Errorf("Total = %d, ожидалось 5", page.Pagination.Total)
	}
}

// TestTransactionService_List_Error проверяет проброс ошибки источника.
func TestTransactionService_List_Error(t *testing.T) {
	dbErr := errors.New("connection refused")
	svc := newTestTransactionService(&mockTransactionRepo{
		listFn: func(context.Context, model.TransactionFilter, model.PageRequest) ([]model.Record, int64, error) {
			return nil, 0, dbErr
		},
	})

	_, err := svc.List(context.Background(), model.TransactionFilter{}, model.PageRequest{Page: 1, Limit: 10})
	if !errors.Is(err, dbErr) {
		t.Errorf("ожидалась обёрнутая ошибка источника, получено %v", err)
	}
}

// TestTransactionService_Get проверяет получение и маппинг ErrNotFound.
func TestTransactionService_Get(t *testing.T) {
	svc := newTestTransactionService(&mockTransactionRepo{
		getByIDFn: func(_ context.Context, id int64) (model.Record, error) {
			if id == 7 {
				return model.Record{"id": int64(7), "msg_id": "MSG7"}, nil
			}
			return nil, fmt.Errorf("выборка: %w", repository.ErrNotFound)
		},
	})
	ctx := context.Background()

	rec, err := svc.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get(7): %v", err)
	}
	if rec["msg_id"] != "MSG7" {
		t.Errorf("msg_id = %v", rec["msg_id"])
	}

	_, err = svc.Get(ctx, 8)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

// TestTransactionService_Get_Error проверяет, что прочие ошибки не превращаются в 404.
func TestTransactionService_Get_Error(t *testing.T) {
	svc := newTestTransactionService(&mockTransactionRepo{
		getByIDFn: func(context.Context, int64) (model.Record, error) {
			return nil, errors.New("timeout")
		},
	})

	_, err := svc.Get(context.Background(), 1)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ошибка источника, получено %v", err)
	}
}

// TestTransactionService_Stats проверяет окно в 30 суток.
func TestTransactionService_Stats(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	var gotSince time.Time

	svc := newTestTransactionService(&mockTransactionRepo{
		statsFn: func(_ context.Context, since time.Time) (*model.Stats, error) {
			gotSince = since
			return &model.Stats{Total: 10, Errors: 1, Pending: 4, Success: 5}, nil
		},
	})
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC); !gotSince.Equal(want) {
		t.Errorf("since = %v, ожидалось %v", gotSince, want)
	}
	if stats.Total != 10 || stats.Success != 5 {
		t.Errorf("stats = %+v", stats)
	}
}
