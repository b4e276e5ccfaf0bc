package service

import (
	"context"
	"time"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// --- Mock репозиториев ---

type mockTransactionRepo struct {
	listFn    func(ctx context.Context, f model.TransactionFilter, page model.PageRequest) ([]model.Record, int64, error)
	getByIDFn func(ctx context.Context, id int64) (model.Record, error)
	statsFn   func(ctx context.Context, since time.Time) (*model.Stats, error)
}

func (m *mockTransactionRepo) List(ctx context.Context, f model.TransactionFilter, page model.PageRequest) ([]model.Record, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f, page)
	}
	return nil, 0, nil
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id int64) (model.Record, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTransactionRepo) Stats(ctx context.Context, since time.Time) (*model.Stats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, since)
	}
	return &model.Stats{}, nil
}

type mockReferenceRepo struct {
	errorsFn             func(ctx context.Context) ([]model.ErrorRef, error)
	messageStatusesFn    func(ctx context.Context) ([]string, error)
	formTypesFn          func(ctx context.Context, activeOnly bool) ([]model.FormType, error)
	formTypesReducedFn   func(ctx context.Context) ([]model.FormType, error)
	queryStatesFn        func(ctx context.Context) ([]model.QueryState, error)
	queryStatesReducedFn func(ctx context.Context) ([]model.QueryState, error)
}

func (m *mockReferenceRepo) Errors(ctx context.Context) ([]model.ErrorRef, error) {
	if m.errorsFn != nil {
		return m.errorsFn(ctx)
	}
	return nil, nil
}

func (m *mockReferenceRepo) MessageStatuses(ctx context.Context) ([]string, error) {
	if m.messageStatusesFn != nil {
		return m.messageStatusesFn(ctx)
	}
	return nil, nil
}

func (m *mockReferenceRepo) FormTypes(ctx context.Context, activeOnly bool) ([]model.FormType, error) {
	if m.formTypesFn != nil {
		return m.formTypesFn(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockReferenceRepo) FormTypesReduced(ctx context.Context) ([]model.FormType, error) {
	if m.formTypesReducedFn != nil {
		return m.formTypesReducedFn(ctx)
	}
	return nil, nil
}

func (m *mockReferenceRepo) QueryStates(ctx context.Context) ([]model.QueryState, error) {
	if m.queryStatesFn != nil {
		return m.queryStatesFn(ctx)
	}
	return nil, nil
}

func (m *mockReferenceRepo) QueryStatesReduced(ctx context.Context) ([]model.QueryState, error) {
	if m.queryStatesReducedFn != nil {
		return m.queryStatesReducedFn(ctx)
	}
	return nil, nil
}

type mockExportRepo struct {
	countFn func(ctx context.Context, f model.TransactionFilter) (int64, error)
	rowsFn  func(ctx context.Context, f model.TransactionFilter, limit int) ([]model.ExportRow, error)
}

func (m *mockExportRepo) Count(ctx context.Context, f model.TransactionFilter) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, f)
	}
	return 0, nil
}

func (m *mockExportRepo) Rows(ctx context.Context, f model.TransactionFilter, limit int) ([]model.ExportRow, error) {
	if m.rowsFn != nil {
		return m.rowsFn(ctx, f, limit)
	}
	return nil, nil
}
