package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bigkaa/swift-monitor/internal/api/contract"
	"github.com/bigkaa/swift-monitor/internal/domain/model"
	"github.com/bigkaa/swift-monitor/internal/service"
)

// --- Mock сервисов ---

type mockTransactionService struct {
	listFn  func(ctx context.Context, f model.TransactionFilter, page model.PageRequest) (*model.Page, error)
	getFn   func(ctx context.Context, id int64) (model.Record, error)
	statsFn func(ctx context.Context) (*model.Stats, error)
}

func (m *mockTransactionService) List(ctx context.Context, f model.TransactionFilter, page model.PageRequest) (*model.Page, error) {
	return m.listFn(ctx, f, page)
}

func (m *mockTransactionService) Get(ctx context.Context, id int64) (model.Record, error) {
	return m.getFn(ctx, id)
}

func (m *mockTransactionService) Stats(ctx context.Context) (*model.Stats, error) {
	return m.statsFn(ctx)
}

type mockReferenceService struct {
	errorsFn        func(ctx context.Context) ([]model.ErrorRef, error)
	messageStatesFn func(ctx context.Context) ([]model.MessageState, error)
	formTypesFn     func(ctx context.Context, activeOnly bool) ([]model.FormType, error)
	queryStatesFn   func(ctx context.Context) ([]model.QueryState, error)
}

func (m *mockReferenceService) Errors(ctx context.Context) ([]model.ErrorRef, error) {
	return m.errorsFn(ctx)
}

func (m *mockReferenceService) MessageStates(ctx context.Context) ([]model.MessageState, error) {
	return m.messageStatesFn(ctx)
}

func (m *mockReferenceService) FormTypes(ctx context.Context, activeOnly bool) ([]model.FormType, error) {
	return m.formTypesFn(ctx, activeOnly)
}

func (m *mockReferenceService) QueryStates(ctx context.Context) ([]model.QueryState, error) {
	return m.queryStatesFn(ctx)
}

type mockExportService struct {
	previewFn func(ctx context.Context, f model.TransactionFilter) (model.ExportPreview, error)
	exportFn  func(ctx context.Context, f model.TransactionFilter, format string) (*service.ExportFile, error)
}

func (m *mockExportService) Preview(ctx context.Context, f model.TransactionFilter) (model.ExportPreview, error) {
	return m.previewFn(ctx, f)
}

func (m *mockExportService) Export(ctx context.Context, f model.TransactionFilter, format string) (*service.ExportFile, error) {
	return m.exportFn(ctx, f, format)
}

type mockChecker struct {
	status, message string
}

func (c mockChecker) CheckReady() (string, string) { return c.status, c.message }

// --- Вспомогательные функции ---

func testRouter(tx *mockTransactionService, refs *mockReferenceService, exp *mockExportService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewAPIHandler(NewHealthHandler(mockChecker{status: "ok"}), tx, refs, exp, logger)
	return contract.HandlerWithOptions(h, contract.ChiServerOptions{
		InvalidIDHandler: InvalidTransactionID,
	})
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
}

// --- Тесты ---

func TestListTransactions_NormalizesQuery(t *testing.T) {
	var gotFilter model.TransactionFilter
	var gotPage model.PageRequest
	tx := &mockTransactionService{
		listFn: func(_ context.Context, f model.TransactionFilter, page model.PageRequest) (*model.Page, error) {
			gotFilter, gotPage = f, page
			return &model.Page{
				Data:       []model.Record{{"id": int64(1)}},
				Pagination: model.Pagination{Page: page.Page, Limit: page.Limit, Total: 15},
			}, nil
		},
	}
	h := testRouter(tx, nil, nil)

	rec := doGet(t, h, "/transactions?status=9&page=2&limit=abc&type=null&errorsOnly=true&search=%20MSG%20")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}

	if gotFilter.Status == nil || !gotFilter.Status.Numeric || gotFilter.Status.Code != 9 {
		t.Errorf("Status = %+v", gotFilter.Status)
	}
	if gotFilter.Type != nil {
		t.Errorf("type=null должен считаться отсутствующим, получено %q", *gotFilter.Type)
	}
	if gotFilter.Search == nil || *gotFilter.Search != "MSG" {
		t.Errorf("Search = %v", gotFilter.Search)
	}
	if !gotFilter.ErrorsOnly {
		t.Error("ErrorsOnly должен быть true")
	}
	if gotPage.Page != 2 || gotPage.Limit != 10 {
		t.Errorf("окно = %+v, ожидалось page=2 limit=10", gotPage)
	}

	var body struct {
		Data       []map[string]any `json:"data"`
		Pagination model.Pagination `json:"pagination"`
	}
	decodeBody(t, rec, &body)
	if len(body.Data) != 1 || body.Pagination.Total != 15 || body.Pagination.Page != 2 {
		t.Errorf("ответ = %+v", body)
	}
}

func TestListTransactions_Error(t *testing.T) {
	tx := &mockTransactionService{
		listFn: func(context.Context, model.TransactionFilter, model.PageRequest) (*model.Page, error) {
			return nil, errors.New("выборка журнала: connection refused")
		},
	}
	rec := doGet(t, testRouter(tx, nil, nil), "/transactions")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("статус = %d", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] == "" || !strings.Contains(body["message"], "connection refused") {
		t.Errorf("тело = %v", body)
	}
}

func TestGetTransaction(t *testing.T) {
	tx := &mockTransactionService{
		getFn: func(_ context.Context, id int64) (model.Record, error) {
			if id == 5 {
				return model.Record{"id": int64(5), "msg_id": "MSG5"}, nil
			}
			return nil, service.ErrNotFound
		},
	}
	h := testRouter(tx, nil, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"найдена", "/transactions/5", http.StatusOK},
		{"не найдена", "/transactions/6", http.StatusNotFound},
		{"нечисловой id", "/transactions/abc", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, h, tt.path)
			if rec.Code != tt.wantStatus {
				t.Fatalf("статус = %d, ожидалось %d", rec.Code, tt.wantStatus)
			}
			var body map[string]any
			decodeBody(t, rec, &body)
			if tt.wantStatus == http.StatusNotFound {
				if body["error"] == nil || body["message"] == nil {
					t.Errorf("тело 404 = %v", body)
				}
				return
			}
			if body["msg_id"] != "MSG5" {
				t.Errorf("msg_id = %v", body["msg_id"])
			}
		})
	}
}

func TestGetTransactionStats(t *testing.T) {
	tx := &mockTransactionService{
		statsFn: func(context.Context) (*model.Stats, error) {
			return &model.Stats{Total: 20, Errors: 2, Pending: 3, Success: 15}, nil
		},
	}
	rec := doGet(t, testRouter(tx, nil, nil), "/transactions/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	var stats model.Stats
	decodeBody(t, rec, &stats)
	if stats != (model.Stats{Total: 20, Errors: 2, Pending: 3, Success: 15}) {
		t.Errorf("stats = %+v", stats)
	}
}

func TestReferenceEndpoints(t *testing.T) {
	var activeCalls []bool
	refs := &mockReferenceService{
		errorsFn: func(context.Context) ([]model.ErrorRef, error) {
			return []model.ErrorRef{{Code: 101, Message: "bad"}}, nil
		},
		messageStatesFn: func(context.Context) ([]model.MessageState, error) {
			return []model.MessageState{{Code: "ACSC", Name: "Accepted Settlement Completed", Color: model.ColorSuccess}}, nil
		},
		formTypesFn: func(_ context.Context, activeOnly bool) ([]model.FormType, error) {
			activeCalls = append(activeCalls, activeOnly)
			return []model.FormType{{ID: 1, Name: "pacs.008", State: 1}}, nil
		},
		queryStatesFn: func(context.Context) ([]model.QueryState, error) {
			return []model.QueryState{{ID: 9, Name: "Completed", Color: model.ColorSuccess}}, nil
		},
	}
	h := testRouter(nil, refs, nil)

	for _, path := range []string{
		"/errors", "/transactions/errors", "/transactions/message-states",
		"/transactions/query-states", "/transactions/form-types", "/errors/form-types",
	} {
		rec := doGet(t, h, path)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: статус = %d", path, rec.Code)
			continue
		}
		var items []map[string]any
		decodeBody(t, rec, &items)
		if len(items) != 1 {
			t.Errorf("%s: элементов = %d", path, len(items))
		}
	}

	if len(activeCalls) != 2 || !activeCalls[0] || activeCalls[1] {
		t.Errorf("activeOnly по маршрутам = %v, ожидалось [true false]", activeCalls)
	}
}

func TestReferenceEndpoints_Error(t *testing.T) {
	refs := &mockReferenceService{
		errorsFn: func(context.Context) ([]model.ErrorRef, error) {
			return nil, errors.New("relation swift_errors does not exist")
		},
	}
	rec := doGet(t, testRouter(nil, refs, nil), "/errors")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("статус = %d", rec.Code)
	}
}

func TestExportTransactions(t *testing.T) {
	var gotFormat string
	exp := &mockExportService{
		exportFn: func(_ context.Context, f model.TransactionFilter, format string) (*service.ExportFile, error) {
			gotFormat = format
			if f.Status == nil || f.Status.Raw != "RJCT" {
				t.Errorf("фильтр не передан: %+v", f.Status)
			}
			return &service.ExportFile{
				Filename:    "swift-transactions-20240315-090507.csv",
				ContentType: "text/csv; charset=utf-8",
				Data:        []byte("ID\n1\n"),
				Rows:        1,
			}, nil
		},
	}
	rec := doGet(t, testRouter(nil, nil, exp), "/export/transactions?format=csv&status=RJCT")

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	if gotFormat != "csv" {
		t.Errorf("format = %q", gotFormat)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="swift-transactions-20240315-090507.csv"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Header().Get("Content-Type") != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
	if rec.Body.String() != "ID\n1\n" {
		t.Errorf("тело = %q", rec.Body.String())
	}
}

func TestExportTransactions_ErrorIsJSON(t *testing.T) {
	exp := &mockExportService{
		exportFn: func(context.Context, model.TransactionFilter, string) (*service.ExportFile, error) {
			return nil, errors.New("db down")
		},
	}
	rec := doGet(t, testRouter(nil, nil, exp), "/export/transactions")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("статус = %d", rec.Code)
	}
	if rec.Header().Get("Content-Disposition") != "" {
		t.Error("при ошибке не должно быть вложения")
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestPreviewExport(t *testing.T) {
	exp := &mockExportService{
		previewFn: func(context.Context, model.TransactionFilter) (model.ExportPreview, error) {
			return model.NewExportPreview(10005, model.MaxExportRows), nil
		},
	}
	rec := doGet(t, testRouter(nil, nil, exp), "/export/preview")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["hasMore"] != true || body["willExport"] != float64(10000) || body["totalRecords"] != float64(10005) {
		t.Errorf("превью = %v", body)
	}
}

func TestGetOpenAPI(t *testing.T) {
	rec := doGet(t, testRouter(nil, nil, nil), "/openapi.yaml")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "SWIFT Monitor API") {
		t.Error("ответ не содержит спецификацию")
	}
}
