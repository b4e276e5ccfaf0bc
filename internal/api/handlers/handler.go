// handler.go — основной обработчик API, реализующий contract.ServerInterface.
// Объединяет health и бизнес-обработчики, делегируя запросы в сервисный слой.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bigkaa/swift-monitor/internal/api/contract"
	"github.com/bigkaa/swift-monitor/internal/domain/model"
	"github.com/bigkaa/swift-monitor/internal/service"
)

// TransactionService — операции журнала транзакций.
type TransactionService interface {
	List(ctx context.Context, f model.TransactionFilter, page model.PageRequest) (*model.Page, error)
	Get(ctx context.Context, id int64) (model.Record, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

// ReferenceService — справочники.
type ReferenceService interface {
	Errors(ctx context.Context) ([]model.ErrorRef, error)
	MessageStates(ctx context.Context) ([]model.MessageState, error)
	FormTypes(ctx context.Context, activeOnly bool) ([]model.FormType, error)
	QueryStates(ctx context.Context) ([]model.QueryState, error)
}

// ExportService — выгрузка.
type ExportService interface {
	Preview(ctx context.Context, f model.TransactionFilter) (model.ExportPreview, error)
	Export(ctx context.Context, f model.TransactionFilter, format string) (*service.ExportFile, error)
}

// APIHandler — основной обработчик API SWIFT Monitor.
type APIHandler struct {
	health       *HealthHandler
	transactions TransactionService
	references   ReferenceService
	exports      ExportService
	logger       *slog.Logger
}

var _ contract.ServerInterface = (*APIHandler)(nil)

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	transactions TransactionService,
	references ReferenceService,
	exports ExportService,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:       health,
		transactions: transactions,
		references:   references,
		exports:      exports,
		logger:       logger.With(slog.String("component", "api_handler")),
	}
}

// --- Health endpoints (делегируются в HealthHandler) ---

// Health — простая проверка работоспособности.
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.health.Health(w, r)
}

// HealthLive — liveness probe.
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe.
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// GetOpenAPI — встроенный контракт API.
func (h *APIHandler) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(contract.Spec())
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
