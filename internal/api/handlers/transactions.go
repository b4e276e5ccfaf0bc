// transactions.go — обработчики журнала транзакций:
// GET /transactions, GET /transactions/{id}, GET /transactions/stats.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/swift-monitor/internal/api/errors"
	"github.com/bigkaa/swift-monitor/internal/filter"
	"github.com/bigkaa/swift-monitor/internal/service"
)

// ListTransactions — страница журнала по фильтрам из query string.
func (h *APIHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	f := filter.Normalize(query)
	page := filter.NormalizePage(query)

	result, err := h.transactions.List(r.Context(), f, page)
	if err != nil {
		h.logger.Error("Ошибка выборки журнала", slog.String("error", err.Error()))
		apierrors.InternalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetTransaction — карточка транзакции.
func (h *APIHandler) GetTransaction(w http.ResponseWriter, r *http.Request, id int64) {
	record, err := h.transactions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, fmt.Sprintf("Транзакция %d не найдена", id))
			return
		}
		h.logger.Error("Ошибка получения транзакции",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// GetTransactionStats — агрегаты за последние 30 суток.
func (h *APIHandler) GetTransactionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.transactions.Stats(r.Context())
	if err != nil {
		h.logger.Error("Ошибка расчёта статистики", slog.String("error", err.Error()))
		apierrors.InternalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// InvalidTransactionID — ответ на нечисловой id: такой транзакции не существует.
func InvalidTransactionID(w http.ResponseWriter, r *http.Request, _ error) {
	apierrors.NotFound(w, fmt.Sprintf("Транзакция %q не найдена", chi.URLParam(r, "id")))
}
