// export.go — обработчики выгрузки:
// GET /export/transactions (файл), GET /export/preview (оценка объёма).
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	apierrors "github.com/bigkaa/swift-monitor/internal/api/errors"
	"github.com/bigkaa/swift-monitor/internal/filter"
)

// ExportTransactions — файл выгрузки в формате из параметра format.
// Заголовки отправляются только после того, как файл целиком сформирован.
func (h *APIHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	f := filter.Normalize(query)

	file, err := h.exports.Export(r.Context(), f, query.Get("format"))
	if err != nil {
		h.logger.Error("Ошибка выгрузки", slog.String("error", err.Error()))
		apierrors.InternalError(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := file.WriteTo(w); err != nil {
		h.logger.Warn("Клиент прервал получение выгрузки",
			slog.String("filename", file.Filename),
			slog.String("error", err.Error()),
		)
	}
}

// PreviewExport — превью выгрузки.
func (h *APIHandler) PreviewExport(w http.ResponseWriter, r *http.Request) {
	f := filter.Normalize(r.URL.Query())

	preview, err := h.exports.Preview(r.Context(), f)
	if err != nil {
		h.logger.Error("Ошибка превью выгрузки", slog.String("error", err.Error()))
		apierrors.InternalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, preview)
}
