// reference.go — обработчики справочников.
package handlers

import (
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/swift-monitor/internal/api/errors"
)

// ListErrors — справочник кодов ошибок (/errors и /transactions/errors).
func (h *APIHandler) ListErrors(w http.ResponseWriter, r *http.Request) {
	refs, err := h.references.Errors(r.Context())
	if err != nil {
		h.referenceError(w, "errors", err)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

// ListActiveFormTypes — активные типы форм для фильтра журнала.
func (h *APIHandler) ListActiveFormTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.references.FormTypes(r.Context(), true)
	if err != nil {
		h.referenceError(w, "form_types", err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// ListFormTypes — все типы форм.
func (h *APIHandler) ListFormTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.references.FormTypes(r.Context(), false)
	if err != nil {
		h.referenceError(w, "form_types", err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// ListMessageStates — наблюдаемые статусы сообщений.
func (h *APIHandler) ListMessageStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.references.MessageStates(r.Context())
	if err != nil {
		h.referenceError(w, "message_states", err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

// ListQueryStates — состояния конвейера обработки.
func (h *APIHandler) ListQueryStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.references.QueryStates(r.Context())
	if err != nil {
		h.referenceError(w, "query_states", err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (h *APIHandler) referenceError(w http.ResponseWriter, provider string, err error) {
	h.logger.Error("Ошибка чтения справочника",
		slog.String("provider", provider),
		slog.String("error", err.Error()),
	)
	apierrors.InternalError(w, err.Error())
}
