// Пакет errors — ответы с ошибками в формате SWIFT Monitor.
// Единый формат: {"error": "...", "message": "..."}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors

import (
	"encoding/json"
	"net/http"
)

// Краткие названия ошибок (поле error).
const (
	CodeNotFound      = "Not Found"
	CodeInternalError = "Internal Server Error"
)

// errorBody — структура тела ответа ошибки.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError записывает ответ ошибки.
// statusCode — HTTP статус-код, code — краткое название, message — описание.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error:   code,
		Message: message,
	})
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// InternalError — 500 внутренняя ошибка. Текст исходной ошибки передаётся клиенту как есть.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}
