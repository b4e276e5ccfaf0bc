// Пакет model — доменные модели SWIFT Monitor.
// Все сущности только для чтения: журнал транзакций и справочники
// наполняются внешней системой обработки платежей.
package model

import "time"

// Направления платёжного сообщения (столбец direction).
const (
	DirectionOutbound = 1
	DirectionInbound  = 2
)

// Состояния обработки транзакции (столбец state), участвующие в агрегатах.
const (
	StateInitialized = 1
	StateProcessing  = 2
	StateSent        = 3
	StateCompleted   = 9
)

// PendingStates — состояния «в работе» (статистика и статус экспорта).
var PendingStates = []int{StateInitialized, StateProcessing, StateSent}

// Record — материализованная строка журнала транзакций.
// Ключи — имена столбцов в нижнем регистре, значения — JSON-совместимые скаляры.
type Record map[string]any

// StatusFilter — фильтр по статусу.
// Числовой статус сравнивается с состоянием транзакции, текстовый —
// с текстом состояния или статусом связанного сообщения.
type StatusFilter struct {
	// Raw — исходное значение параметра (уже очищенное от пробелов)
	Raw string
	// Code — числовое значение, если Numeric == true
	Code int
	// Numeric — значение распознано как целое число
	Numeric bool
}

// TransactionFilter — каноническое представление фильтров запроса.
// nil / false — фильтр не применяется.
type TransactionFilter struct {
	// DateFrom — начало первого дня диапазона (включительно)
	DateFrom *time.Time
	// DateTo — начало последнего дня диапазона (день включается целиком)
	DateTo *time.Time
	// Status — состояние транзакции или статус сообщения
	Status *StatusFilter
	// Type — подстрока кода типа формы
	Type *string
	// Search — подстрока для поиска по идентификаторам, файлам и участникам
	Search *string
	// ErrorsOnly — только транзакции с ненулевым кодом ошибки
	ErrorsOnly bool
}

// PageRequest — запрошенное окно выдачи.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset возвращает количество пропускаемых строк.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination — метаданные страницы в ответе.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Page — страница журнала транзакций.
// Total считается независимо от окна и может превышать len(Data).
type Page struct {
	Data       []Record   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Stats — агрегаты за скользящее окно.
type Stats struct {
	Total   int64 `json:"total"`
	Errors  int64 `json:"errors"`
	Pending int64 `json:"pending"`
	Success int64 `json:"success"`
}
