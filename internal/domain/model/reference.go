package model

// ErrorRef — справочник кодов ошибок.
type ErrorRef struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FormType — тип платёжной формы (например, pacs.008).
// Транзакция ссылается на тип через конкатенацию Alias + BodyVersion.
type FormType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Alias       string `json:"alias"`
	State       int    `json:"state"`
	HeadVersion string `json:"headVersion"`
	BodyVersion string `json:"bodyVersion"`
	Title       string `json:"title"`
	ShortTitle  string `json:"shortTitle"`
}

// Code возвращает код типа в том виде, в котором он хранится в транзакциях.
func (f FormType) Code() string {
	return f.Alias + f.BodyVersion
}

// FormTypeActive — значение state активного типа формы.
const FormTypeActive = 1

// QueryState — состояние конвейера обработки транзакции.
type QueryState struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Active       int    `json:"active"`
	Direction    int    `json:"direction"`
	Color        string `json:"color"`
	MessageState string `json:"messageState"`
}

// Классы цвета для статусов сообщений.
const (
	ColorSuccess = "success"
	ColorError   = "error"
	ColorDefault = "default"
)

// MessageState — статус доставки связанного сообщения.
type MessageState struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
