package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// Модели gorm для встроенного хранилища SQLite.
// Повторяют схему миграций PostgreSQL; суммы хранятся текстом без потери точности.

// ErrorCode — строка swift_errors.
type ErrorCode struct {
	Code    int    `gorm:"column:code;primaryKey;autoIncrement:false"`
	Message string `gorm:"column:message;not null"`
}

func (ErrorCode) TableName() string { return "swift_errors" }

// FormType — строка swift_form_types.
type FormType struct {
	ID          int    `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name        string `gorm:"column:name;not null"`
	Alias       string `gorm:"column:alias;not null"`
	State       int    `gorm:"column:state;not null"`
	HeadVersion string `gorm:"column:head_version"`
	BodyVersion string `gorm:"column:body_version"`
	Title       string `gorm:"column:title"`
	ShortTitle  string `gorm:"column:short_title"`
}

func (FormType) TableName() string { return "swift_form_types" }

// QueryState — строка swift_query_states.
type QueryState struct {
	ID           int     `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name         string  `gorm:"column:name;not null"`
	Active       int     `gorm:"column:active;not null"`
	Direction    int     `gorm:"column:direction;not null"`
	Color        *string `gorm:"column:color"`
	MessageState *string `gorm:"column:message_state"`
}

func (QueryState) TableName() string { return "swift_query_states" }

// Transaction — строка журнала swift_transactions.
type Transaction struct {
	ID               int64      `gorm:"column:id;primaryKey;autoIncrement:false"`
	MsgID            *string    `gorm:"column:msg_id"`
	Type             *string    `gorm:"column:type"`
	Direction        *int       `gorm:"column:direction"`
	State            *int       `gorm:"column:state;index"`
	InitTime         time.Time  `gorm:"column:init_time;not null;index"`
	SendTime         *time.Time `gorm:"column:send_time"`
	ResponseTime     *time.Time `gorm:"column:response_time"`
	Error            *int       `gorm:"column:error"`
	ErrorMsg         *string    `gorm:"column:error_msg"`
	FileName         *string    `gorm:"column:file_name"`
	ResponseFileName *string    `gorm:"column:response_file_name"`
	Reference        *string    `gorm:"column:reference"`
	JSONData         *string    `gorm:"column:json_data;type:text"`
	XMLData          *string    `gorm:"column:xml_data;type:text"`
}

func (Transaction) TableName() string { return "swift_transactions" }

// Message — строка swift_messages.
type Message struct {
	ID       int64               `gorm:"column:id;primaryKey;autoIncrement:false"`
	QueryID  int64               `gorm:"column:query_id;not null;index"`
	Status   *string             `gorm:"column:status;index"`
	Reason   *string             `gorm:"column:reason"`
	Amount   decimal.NullDecimal `gorm:"column:amount;type:text"`
	Currency *string             `gorm:"column:currency"`
	Payer    *string             `gorm:"column:payer"`
	Receiver *string             `gorm:"column:receiver"`
}

func (Message) TableName() string { return "swift_messages" }

// MigrateModels — модели, таблицы которых создаёт AutoMigrate.
var MigrateModels = []any{
	&ErrorCode{},
	&FormType{},
	&QueryState{},
	&Transaction{},
	&Message{},
}
