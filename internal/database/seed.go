package database

// Справочные данные для встроенного хранилища.
// Совпадают с миграцией 000002_reference_seed.

func strPtr(s string) *string { return &s }

var seedErrors = []ErrorCode{
	{Code: 101, Message: "Некорректный формат сообщения"},
	{Code: 102, Message: "Ошибка проверки подписи"},
	{Code: 201, Message: "Получатель не найден"},
	{Code: 301, Message: "Превышен таймаут ответа"},
	{Code: 500, Message: "Внутренняя ошибка шлюза"},
}

var seedFormTypes = []FormType{
	{ID: 1, Name: "pacs.008", Alias: "pacs.008.001.", State: 1, HeadVersion: "head.001.001.02", BodyVersion: "08", Title: "FI to FI Customer Credit Transfer", ShortTitle: "Customer Transfer"},
	{ID: 2, Name: "pacs.009", Alias: "pacs.009.001.", State: 1, HeadVersion: "head.001.001.02", BodyVersion: "08", Title: "Financial Institution Credit Transfer", ShortTitle: "FI Transfer"},
	{ID: 3, Name: "pacs.002", Alias: "pacs.002.001.", State: 1, HeadVersion: "head.001.001.02", BodyVersion: "10", Title: "FI to FI Payment Status Report", ShortTitle: "Status Report"},
	{ID: 4, Name: "camt.053", Alias: "camt.053.001.", State: 1, HeadVersion: "head.001.001.02", BodyVersion: "08", Title: "Bank to Customer Statement", ShortTitle: "Statement"},
	{ID: 5, Name: "pain.001", Alias: "pain.001.001.", State: 0, HeadVersion: "head.001.001.02", BodyVersion: "09", Title: "Customer Credit Transfer Initiation", ShortTitle: "Initiation"},
}

var seedQueryStates = []QueryState{
	{ID: 1, Name: "Initialized", Active: 1, Direction: 0, Color: strPtr("default")},
	{ID: 2, Name: "Processing", Active: 1, Direction: 0, Color: strPtr("default"), MessageState: strPtr("PDNG")},
	{ID: 3, Name: "Sent", Active: 1, Direction: 1, Color: strPtr("default"), MessageState: strPtr("ACTC")},
	{ID: 4, Name: "Rejected", Active: 1, Direction: 0, Color: strPtr("error"), MessageState: strPtr("RJCT")},
	{ID: 5, Name: "Cancelled", Active: 1, Direction: 0, Color: strPtr("error"), MessageState: strPtr("CANC")},
	{ID: 9, Name: "Completed", Active: 1, Direction: 0, Color: strPtr("success"), MessageState: strPtr("ACSC")},
}
