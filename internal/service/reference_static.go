package service

import "github.com/bigkaa/swift-monitor/internal/domain/model"

// messageStatusCatalogue — коды статусов ISO 20022 (ExternalPaymentTransactionStatus).
var messageStatusCatalogue = map[string]model.MessageState{
	"ACTC": {Code: "ACTC", Name: "Accepted Technical Validation", Color: model.ColorSuccess},
	"ACCP": {Code: "ACCP", Name: "Accepted Customer Profile", Color: model.ColorSuccess},
	"ACSP": {Code: "ACSP", Name: "Accepted Settlement In Process", Color: model.ColorSuccess},
	"ACSC": {Code: "ACSC", Name: "Accepted Settlement Completed", Color: model.ColorSuccess},
	"ACWC": {Code: "ACWC", Name: "Accepted With Change", Color: model.ColorSuccess},
	"ACCC": {Code: "ACCC", Name: "Accepted Settlement Completed Creditor", Color: model.ColorSuccess},
	"PDNG": {Code: "PDNG", Name: "Pending", Color: model.ColorDefault},
	"RCVD": {Code: "RCVD", Name: "Received", Color: model.ColorDefault},
	"PART": {Code: "PART", Name: "Partially Accepted", Color: model.ColorDefault},
	"RJCT": {Code: "RJCT", Name: "Rejected", Color: model.ColorError},
	"CANC": {Code: "CANC", Name: "Cancelled", Color: model.ColorError},
}

// DescribeMessageStatus возвращает название и цвет статуса сообщения.
// Неизвестный код отображается как есть с цветом по умолчанию.
func DescribeMessageStatus(code string) model.MessageState {
	if st, ok := messageStatusCatalogue[code]; ok {
		return st
	}
	return model.MessageState{Code: code, Name: code, Color: model.ColorDefault}
}

// staticFormTypes — встроенный список типов форм на случай недоступной схемы.
func staticFormTypes(activeOnly bool) []model.FormType {
	all := []model.FormType{
		{ID: 1, Name: "pacs.008", Alias: "pacs.008.001.", State: 1, HeadVersion: "head.001.001.02", BodyVersion: "08", Title: "FI to FI Customer Credit Transfer", ShortTitle: "Customer Transfer"},
		{ID: 2, Name: "pacs.009", Alias: "pacs.009.001.", State: 1, HeadVersion: "head.001.001.02", BodyVersion: "08", Title: "Financial Institution Credit Transfer", ShortTitle: "FI Transfer"},
		{ID: 3, Name: "pacs.002", Alias: "pacs.002.001.", State: 1, HeadVersion: "head.001.001.02", BodyVersion: "10", Title: "FI to FI Payment Status Report", ShortTitle: "Status Report"},
		{ID: 4, Name: "camt.053", Alias: "camt.053.001.", State: 1, HeadVersion: "head.001.001.02", BodyVersion: "08", Title: "Bank to Customer Statement", ShortTitle: "Statement"},
		{ID: 5, Name: "pain.001", Alias: "pain.001.001.", State: 0, HeadVersion: "head.001.001.02", BodyVersion: "09", Title: "Customer Credit Transfer Initiation", ShortTitle: "Initiation"},
	}
	if !activeOnly {
		return all
	}
	active := make([]model.FormType, 0, len(all))
	for _, ft := range all {
		if ft.State == model.FormTypeActive {
			active = append(active, ft)
		}
	}
	return active
}

// staticQueryStates — встроенный список состояний обработки.
func staticQueryStates() []model.QueryState {
	return []model.QueryState{
		{ID: model.StateInitialized, Name: "Initialized", Active: 1, Color: model.ColorDefault},
		{ID: model.StateProcessing, Name: "Processing", Active: 1, Color: model.ColorDefault, MessageState: "PDNG"},
		{ID: model.StateSent, Name: "Sent", Active: 1, Direction: model.DirectionOutbound, Color: model.ColorDefault, MessageState: "ACTC"},
		{ID: 4, Name: "Rejected", Active: 1, Color: model.ColorError, MessageState: "RJCT"},
		{ID: 5, Name: "Cancelled", Active: 1, Color: model.ColorError, MessageState: "CANC"},
		{ID: model.StateCompleted, Name: "Completed", Active: 1, Color: model.ColorSuccess, MessageState: "ACSC"},
	}
}
