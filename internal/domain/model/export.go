package model

import "time"

// MaxExportRows — жёсткий потолок строк в выгрузке, не размер страницы.
const MaxExportRows = 10000

// Форматы выгрузки.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

// ExportRow — строка выгрузки с фиксированным набором столбцов.
type ExportRow struct {
	ID               int64
	MsgID            string
	Type             string
	Direction        string
	Status           string
	InitTime         *time.Time
	SendTime         *time.Time
	ResponseTime     *time.Time
	ErrorCode        *int64
	ErrorMessage     string
	FileName         string
	ResponseFileName string
	Reference        string
	ErrorDescription string
	FormName         string
}

// ExportPreview — оценка объёма выгрузки без материализации строк.
type ExportPreview struct {
	TotalRecords   int64 `json:"totalRecords"`
	WillExport     int64 `json:"willExport"`
	HasMore        bool  `json:"hasMore"`
	MaxExportLimit int   `json:"maxExportLimit"`
}

// NewExportPreview рассчитывает превью для общего числа совпадений и потолка.
func NewExportPreview(total int64, maxRows int) ExportPreview {
	will := total
	if will > int64(maxRows) {
		will = int64(maxRows)
	}
	return ExportPreview{
		TotalRecords:   total,
		WillExport:     will,
		HasMore:        total > int64(maxRows),
		MaxExportLimit: maxRows,
	}
}
