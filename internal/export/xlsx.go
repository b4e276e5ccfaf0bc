package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// SheetName — имя единственного листа книги.
const SheetName = "Transactions"

// columnWidths — ширина столбцов в порядке Headers.
var columnWidths = []float64{10, 24, 20, 12, 12, 20, 20, 20, 12, 40, 30, 30, 20, 40, 20}

// XLSXEncoder — выгрузка в книгу Excel (zip-сжатый OOXML).
type XLSXEncoder struct{}

func (XLSXEncoder) Format() string { return model.ExportFormatXLSX }

func (XLSXEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXEncoder) Encode(w io.Writer, rows []model.ExportRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("ошибка переименования листа: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("ошибка создания потока листа: %w", err)
	}

	// Ширина задаётся до первой строки
	for i, width := range columnWidths {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("ошибка установки ширины столбца: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("ошибка создания стиля заголовка: %w", err)
	}
	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("ошибка записи заголовка: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cellValues(r)); err != nil {
			return fmt.Errorf("ошибка записи строки %d: %w", r.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("ошибка завершения листа: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("ошибка записи книги: %w", err)
	}
	return nil
}

// cellValues — значения ячеек; числовые столбцы остаются числами.
func cellValues(r model.ExportRow) []any {
	fields := textFields(r)
	values := make([]any, len(fields))
	for i, v := range fields {
		values[i] = v
	}
	values[0] = r.ID
	if r.ErrorCode != nil {
		values[8] = *r.ErrorCode
	}
	return values
}
