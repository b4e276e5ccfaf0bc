package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// CSVEncoder — выгрузка в CSV: запятая, кавычки по RFC 4180, строка заголовка.
type CSVEncoder struct{}

func (CSVEncoder) Format() string { return model.ExportFormatCSV }

func (CSVEncoder) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVEncoder) Encode(w io.Writer, rows []model.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("ошибка записи заголовка CSV: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(textFields(r)); err != nil {
			return fmt.Errorf("ошибка записи строки CSV %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("ошибка записи CSV: %w", err)
	}
	return nil
}
