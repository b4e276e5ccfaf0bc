// Пакет export — кодировщики выгрузки журнала транзакций в XLSX и CSV.
// Файл целиком формируется в памяти вызывающей стороной; кодировщик
// получает уже ограниченный набор строк.
package export

import (
	"io"
	"strconv"
	"time"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// DateLayout — формат дат в выгрузке (без часового пояса).
const DateLayout = "2006-01-02 15:04:05"

// filenameLayout — метка времени в имени файла.
const filenameLayout = "20060102-150405"

// Headers — заголовки столбцов выгрузки в фиксированном порядке.
var Headers = []string{
	"ID",
	"Message ID",
	"Type",
	"Direction",
	"Status",
	"Init Time",
	"Send Time",
	"Response Time",
	"Error Code",
	"Error Message",
	"File Name",
	"Response File Name",
	"Reference",
	"Error Description",
	"Form Name",
}

// Encoder сериализует строки выгрузки в конкретный формат.
type Encoder interface {
	// Format — имя формата (xlsx, csv).
	Format() string
	// ContentType — MIME-тип результата.
	ContentType() string
	// Encode записывает заголовок и строки в w.
	Encode(w io.Writer, rows []model.ExportRow) error
}

// ForFormat возвращает кодировщик: csv — CSV, любое другое значение — XLSX.
func ForFormat(format string) Encoder {
	if format == model.ExportFormatCSV {
		return CSVEncoder{}
	}
	return XLSXEncoder{}
}

// Filename возвращает имя файла выгрузки с меткой времени now.
func Filename(enc Encoder, now time.Time) string {
	return "swift-transactions-" + now.Format(filenameLayout) + "." + enc.Format()
}

// formatTime форматирует необязательную дату.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// formatCode форматирует необязательный код ошибки.
func formatCode(c *int64) string {
	if c == nil {
		return ""
	}
	return strconv.FormatInt(*c, 10)
}

// textFields возвращает значения строки в порядке Headers.
func textFields(r model.ExportRow) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.MsgID,
		r.Type,
		r.Direction,
		r.Status,
		formatTime(r.InitTime),
		formatTime(r.SendTime),
		formatTime(r.ResponseTime),
		formatCode(r.ErrorCode),
		r.ErrorMessage,
		r.FileName,
		r.ResponseFileName,
		r.Reference,
		r.ErrorDescription,
		r.FormName,
	}
}
