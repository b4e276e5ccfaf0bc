// export.go — выгрузка журнала транзакций в XLSX/CSV.
// Файл формируется в памяти целиком: клиент не получает частично записанный файл.
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
	"github.com/bigkaa/swift-monitor/internal/export"
	"github.com/bigkaa/swift-monitor/internal/repository"
)

// Prometheus-метрики выгрузки.
var (
	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swiftmon_exports_total",
		Help: "Общее количество сформированных выгрузок.",
	}, []string{"format"})
	exportRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swiftmon_export_rows",
		Help:    "Количество строк в выгрузке.",
		Buckets: []float64{0, 10, 100, 500, 1000, 2500, 5000, 10000},
	})
)

// ExportFile — готовый файл выгрузки.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	// Rows — количество строк данных (без заголовка)
	Rows int
}

// WriteTo записывает содержимое файла в w.
func (f *ExportFile) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Data)
	return int64(n), err
}

// ExportService — превью и формирование выгрузок.
type ExportService struct {
	repo   repository.ExportRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewExportService создаёт сервис выгрузки.
func NewExportService(repo repository.ExportRepository, logger *slog.Logger) *ExportService {
	return &ExportService{
		repo:   repo,
		logger: logger.With(slog.String("component", "export_service")),
		now:    time.Now,
	}
}

// Preview возвращает оценку объёма выгрузки по фильтру.
func (s *ExportService) Preview(ctx context.Context, f model.TransactionFilter) (model.ExportPreview, error) {
	ctx, span := startSpan(ctx, "ExportService.Preview")
	defer span.End()
	defer observe("export_preview")()

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return model.ExportPreview{}, spanError(span, fmt.Errorf("превью выгрузки: %w", err))
	}
	return model.NewExportPreview(total, model.MaxExportRows), nil
}

// Export формирует файл выгрузки. format "csv" — CSV, любое другое значение — XLSX.
// В файл попадает не более MaxExportRows новейших транзакций.
func (s *ExportService) Export(ctx context.Context, f model.TransactionFilter, format string) (*ExportFile, error) {
	enc := export.ForFormat(format)

	ctx, span := startSpan(ctx, "ExportService.Export", attribute.String("format", enc.Format()))
	defer span.End()
	defer observe("export")()

	rows, err := s.repo.Rows(ctx, f, model.MaxExportRows)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("выборка для выгрузки: %w", err))
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, rows); err != nil {
		return nil, spanError(span, fmt.Errorf("кодирование выгрузки %s: %w", enc.Format(), err))
	}

	exportsTotal.WithLabelValues(enc.Format()).Inc()
	exportRows.Observe(float64(len(rows)))
	span.SetAttributes(attribute.Int("rows", len(rows)))

	file := &ExportFile{
		Filename:    export.Filename(enc, s.now()),
		ContentType: enc.ContentType(),
		Data:        buf.Bytes(),
		Rows:        len(rows),
	}

	s.logger.Info("Выгрузка сформирована",
		slog.String("format", enc.Format()),
		slog.String("filename", file.Filename),
		slog.Int("rows", file.Rows),
		slog.Int("bytes", len(file.Data)),
	)
	return file, nil
}
