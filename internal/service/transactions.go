// transactions.go — сервис журнала транзакций: страницы, карточка, статистика.
// Координирует repository, Prometheus-метрики и трассировку.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
	"github.com/bigkaa/swift-monitor/internal/repository"
	"github.com/bigkaa/swift-monitor/internal/telemetry"
)

// Ошибки сервисного слоя.
var (
	// ErrNotFound — транзакция не найдена.
	ErrNotFound = errors.New("транзакция не найдена")
)

// StatsWindow — скользящее окно статистики.
const StatsWindow = 30 * 24 * time.Hour

// Prometheus-метрики запросов к журналу.
var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swiftmon_transactions_queries_total",
		Help: "Общее количество запросов к журналу транзакций.",
	}, []string{"operation"})
	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swiftmon_query_duration_seconds",
		Help:    "Длительность запросов к журналу транзакций.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// TransactionService — чтение журнала транзакций.
type TransactionService struct {
	repo   repository.TransactionRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewTransactionService создаёт сервис журнала.
func NewTransactionService(repo repository.TransactionRepository, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		repo:   repo,
		logger: logger.With(slog.String("component", "transaction_service")),
		now:    time.Now,
	}
}

// List возвращает страницу журнала по фильтру.
func (s *TransactionService) List(ctx context.Context, f model.TransactionFilter, page model.PageRequest) (*model.Page, error) {
	ctx, span := startSpan(ctx, "TransactionService.List",
		attribute.Int("page", page.Page), attribute.Int("limit", page.Limit))
	defer span.End()
	defer observe("list")()

	records, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("выборка журнала: %w", err))
	}
	if records == nil {
		records = []model.Record{}
	}

	s.logger.Debug("Страница журнала получена",
		slog.Int("page", page.Page),
		slog.Int("limit", page.Limit),
		slog.Int64("total", total),
		slog.Int("returned", len(records)),
	)

	return &model.Page{
		Data: records,
		Pagination: model.Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
		},
	}, nil
}

// Get возвращает транзакцию по id.
func (s *TransactionService) Get(ctx context.Context, id int64) (model.Record, error) {
	ctx, span := startSpan(ctx, "TransactionService.Get", attribute.Int64("id", id))
	defer span.End()
	defer observe("get")()

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, spanError(span, fmt.Errorf("получение транзакции: %w", err))
	}
	return rec, nil
}

// Stats возвращает агрегаты за последние 30 суток от текущего момента.
func (s *TransactionService) Stats(ctx context.Context) (*model.Stats, error) {
	ctx, span := startSpan(ctx, "TransactionService.Stats")
	defer span.End()
	defer observe("stats")()

	stats, err := s.repo.Stats(ctx, s.now().Add(-StatsWindow))
	if err != nil {
		return nil, spanError(span, fmt.Errorf("статистика: %w", err))
	}
	return stats, nil
}

// observe учитывает запрос и возвращает функцию фиксации длительности.
func observe(operation string) func() {
	start := time.Now()
	queriesTotal.WithLabelValues(operation).Inc()
	return func() {
		queryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// spanError отмечает ошибку в спане и возвращает её.
func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
