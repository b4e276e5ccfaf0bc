// reference.go — справочники: коды ошибок, типы форм, состояния обработки,
// статусы сообщений. Типы форм и состояния переживают расхождение схемы
// через цепочку «полный запрос → сокращённый запрос → встроенный список».
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
	"github.com/bigkaa/swift-monitor/internal/repository"
)

// Ступени цепочки справочника.
const (
	TierFull    = "full"
	TierReduced = "reduced"
	TierStatic  = "static"
)

var referenceFallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "swiftmon_reference_fallback_total",
	Help: "Количество ответов справочников, полученных с резервной ступени.",
}, []string{"provider", "tier"})

// tier — одна ступень цепочки.
type tier[T any] struct {
	name string
	load func(ctx context.Context) ([]T, error)
}

// ReferenceService — чтение справочников с кэшем.
type ReferenceService struct {
	repo   repository.ReferenceRepository
	cache  *ReferenceCache
	logger *slog.Logger
}

// NewReferenceService создаёт сервис справочников.
func NewReferenceService(repo repository.ReferenceRepository, cache *ReferenceCache, logger *slog.Logger) *ReferenceService {
	return &ReferenceService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("component", "reference_service")),
	}
}

// Errors возвращает справочник кодов ошибок. Ошибки источника не подавляются.
func (s *ReferenceService) Errors(ctx context.Context) ([]model.ErrorRef, error) {
	refs, err := cached(ctx, s.cache, "errors", s.repo.Errors)
	if err != nil {
		return nil, fmt.Errorf("справочник ошибок: %w", err)
	}
	return refs, nil
}

// MessageStates возвращает наблюдаемые статусы сообщений с названием и цветом.
func (s *ReferenceService) MessageStates(ctx context.Context) ([]model.MessageState, error) {
	states, err := cached(ctx, s.cache, "message-states", func(ctx context.Context) ([]model.MessageState, error) {
		codes, err := s.repo.MessageStatuses(ctx)
		if err != nil {
			return nil, err
		}
		result := make([]model.MessageState, 0, len(codes))
		for _, code := range codes {
			result = append(result, DescribeMessageStatus(code))
		}
		return result, nil
	})
	if err != nil {
		return nil, fmt.Errorf("статусы сообщений: %w", err)
	}
	return states, nil
}

// FormTypes возвращает типы форм; activeOnly — только доступные для фильтра.
func (s *ReferenceService) FormTypes(ctx context.Context, activeOnly bool) ([]model.FormType, error) {
	key := "form-types:all"
	if activeOnly {
		key = "form-types:active"
	}
	return cached(ctx, s.cache, key, func(ctx context.Context) ([]model.FormType, error) {
		return fallbackChain(ctx, s.logger, "form_types",
			tier[model.FormType]{TierFull, func(ctx context.Context) ([]model.FormType, error) {
				return s.repo.FormTypes(ctx, activeOnly)
			}},
			tier[model.FormType]{TierReduced, s.repo.FormTypesReduced},
			tier[model.FormType]{TierStatic, func(context.Context) ([]model.FormType, error) {
				return staticFormTypes(activeOnly), nil
			}},
		)
	})
}

// QueryStates возвращает состояния конвейера обработки.
func (s *ReferenceService) QueryStates(ctx context.Context) ([]model.QueryState, error) {
	return cached(ctx, s.cache, "query-states", func(ctx context.Context) ([]model.QueryState, error) {
		return fallbackChain(ctx, s.logger, "query_states",
			tier[model.QueryState]{TierFull, s.repo.QueryStates},
			tier[model.QueryState]{TierReduced, s.repo.QueryStatesReduced},
			tier[model.QueryState]{TierStatic, func(context.Context) ([]model.QueryState, error) {
				return staticQueryStates(), nil
			}},
		)
	})
}

// fallbackChain перебирает ступени, пока ступень не ответит.
// К следующей ступени переходит только ErrSchemaMismatch; прочие ошибки возвращаются.
func fallbackChain[T any](ctx context.Context, logger *slog.Logger, provider string, tiers ...tier[T]) ([]T, error) {
	var lastErr error
	for i, t := range tiers {
		result, err := t.load(ctx)
		if err == nil {
			if i > 0 {
				referenceFallbackTotal.WithLabelValues(provider, t.name).Inc()
			}
			return result, nil
		}
		if !errors.Is(err, repository.ErrSchemaMismatch) {
			return nil, fmt.Errorf("справочник %s: %w", provider, err)
		}
		logger.Warn("Схема справочника не соответствует запросу, переход к следующей ступени",
			slog.String("provider", provider),
			slog.String("tier", t.name),
			slog.String("error", err.Error()),
		)
		lastErr = err
	}
	return nil, fmt.Errorf("справочник %s: %w", provider, lastErr)
}
