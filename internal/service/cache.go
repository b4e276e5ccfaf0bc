// Пакет service — бизнес-логика SWIFT Monitor.
// ReferenceCache — LRU-кэш справочников с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swiftmon_reference_cache_hits_total",
		Help: "Общее количество попаданий в кэш справочников.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swiftmon_reference_cache_misses_total",
		Help: "Общее количество промахов кэша справочников.",
	})
)

// ReferenceCache — кэш результатов справочников.
// Каждый экземпляр сервиса имеет собственный in-memory кэш.
// Нулевой TTL выключает кэш: Get всегда промахивается, Set ничего не делает.
type ReferenceCache struct {
	cache *expirable.LRU[string, any]
}

// NewReferenceCache создаёт кэш с максимальным размером maxSize и TTL ttl.
func NewReferenceCache(maxSize int, ttl time.Duration) *ReferenceCache {
	if ttl <= 0 {
		return &ReferenceCache{}
	}
	return &ReferenceCache{cache: expirable.NewLRU[string, any](maxSize, nil, ttl)}
}

// Enabled сообщает, включён ли кэш.
func (c *ReferenceCache) Enabled() bool {
	return c != nil && c.cache != nil
}

// Get возвращает значение по ключу.
// Обновляет Prometheus-метрики hit/miss.
func (c *ReferenceCache) Get(key string) (any, bool) {
	if !c.Enabled() {
		return nil, false
	}
	val, ok := c.cache.Get(key)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет запись.
func (c *ReferenceCache) Set(key string, val any) {
	if c.Enabled() {
		c.cache.Add(key, val)
	}
}

// cached возвращает значение из кэша или загружает его через load.
// Ошибки не кэшируются.
func cached[T any](ctx context.Context, c *ReferenceCache, key string, load func(context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}
