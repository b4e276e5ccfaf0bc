package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

// TestReferenceCache_GetSet проверяет базовые операции Get/Set.
func TestReferenceCache_GetSet(t *testing.T) {
	cache := NewReferenceCache(100, 5*time.Minute)

	// Cache miss
	if _, ok := cache.Get("errors"); ok {
		t.Fatal("ожидался cache miss для нового ключа")
	}

	// Set + cache hit
	refs := []model.ErrorRef{{Code: 101, Message: "bad"}}
	cache.Set("errors", refs)
	got, ok := cache.Get("errors")
	if !ok {
		t.Fatal("ожидался cache hit после Set")
	}
	if len(got.([]model.ErrorRef)) != 1 {
		t.Errorf("значение = %v", got)
	}
}

// TestReferenceCache_TTLExpiry проверяет истечение TTL.
func TestReferenceCache_TTLExpiry(t *testing.T) {
	cache := NewReferenceCache(100, 50*time.Millisecond)
	cache.Set("k", 1)

	time.Sleep(100 * time.Millisecond)

	if _, ok := cache.Get("k"); ok {
		t.Error("ожидался cache miss после истечения TTL")
	}
}

// TestReferenceCache_Disabled проверяет выключенный кэш (TTL = 0).
func TestReferenceCache_Disabled(t *testing.T) {
	cache := NewReferenceCache(100, 0)
	if cache.Enabled() {
		t.Fatal("кэш с нулевым TTL должен быть выключен")
	}
	cache.Set("k", 1)
	if _, ok := cache.Get("k"); ok {
		t.Error("выключенный кэш не должен возвращать значения")
	}
}

// TestCached проверяет загрузку при промахе и отсутствие кэширования ошибок.
func TestCached(t *testing.T) {
	cache := NewReferenceCache(10, time.Minute)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("db down")
		}
		return []string{"ACSC"}, nil
	}

	if _, err := cached(ctx, cache, "states", load); err == nil {
		t.Fatal("ожидалась ошибка первой загрузки")
	}
	for i := 0; i < 3; i++ {
		got, err := cached(ctx, cache, "states", load)
		if err != nil || len(got) != 1 {
			t.Fatalf("cached() = %v, %v", got, err)
		}
	}
	if calls != 2 {
		t.Errorf("load вызван %d раз, ожидалось 2", calls)
	}
}
