package repository

import (
	"context"
	"time"

	"github.com/itinerary-microservice/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetCandidates получает закешированный ответ оракула по промпту
	GetCandidates(ctx context.Context, prompt string) ([]domain.RawDestination, error)

	// SetCandidates сохраняет ответ оракула
	SetCandidates(ctx context.Context, prompt string, candidates []domain.RawDestination, ttl time.Duration) error
}
