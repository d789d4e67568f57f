package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const candidatesKeyPrefix = "oracle:candidates:"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository создает кеш поверх общего подключения Redis
func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetCandidates получает закешированный ответ оракула; nil, nil при промахе
func (r *cacheRepository) GetCandidates(ctx context.Context, prompt string) ([]domain.RawDestination, error) {
	data, err := r.Get(ctx, CandidatesKey(prompt))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var candidates []domain.RawDestination
	if err := json.Unmarshal(data, &candidates); err != nil {
		r.logger.Error("Failed to unmarshal candidates from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal candidates: %w", err)
	}

	return candidates, nil
}

// SetCandidates сохраняет ответ оракула
func (r *cacheRepository) SetCandidates(
	ctx context.Context,
	prompt string,
	candidates []domain.RawDestination,
	ttl time.Duration,
) error {
	data, err := json.Marshal(candidates)
	if err != nil {
		r.logger.Error("Failed to marshal candidates", zap.Error(err))
		return fmt.Errorf("marshal candidates: %w", err)
	}

	return r.Set(ctx, CandidatesKey(prompt), data, ttl)
}

// CandidatesKey - ключ кеша для промпта
func CandidatesKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return candidatesKeyPrefix + hex.EncodeToString(sum[:])
}
