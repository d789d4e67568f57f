package cache

import (
	"context"
	"time"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// Ensure CachedRecommender implements RecommendationRepository interface
var _ repository.RecommendationRepository = (*CachedRecommender)(nil)

// CachedRecommender кеширует ответы оракула по промпту.
// Ошибки кеша не влияют на запрос, ошибки оракула не кешируются.
type CachedRecommender struct {
	next   repository.RecommendationRepository
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRecommender оборачивает оракул кешем
func NewCachedRecommender(
	next repository.RecommendationRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *CachedRecommender {
	return &CachedRecommender{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedRecommender) Recommend(ctx context.Context, prompt string) ([]domain.RawDestination, error) {
	cached, err := c.cache.GetCandidates(ctx, prompt)
	if err != nil {
		c.logger.Warn("Oracle cache read failed", zap.Error(err))
	} else if len(cached) > 0 {
		c.logger.Debug("Oracle cache hit", zap.Int("candidates", len(cached)))
		return cached, nil
	}

	candidates, err := c.next.Recommend(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if len(candidates) > 0 {
		if err := c.cache.SetCandidates(ctx, prompt, candidates, c.ttl); err != nil {
			c.logger.Warn("Oracle cache write failed", zap.Error(err))
		}
	}

	return candidates, nil
}
