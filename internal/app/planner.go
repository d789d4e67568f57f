// Package app собирает движок планирования из конфигурации; используется
// HTTP сервисом, воркером и CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/itinerary-microservice/internal/config"
	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/infrastructure/gemini"
	"github.com/itinerary-microservice/internal/infrastructure/googlemaps"
	"github.com/itinerary-microservice/internal/infrastructure/static"
	"github.com/itinerary-microservice/internal/repository/cache"
	"github.com/itinerary-microservice/internal/usecase"
	"go.uber.org/zap"
)

// NewOracle создает оракул Gemini. Без ключа возвращает оракул, отвечающий
// ошибкой конфигурации на каждый запрос. redis может быть nil.
func NewOracle(
	ctx context.Context,
	cfg *config.Config,
	redis *cache.Redis,
	logger *zap.Logger,
) (repository.RecommendationRepository, error) {
	var oracle repository.RecommendationRepository

	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:         cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		BaseURL:        cfg.Gemini.BaseURL,
		RequestTimeout: cfg.Gemini.RequestTimeout,
	}, logger)
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		logger.Warn("GEMINI_API_KEY is not set, trip planning requests will fail with CONFIGURATION_ERROR")
		return static.NewUnconfigured("gemini"), nil
	case err != nil:
		return nil, fmt.Errorf("failed to init gemini: %w", err)
	default:
		oracle = client
	}

	if redis != nil && cfg.Cache.OracleCacheTTL > 0 {
		logger.Info("Oracle response cache enabled", zap.Duration("ttl", cfg.Cache.OracleCacheTTL))
		oracle = cache.NewCachedRecommender(oracle, cache.NewCacheRepository(redis), cfg.Cache.OracleCacheTTL, logger)
	}

	return oracle, nil
}

// NewDirectory создает клиента Google Maps. Без ключа возвращает nil:
// режим работы не проверяется и все места считаются открытыми.
func NewDirectory(cfg *config.Config, logger *zap.Logger) (*googlemaps.Client, error) {
	client, err := googlemaps.NewClient(&cfg.GoogleMaps, cfg.Cache.PlacesCacheTTL, logger)
	if errors.Is(err, domain.ErrMissingCredentials) {
		logger.Warn("GOOGLE_MAPS_API_KEY is not set, opening hours will not be verified")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to init google maps: %w", err)
	}
	return client, nil
}

// NewTripUseCase собирает TripUseCase вокруг заданного оракула. directory может быть nil.
func NewTripUseCase(
	cfg *config.Config,
	oracle repository.RecommendationRepository,
	directory *googlemaps.Client,
	logger *zap.Logger,
) (*usecase.TripUseCase, error) {
	scorer, err := usecase.NewScoreModel(usecase.DefaultScoreWeights)
	if err != nil {
		return nil, err
	}

	// nil *googlemaps.Client нельзя класть в интерфейс как есть
	var (
		places   repository.PlacesRepository
		geocoder repository.GeocodingRepository
	)
	if directory != nil {
		places = directory
		geocoder = directory
	}

	verifier := usecase.NewStatusVerifier(
		places,
		logger,
		cfg.GoogleMaps.RequestTimeout,
		cfg.Planner.MaxParallelLookups,
	)

	return usecase.NewTripUseCase(
		oracle,
		geocoder,
		verifier,
		scorer,
		usecase.NewGreedyScheduler(),
		usecase.TripUseCaseOptions{
			CandidateCount: cfg.Gemini.MaxCandidates,
			OracleTimeout:  cfg.Gemini.RequestTimeout,
		},
		logger,
	), nil
}
