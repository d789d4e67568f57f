package app

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/config"
	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/infrastructure/gemini"
	"github.com/itinerary-microservice/internal/infrastructure/static"
	apperrors "github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/repository/cache"
	"github.com/itinerary-microservice/internal/usecase/dto"
)

func testConfig() *config.Config {
	return &config.Config{
		Gemini: config.GeminiConfig{
			Model:          "gemini-2.5-flash",
			RequestTimeout: 5 * time.Second,
			MaxCandidates:  10,
		},
		GoogleMaps: config.GoogleMapsConfig{RequestTimeout: time.Second, SearchRadius: 20000},
		Planner:    config.PlannerConfig{MaxParallelLookups: 4},
		Cache:      config.CacheConfig{PlacesCacheTTL: time.Hour},
	}
}

func TestNewOracle_MissingKey(t *testing.T) {
	cfg := testConfig()
	oracle, err := NewOracle(context.Background(), cfg, nil, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &static.Unconfigured{}, oracle)

	uc, err := NewTripUseCase(cfg, oracle, nil, zap.NewNop())
	require.NoError(t, err)

	_, err = uc.PlanTrip(context.Background(), dto.PlanTripRequest{StartLocation: "Valencia", AvailableTime: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestNewOracle_Gemini(t *testing.T) {
	cfg := testConfig()
	cfg.Gemini.APIKey = "test-key"

	oracle, err := NewOracle(context.Background(), cfg, nil, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &gemini.Client{}, oracle)
}

func TestNewOracle_CachedWhenRedisConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	redis, err := cache.NewRedis(&config.RedisConfig{Host: mr.Host(), Port: port}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = redis.Close() })

	cfg := testConfig()
	cfg.Gemini.APIKey = "test-key"
	cfg.Cache.OracleCacheTTL = time.Hour

	oracle, err := NewOracle(context.Background(), cfg, redis, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &cache.CachedRecommender{}, oracle)

	// TTL 0 отключает кеш
	cfg.Cache.OracleCacheTTL = 0
	oracle, err = NewOracle(context.Background(), cfg, redis, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &gemini.Client{}, oracle)
}

func TestNewDirectory(t *testing.T) {
	cfg := testConfig()

	dir, err := NewDirectory(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, dir)

	cfg.GoogleMaps.APIKey = "test-key"
	dir, err = NewDirectory(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, dir)
}

func TestNewTripUseCase_StaticOracle(t *testing.T) {
	pop := 9.0
	oracle := static.NewOracle([]domain.RawDestination{
		{Name: "Ciutat de les Arts i les Ciències", Category: "cultural", Rating: 4.7, Popularity: &pop, VisitTime: 90, TravelTimeFromSource: 15, DistanceFromSource: 4},
		{Name: "Albufera Natural Park", Category: "nature", Rating: 4.5, VisitTime: 120, TravelTimeFromSource: 30, DistanceFromSource: 15},
	})

	uc, err := NewTripUseCase(testConfig(), oracle, nil, zap.NewNop())
	require.NoError(t, err)

	result, err := uc.PlanTrip(context.Background(), dto.PlanTripRequest{
		StartLocation: "Valencia",
		AvailableTime: 2,
		Preferences:   []string{"cultural"},
	})
	require.NoError(t, err)

	require.Len(t, result.OptimizedRoute, 1)
	assert.Equal(t, "Ciutat de les Arts i les Ciències", result.OptimizedRoute[0].Name)
	require.Len(t, result.SkippedDestinations, 1)
	assert.Equal(t, domain.SkipReasonInsufficientTime, result.SkippedDestinations[0].SkipReason)
}
