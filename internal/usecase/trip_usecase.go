package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/pkg/utils"
	"github.com/itinerary-microservice/internal/pkg/validator"
	"github.com/itinerary-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// DefaultOracleTimeout - общий таймаут запроса к оракулу, включая повторы
const DefaultOracleTimeout = 30 * time.Second

// TripPlanner - интерфейс планировщика, от которого зависят handler и worker
type TripPlanner interface {
	PlanTrip(ctx context.Context, req dto.PlanTripRequest) (*domain.TripResult, error)
}

// Ensure TripUseCase implements TripPlanner interface
var _ TripPlanner = (*TripUseCase)(nil)

// TripUseCase - построение маршрута: кандидаты от оракула, проверка статуса,
// скоринг, жадный отбор и сводка.
type TripUseCase struct {
	oracle         repository.RecommendationRepository
	geocoder       repository.GeocodingRepository
	verifier       *StatusVerifier
	scorer         *ScoreModel
	scheduler      *GreedyScheduler
	candidateCount int
	oracleTimeout  time.Duration
	logger         *zap.Logger
}

// TripUseCaseOptions - параметры TripUseCase
type TripUseCaseOptions struct {
	CandidateCount int
	OracleTimeout  time.Duration
}

// NewTripUseCase создает новый TripUseCase. geocoder может быть nil,
// тогда расстояние до дома берётся только из ответа оракула.
func NewTripUseCase(
	oracle repository.RecommendationRepository,
	geocoder repository.GeocodingRepository,
	verifier *StatusVerifier,
	scorer *ScoreModel,
	scheduler *GreedyScheduler,
	opts TripUseCaseOptions,
	logger *zap.Logger,
) *TripUseCase {
	if opts.CandidateCount <= 0 {
		opts.CandidateCount = DefaultCandidateCount
	}
	if opts.OracleTimeout <= 0 {
		opts.OracleTimeout = DefaultOracleTimeout
	}
	return &TripUseCase{
		oracle:         oracle,
		geocoder:       geocoder,
		verifier:       verifier,
		scorer:         scorer,
		scheduler:      scheduler,
		candidateCount: opts.CandidateCount,
		oracleTimeout:  opts.OracleTimeout,
		logger:         logger,
	}
}

// PlanTrip строит маршрут по запросу пользователя
func (uc *TripUseCase) PlanTrip(ctx context.Context, in dto.PlanTripRequest) (*domain.TripResult, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	req := in.ToDomain()
	if req.StartLocation == "" {
		return nil, errors.ErrInvalidRequest.WithMessage("startLocation is required")
	}

	log := uc.logger.With(
		zap.String("start_location", req.StartLocation),
		zap.String("home_address", req.Home()),
		zap.Float64("available_hours", req.AvailableTime),
		zap.Strings("preferences", req.Preferences))

	start := time.Now()

	candidates, err := uc.recommend(ctx, req)
	if err != nil {
		log.Error("Failed to get recommendations from oracle", zap.Error(err))
		return nil, mapOracleError(err)
	}

	log.Info("Oracle returned candidates", zap.Int("candidates", len(candidates)))

	uc.enrichReturnDistance(ctx, req, candidates, log)

	result := uc.Optimize(ctx, req, candidates)

	log.Info("Trip planned",
		zap.Int("route", len(result.OptimizedRoute)),
		zap.Int("skipped", len(result.SkippedDestinations)),
		zap.Float64("remaining_minutes", result.RemainingTime),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

// Optimize проверяет статус кандидатов, оценивает и отбирает их в маршрут
func (uc *TripUseCase) Optimize(
	ctx context.Context,
	req domain.TripRequest,
	candidates []*domain.Destination,
) *domain.TripResult {
	available := req.AvailableMinutes()

	uc.verifier.VerifyAll(ctx, candidates, ReferenceLocation(req.StartLocation))

	open := make([]*domain.Destination, 0, len(candidates))
	closed := make([]*domain.Destination, 0)
	for _, d := range candidates {
		if d.Viable() {
			open = append(open, d)
		} else {
			closed = append(closed, d)
		}
	}
	SkipClosed(closed)

	if len(open) == 0 {
		uc.logger.Info("No viable destinations, all candidates closed",
			zap.String("start_location", req.StartLocation),
			zap.Int("closed", len(closed)))
		return BuildResult(req, &Schedule{
			Route:     []*domain.Destination{},
			Skipped:   []*domain.Destination{},
			Remaining: available,
		}, closed)
	}

	uc.scorer.ScoreAll(open, req.ActivePreferences())
	SortByScore(open)

	schedule := uc.scheduler.Schedule(open, available)
	if schedule.Remaining < 0 {
		uc.logger.Error("Schedule exceeds available time",
			zap.Float64("available_minutes", available),
			zap.Int("accumulated_minutes", schedule.Accumulated),
			zap.Float64("return_minutes", schedule.ReturnTime))
	}

	return BuildResult(req, schedule, closed)
}

func (uc *TripUseCase) recommend(ctx context.Context, req domain.TripRequest) ([]*domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.oracleTimeout)
	defer cancel()

	raw, err := uc.oracle.Recommend(ctx, BuildPrompt(req, uc.candidateCount))
	if err != nil {
		return nil, err
	}
	return NormalizeCandidates(raw), nil
}

// enrichReturnDistance досчитывает расстояние до дома, если дом не совпадает
// с точкой старта и оракул не указал его сам
func (uc *TripUseCase) enrichReturnDistance(
	ctx context.Context,
	req domain.TripRequest,
	candidates []*domain.Destination,
	log *zap.Logger,
) {
	if req.ReturnsToStart() {
		return
	}

	home := ReferenceLocation(req.Home()).Coordinate
	if home == nil && uc.geocoder != nil {
		coord, err := uc.geocoder.Geocode(ctx, req.Home())
		if err != nil {
			log.Warn("Failed to geocode home address, using distance from start", zap.Error(err))
			return
		}
		home = coord
	}
	if home == nil {
		return
	}

	enriched := 0
	for _, d := range candidates {
		c := d.Coordinate()
		if d.DistanceToSource != nil || c == nil {
			continue
		}
		dist := round2(utils.HaversineDistance(c.Lat, c.Lon, home.Lat, home.Lon))
		d.DistanceToSource = &dist
		enriched++
	}

	log.Debug("Return distances computed", zap.Int("enriched", enriched))
}

// ReferenceLocation строит опорную точку для поиска мест; строка "lat,lng"
// разбирается в координаты
func ReferenceLocation(address string) domain.Location {
	loc := domain.Location{Address: address}
	if lat, lon, ok := utils.ParseCoordinates(address); ok {
		loc.Coordinate = &domain.Coordinate{Lat: lat, Lon: lon}
	}
	return loc
}

// mapOracleError сопоставляет ошибки оракула с ошибками API
func mapOracleError(err error) error {
	var appErr *errors.AppError
	switch {
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.Is(err, domain.ErrMissingCredentials):
		return errors.ErrConfiguration.Wrap(err)
	case stderrors.Is(err, domain.ErrOracleQuotaExhausted):
		return errors.ErrOracleQuotaExhausted.Wrap(err)
	case stderrors.Is(err, domain.ErrOracleRateLimited):
		return errors.ErrOracleRateLimited.Wrap(err)
	case stderrors.Is(err, domain.ErrOracleMalformed):
		return errors.ErrOracleBadResponse.Wrap(err)
	default:
		return errors.ErrOracleUnavailable.Wrap(err)
	}
}
