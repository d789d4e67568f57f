package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/itinerary-microservice/internal/domain"
)

// MockRecommendationRepository is a mock of RecommendationRepository
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) Recommend(ctx context.Context, prompt string) ([]domain.RawDestination, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawDestination), args.Error(1)
}

// MockGeocodingRepository is a mock of GeocodingRepository
type MockGeocodingRepository struct {
	mock.Mock
}

func (m *MockGeocodingRepository) Geocode(ctx context.Context, address string) (*domain.Coordinate, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coordinate), args.Error(1)
}

// fakePlaces отвечает из таблицы; места из hang блокируются до отмены контекста
type fakePlaces struct {
	mu    sync.Mutex
	hours map[string]*domain.PlaceHours
	errs  map[string]error
	hang  map[string]bool
	calls []string
}

func newFakePlaces() *fakePlaces {
	return &fakePlaces{
		hours: map[string]*domain.PlaceHours{},
		errs:  map[string]error{},
		hang:  map[string]bool{},
	}
}

func (f *fakePlaces) LookupHours(ctx context.Context, name string, _ domain.Location) (*domain.PlaceHours, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	hang := f.hang[name]
	err := f.errs[name]
	hours := f.hours[name]
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return hours, nil
}

func (f *fakePlaces) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func closedNow() *domain.PlaceHours {
	return &domain.PlaceHours{OpenNow: ptrBool(false)}
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

// scenarioA - три открытых места с дорогой (40, 60, 30) и возвращением (20, 10, 15) минут
func scenarioA() []*domain.Destination {
	return []*domain.Destination{
		{
			Name: "Old Town Museum", Category: domain.CategoryCultural,
			Rating: 4.5, Popularity: 8, VisitTime: 30, TravelTimeFromSource: 10,
			DistanceFromSource: 5, DistanceToSource: ptrFloat64(40.0 / 3),
		},
		{
			Name: "River Park", Category: domain.CategoryNature,
			Rating: 4.8, Popularity: 9, VisitTime: 45, TravelTimeFromSource: 15,
			DistanceFromSource: 8, DistanceToSource: ptrFloat64(20.0 / 3),
		},
		{
			Name: "Harbor Market", Category: domain.CategoryFood,
			Rating: 3.5, Popularity: 4, VisitTime: 20, TravelTimeFromSource: 10,
			DistanceFromSource: 4, DistanceToSource: ptrFloat64(10),
		},
	}
}

func rawFrom(ds []*domain.Destination) []domain.RawDestination {
	raw := make([]domain.RawDestination, len(ds))
	for i, d := range ds {
		pop := float64(d.Popularity)
		raw[i] = domain.RawDestination{
			Name:                 d.Name,
			Category:             string(d.Category),
			Rating:               d.Rating,
			Popularity:           &pop,
			VisitTime:            float64(d.VisitTime),
			TravelTimeFromSource: float64(d.TravelTimeFromSource),
			DistanceFromSource:   d.DistanceFromSource,
			DistanceToSource:     d.DistanceToSource,
		}
	}
	return raw
}

func names(ds []*domain.Destination) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}
