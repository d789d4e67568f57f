package usecase

import (
	"math"
	"strings"

	"github.com/itinerary-microservice/internal/domain"
)

const (
	defaultPopularity = 5
	defaultVisitTime  = 60
)

// NormalizeCandidates приводит ответ оракула к списку Destination.
// Кандидаты без названия отбрасываются, порядок остальных сохраняется.
func NormalizeCandidates(raw []domain.RawDestination) []*domain.Destination {
	out := make([]*domain.Destination, 0, len(raw))
	for _, r := range raw {
		if d := NormalizeCandidate(r); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// NormalizeCandidate нормализует одного кандидата; nil если у него нет названия
func NormalizeCandidate(r domain.RawDestination) *domain.Destination {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil
	}

	popularity := defaultPopularity
	if r.Popularity != nil {
		popularity = clampInt(int(math.Round(*r.Popularity)), 1, 10)
	}

	visit := int(math.Round(r.VisitTime))
	if visit <= 0 {
		visit = defaultVisitTime
	}

	d := &domain.Destination{
		Name:                 name,
		Category:             domain.ParseCategory(r.Category),
		Description:          strings.TrimSpace(r.Description),
		Rating:               math.Min(math.Max(r.Rating, 0), 5),
		Popularity:           popularity,
		VisitTime:            visit,
		TravelTimeFromSource: max(int(math.Round(r.TravelTimeFromSource)), 0),
		DistanceFromSource:   math.Max(r.DistanceFromSource, 0),
	}

	if r.DistanceToSource != nil {
		v := math.Max(*r.DistanceToSource, 0)
		d.DistanceToSource = &v
	}
	if r.Latitude != nil && r.Longitude != nil {
		lat, lon := *r.Latitude, *r.Longitude
		d.Latitude = &lat
		d.Longitude = &lon
	}

	return d
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
