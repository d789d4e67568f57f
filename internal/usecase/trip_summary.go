package usecase

import (
	"math"

	"github.com/itinerary-microservice/internal/domain"
)

// BuildSummary агрегирует статистику маршрута. Время возвращения и остаток
// берутся из расписания как есть.
func BuildSummary(schedule *Schedule, closed []*domain.Destination, availableMinutes float64) domain.TripSummary {
	summary := domain.TripSummary{
		SkippedLocations: len(schedule.Skipped) + len(closed),
		ClosedLocations:  len(closed),
		ReturnTime:       schedule.ReturnTime,
		AvailableTime:    availableMinutes,
		Categories:       make([]domain.Category, 0),
	}

	route := schedule.Route
	summary.TotalLocations = len(route)
	if len(route) == 0 {
		return summary
	}

	var ratingSum, scoreSum, distanceSum float64
	seen := make(map[domain.Category]struct{}, len(route))

	for _, d := range route {
		ratingSum += d.Rating
		scoreSum += d.ScoreValue()
		distanceSum += d.DistanceFromSource
		summary.TotalVisitTime += d.VisitTime
		summary.TotalTravelTime += d.TravelTimeFromSource

		if _, ok := seen[d.Category]; !ok {
			seen[d.Category] = struct{}{}
			summary.Categories = append(summary.Categories, d.Category)
		}
	}

	n := float64(len(route))
	summary.AverageRating = round2(ratingSum / n)
	summary.AverageScore = round2(scoreSum / n)
	summary.TotalDistance = round2(distanceSum)

	tripTime := float64(summary.TotalVisitTime+summary.TotalTravelTime) + schedule.ReturnTime
	summary.TotalTripTime = round2(tripTime)
	if availableMinutes > 0 {
		summary.TimeUtilization = round2(tripTime / availableMinutes * 100)
	}

	return summary
}

// BuildResult собирает итоговый ответ
func BuildResult(
	req domain.TripRequest,
	schedule *Schedule,
	closed []*domain.Destination,
) *domain.TripResult {
	available := req.AvailableMinutes()

	skipped := make([]*domain.Destination, 0, len(schedule.Skipped)+len(closed))
	skipped = append(skipped, schedule.Skipped...)
	skipped = append(skipped, closed...)

	return &domain.TripResult{
		StartLocation:       req.StartLocation,
		HomeAddress:         req.Home(),
		OptimizedRoute:      schedule.Route,
		SkippedDestinations: skipped,
		RemainingTime:       schedule.DisplayRemaining(),
		EstimatedReturnTime: schedule.ReturnTime,
		Summary:             BuildSummary(schedule, closed, available),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
