package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/itinerary-microservice/internal/domain"
	apperrors "github.com/itinerary-microservice/internal/pkg/errors"
)

func init() {
	color.NoColor = true
}

func TestPrintItinerary(t *testing.T) {
	score := 0.555
	result := &domain.TripResult{
		StartLocation: "Town Square",
		HomeAddress:   "Station Road",
		OptimizedRoute: []*domain.Destination{
			{Name: "Old Town Museum", Category: domain.CategoryCultural, Rating: 4.5, VisitTime: 30, TravelTimeFromSource: 10, DistanceFromSource: 5, Score: &score},
		},
		SkippedDestinations: []*domain.Destination{
			{Name: "Harbor Market", SkipReason: domain.SkipReasonInsufficientTime},
			{Name: "Night Club", SkipReason: domain.SkipReasonClosed},
		},
		RemainingTime:       10,
		EstimatedReturnTime: 20,
		Summary: domain.TripSummary{
			TotalLocations: 1, SkippedLocations: 1, ClosedLocations: 1,
			TotalTripTime: 60, AvailableTime: 120, TimeUtilization: 50,
			AverageRating: 4.5, AverageScore: 0.56, TotalDistance: 5,
		},
	}

	var buf bytes.Buffer
	printItinerary(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "Itinerary from Town Square (return to Station Road)")
	assert.Contains(t, out, "  1. Old Town Museum  [cultural]")
	assert.Contains(t, out, "Harbor Market  (Insufficient time)")
	assert.Contains(t, out, "Night Club  (Currently closed)")
	assert.Contains(t, out, "1 planned, 1 skipped, 1 closed")
	assert.Contains(t, out, "60 of 120 min used (50.0%)")
}

func TestPrintItinerary_Empty(t *testing.T) {
	var buf bytes.Buffer
	printItinerary(&buf, &domain.TripResult{StartLocation: "Town Square", HomeAddress: "Town Square"})

	assert.Contains(t, buf.String(), "No destinations fit")
	assert.NotContains(t, buf.String(), "return to")
	assert.NotContains(t, buf.String(), "Avg rating")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, apperrors.ErrOracleRateLimited.Wrap(domain.ErrOracleRateLimited))
	assert.Contains(t, buf.String(), "ORACLE_RATE_LIMITED: ")

	buf.Reset()
	printError(&buf, errors.New("boom"))
	assert.Equal(t, "boom\n", buf.String())
}

func TestSplitPrefs(t *testing.T) {
	assert.Nil(t, splitPrefs("  "))
	assert.Equal(t, []string{"nature", "food"}, splitPrefs("nature, ,food"))
}
