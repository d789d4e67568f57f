package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/pkg/errors"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	nameColor    = color.New(color.FgGreen, color.Bold)
	skippedColor = color.New(color.FgYellow)
	closedColor  = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

// printItinerary выводит маршрут, пропущенные места и сводку
func printItinerary(w io.Writer, r *domain.TripResult) {
	headerColor.Fprintf(w, "Itinerary from %s", r.StartLocation)
	if r.HomeAddress != "" && !strings.EqualFold(r.HomeAddress, r.StartLocation) {
		headerColor.Fprintf(w, " (return to %s)", r.HomeAddress)
	}
	fmt.Fprintln(w)

	if len(r.OptimizedRoute) == 0 {
		skippedColor.Fprintln(w, "  No destinations fit into the available time.")
	}
	for i, d := range r.OptimizedRoute {
		fmt.Fprintf(w, "%3d. ", i+1)
		nameColor.Fprint(w, d.Name)
		dimColor.Fprintf(w, "  [%s]", d.Category)
		fmt.Fprintf(w, "  rating %.1f  score %.3f\n", d.Rating, d.ScoreValue())
		dimColor.Fprintf(w, "     %d min travel + %d min visit, %.1f km\n",
			d.TravelTimeFromSource, d.VisitTime, d.DistanceFromSource)
	}

	if len(r.SkippedDestinations) > 0 {
		fmt.Fprintln(w)
		headerColor.Fprintln(w, "Skipped")
		for _, d := range r.SkippedDestinations {
			c := skippedColor
			if d.SkipReason != domain.SkipReasonInsufficientTime {
				c = closedColor
			}
			fmt.Fprint(w, "   - ")
			c.Fprintf(w, "%s", d.Name)
			dimColor.Fprintf(w, "  (%s)\n", d.SkipReason)
		}
	}

	s := r.Summary
	fmt.Fprintln(w)
	headerColor.Fprintln(w, "Summary")
	fmt.Fprintf(w, "   Visits:       %d planned, %d skipped, %d closed\n",
		s.TotalLocations, s.SkippedLocations, s.ClosedLocations)
	fmt.Fprintf(w, "   Time:         %.0f of %.0f min used (%.1f%%)\n",
		s.TotalTripTime, s.AvailableTime, s.TimeUtilization)
	fmt.Fprintf(w, "   Return home:  %.0f min\n", r.EstimatedReturnTime)
	fmt.Fprintf(w, "   Remaining:    %.0f min\n", r.RemainingTime)
	if s.TotalLocations > 0 {
		fmt.Fprintf(w, "   Avg rating:   %.2f  avg score %.2f  distance %.1f km\n",
			s.AverageRating, s.AverageScore, s.TotalDistance)
	}
}

// printError выводит ошибку планирования с кодом, если он известен
func printError(w io.Writer, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		closedColor.Fprintf(w, "%s: ", appErr.Code)
		fmt.Fprintln(w, appErr.Message)
		return
	}
	closedColor.Fprintln(w, err.Error())
}
