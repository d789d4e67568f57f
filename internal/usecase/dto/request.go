package dto

import (
	"strings"

	"github.com/itinerary-microservice/internal/domain"
)

// PlanTripRequest - запрос на построение маршрута
type PlanTripRequest struct {
	StartLocation string   `json:"startLocation" validate:"required,max=300"`
	HomeAddress   string   `json:"homeAddress,omitempty" validate:"omitempty,max=300"`
	AvailableTime float64  `json:"availableTime" validate:"required,gt=0"` // часы
	Preferences   []string `json:"preferences,omitempty" validate:"omitempty,max=20,dive,max=50"`
}

// ToDomain переводит запрос в доменную модель
func (r PlanTripRequest) ToDomain() domain.TripRequest {
	return domain.TripRequest{
		StartLocation: strings.TrimSpace(r.StartLocation),
		HomeAddress:   strings.TrimSpace(r.HomeAddress),
		AvailableTime: r.AvailableTime,
		Preferences:   r.Preferences,
	}
}
