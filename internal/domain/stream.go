package domain

import "github.com/google/uuid"

// Имена стримов
const (
	StreamTripPlan = "stream:trip:plan"
	StreamTripDone = "stream:trip:done"
)

// TripPlanEvent - входящее событие на асинхронное планирование поездки
type TripPlanEvent struct {
	TripID        uuid.UUID `json:"trip_id"`
	StartLocation string    `json:"start_location"`
	HomeAddress   string    `json:"home_address,omitempty"`
	AvailableTime float64   `json:"available_time"`
	Preferences   []string  `json:"preferences,omitempty"`
}

// ToRequest конвертирует событие в запрос планирования
func (e *TripPlanEvent) ToRequest() TripRequest {
	return TripRequest{
		StartLocation: e.StartLocation,
		HomeAddress:   e.HomeAddress,
		AvailableTime: e.AvailableTime,
		Preferences:   e.Preferences,
	}
}

// TripDoneEvent - результат планирования
type TripDoneEvent struct {
	TripID    uuid.UUID   `json:"trip_id"`
	Result    *TripResult `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
