package domain

import "strings"

// TripRequest - параметры планирования поездки
type TripRequest struct {
	StartLocation string
	HomeAddress   string
	// AvailableTime - бюджет времени в часах
	AvailableTime float64
	Preferences   []string
}

// Home возвращает адрес возвращения; по умолчанию совпадает с точкой старта
func (r TripRequest) Home() string {
	if strings.TrimSpace(r.HomeAddress) == "" {
		return r.StartLocation
	}
	return r.HomeAddress
}

// ReturnsToStart - возвращается ли путешественник в точку старта
func (r TripRequest) ReturnsToStart() bool {
	return strings.EqualFold(strings.TrimSpace(r.Home()), strings.TrimSpace(r.StartLocation))
}

// AvailableMinutes - бюджет времени в минутах
func (r TripRequest) AvailableMinutes() float64 {
	return r.AvailableTime * 60
}

// ActivePreferences возвращает непустые предпочтения без пробелов по краям
func (r TripRequest) ActivePreferences() []string {
	prefs := make([]string, 0, len(r.Preferences))
	for _, p := range r.Preferences {
		if p = strings.TrimSpace(p); p != "" {
			prefs = append(prefs, p)
		}
	}
	return prefs
}

// TripSummary - агрегированная статистика маршрута
type TripSummary struct {
	TotalLocations   int        `json:"totalLocations"`
	SkippedLocations int        `json:"skippedLocations"`
	ClosedLocations  int        `json:"closedLocations"`
	AverageRating    float64    `json:"averageRating"`
	AverageScore     float64    `json:"averageScore"`
	TotalDistance    float64    `json:"totalDistance"`
	TotalVisitTime   int        `json:"totalVisitTime"`
	TotalTravelTime  int        `json:"totalTravelTime"`
	ReturnTime       float64    `json:"returnTime"`
	TotalTripTime    float64    `json:"totalTripTime"`
	AvailableTime    float64    `json:"availableTime"`
	TimeUtilization  float64    `json:"timeUtilization"`
	Categories       []Category `json:"categories"`
}

// TripResult - итоговый маршрут
type TripResult struct {
	StartLocation       string         `json:"startLocation"`
	HomeAddress         string         `json:"homeAddress"`
	OptimizedRoute      []*Destination `json:"optimizedRoute"`
	SkippedDestinations []*Destination `json:"skippedDestinations"`
	RemainingTime       float64        `json:"remainingTime"`
	EstimatedReturnTime float64        `json:"estimatedReturnTime"`
	Summary             TripSummary    `json:"summary"`
}
