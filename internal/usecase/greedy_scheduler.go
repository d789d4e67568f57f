package usecase

import (
	"math"

	"github.com/itinerary-microservice/internal/domain"
)

// AverageSpeedKmh - средняя скорость, по которой оценивается дорога домой
const AverageSpeedKmh = 40.0

// ReturnMinutes - время возвращения домой от места, в минутах
func ReturnMinutes(d *domain.Destination) float64 {
	return d.ReturnDistance() / AverageSpeedKmh * 60
}

// Schedule - результат работы GreedyScheduler
type Schedule struct {
	Route   []*domain.Destination
	Skipped []*domain.Destination
	// Accumulated - сумма visitTime + travelTimeFromSource по принятым местам
	Accumulated int
	// ReturnTime - дорога домой от последнего принятого места
	ReturnTime float64
	// Remaining может быть отрицательным; для ответа обрезается до 0
	Remaining float64
}

// DisplayRemaining - остаток времени для ответа
func (s *Schedule) DisplayRemaining() float64 {
	return math.Max(0, s.Remaining)
}

// GreedyScheduler выбирает места по убыванию score за один проход,
// без возврата к отклонённым кандидатам.
type GreedyScheduler struct{}

// NewGreedyScheduler создает новый GreedyScheduler
func NewGreedyScheduler() *GreedyScheduler {
	return &GreedyScheduler{}
}

// Schedule строит маршрут из отсортированных открытых мест
func (s *GreedyScheduler) Schedule(sorted []*domain.Destination, availableMinutes float64) *Schedule {
	result := &Schedule{
		Route:   make([]*domain.Destination, 0, len(sorted)),
		Skipped: make([]*domain.Destination, 0),
	}

	for _, d := range sorted {
		projected := result.Accumulated + d.LegTime()

		if float64(projected)+ReturnMinutes(d) <= availableMinutes {
			d.SkipReason = ""
			result.Route = append(result.Route, d)
			result.Accumulated = projected
			continue
		}

		d.SkipReason = domain.SkipReasonInsufficientTime
		result.Skipped = append(result.Skipped, d)
	}

	if n := len(result.Route); n > 0 {
		result.ReturnTime = ReturnMinutes(result.Route[n-1])
	}
	result.Remaining = availableMinutes - (float64(result.Accumulated) + result.ReturnTime)

	return result
}

// SkipClosed помечает закрытые места причиной исключения
func SkipClosed(closed []*domain.Destination) []*domain.Destination {
	for _, d := range closed {
		d.SkipReason = d.ClosedReason()
	}
	return closed
}
