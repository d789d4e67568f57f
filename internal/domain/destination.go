package domain

import "strings"

// Category - категория туристического места
type Category string

const (
	CategoryCultural      Category = "cultural"
	CategoryNature        Category = "nature"
	CategoryAdventure     Category = "adventure"
	CategoryFood          Category = "food"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryHistorical    Category = "historical"
)

// Categories - все поддерживаемые категории в порядке отображения
var Categories = []Category{
	CategoryCultural,
	CategoryNature,
	CategoryAdventure,
	CategoryFood,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHistorical,
}

// ParseCategory приводит строку к категории без учёта регистра.
// Неизвестные значения сохраняются в нижнем регистре.
func ParseCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}

// IsKnown проверяет, входит ли категория в фиксированный список
func (c Category) IsKnown() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Причины пропуска места
const (
	SkipReasonClosed           = "Currently closed"
	SkipReasonClosingSoon      = "Will close during visit"
	SkipReasonInsufficientTime = "Insufficient time"
)

// Destination - рекомендованное место. Создаётся на время одного запроса
// и дополняется по мере прохождения проверки статуса и скоринга.
type Destination struct {
	Name                 string   `json:"name"`
	Category             Category `json:"category"`
	Description          string   `json:"description,omitempty"`
	Rating               float64  `json:"rating"`
	Popularity           int      `json:"popularity"`
	VisitTime            int      `json:"visitTime"`
	TravelTimeFromSource int      `json:"travelTimeFromSource"`
	DistanceFromSource   float64  `json:"distanceFromSource"`
	// DistanceToSource - расстояние до ДОМАШНЕГО адреса, а не до точки старта
	DistanceToSource *float64 `json:"distanceToSource,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	IsOpen           *bool    `json:"isOpen,omitempty"`
	WillStayOpen     *bool    `json:"willStayOpen,omitempty"`
	Score            *float64 `json:"score,omitempty"`
	SkipReason       string   `json:"skipReason,omitempty"`
}

// LegTime - время на дорогу до места плюс время посещения, в минутах
func (d *Destination) LegTime() int {
	return d.VisitTime + d.TravelTimeFromSource
}

// ReturnDistance - расстояние до дома; если неизвестно, используется
// расстояние от точки старта.
func (d *Destination) ReturnDistance() float64 {
	if d.DistanceToSource != nil {
		return *d.DistanceToSource
	}
	return d.DistanceFromSource
}

// Open - открыто ли место сейчас; неизвестный статус считается открытым
func (d *Destination) Open() bool {
	return d.IsOpen == nil || *d.IsOpen
}

// StaysOpen - останется ли место открытым на всё время визита
func (d *Destination) StaysOpen() bool {
	return d.WillStayOpen == nil || *d.WillStayOpen
}

// Viable - место можно планировать
func (d *Destination) Viable() bool {
	return d.Open() && d.StaysOpen()
}

// ClosedReason возвращает причину исключения для закрытого места
// или пустую строку, если место доступно.
func (d *Destination) ClosedReason() string {
	switch {
	case !d.Open():
		return SkipReasonClosed
	case !d.StaysOpen():
		return SkipReasonClosingSoon
	default:
		return ""
	}
}

// ApplyStatus записывает результат проверки статуса
func (d *Destination) ApplyStatus(status PlaceStatus) {
	isOpen := status.IsOpen
	willStayOpen := status.WillStayOpen
	d.IsOpen = &isOpen
	d.WillStayOpen = &willStayOpen
}

// ScoreValue возвращает score или 0, если место ещё не оценено
func (d *Destination) ScoreValue() float64 {
	if d.Score == nil {
		return 0
	}
	return *d.Score
}

// Coordinate возвращает координаты места, если оракул их прислал
func (d *Destination) Coordinate() *Coordinate {
	if d.Latitude == nil || d.Longitude == nil {
		return nil
	}
	return &Coordinate{Lat: *d.Latitude, Lon: *d.Longitude}
}

// RawDestination - кандидат в том виде, в котором его вернул оракул.
// Числовые поля приходят как float и нормализуются отдельно.
type RawDestination struct {
	Name                 string   `json:"name"`
	Category             string   `json:"category"`
	Description          string   `json:"description,omitempty"`
	Rating               float64  `json:"rating"`
	Popularity           *float64 `json:"popularity,omitempty"`
	VisitTime            float64  `json:"visitTime"`
	TravelTimeFromSource float64  `json:"travelTimeFromSource"`
	DistanceFromSource   float64  `json:"distanceFromSource"`
	DistanceToSource     *float64 `json:"distanceToSource,omitempty"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
}
