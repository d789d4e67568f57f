package domain

import "time"

// Coordinate - географическая точка
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location - адрес, к которому при возможности привязаны координаты
type Location struct {
	Address    string      `json:"address"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

// PlaceStatus - результат проверки режима работы места
type PlaceStatus struct {
	IsOpen       bool `json:"isOpen"`
	WillStayOpen bool `json:"willStayOpen"`
}

// OpenStatus - статус по умолчанию, когда данных о месте нет
var OpenStatus = PlaceStatus{IsOpen: true, WillStayOpen: true}

const minutesPerDay = 24 * 60

// MinutesPerWeek - длина недели в минутах
const MinutesPerWeek = 7 * minutesPerDay

// WeeklyTime - момент недели: день и минута от полуночи (локальное время места)
type WeeklyTime struct {
	Day    time.Weekday `json:"day"`
	Minute int          `json:"minute"`
}

// Offset - минут от начала недели (воскресенье 00:00)
func (w WeeklyTime) Offset() int {
	return int(w.Day)*minutesPerDay + w.Minute
}

// WeeklyTimeOf переводит время в момент недели
func WeeklyTimeOf(t time.Time) WeeklyTime {
	return WeeklyTime{Day: t.Weekday(), Minute: t.Hour()*60 + t.Minute()}
}

// OpeningPeriod - интервал работы. Close == nil означает круглосуточную работу.
type OpeningPeriod struct {
	Open  WeeklyTime  `json:"open"`
	Close *WeeklyTime `json:"close,omitempty"`
}

// PlaceHours - данные справочника мест о найденном месте
type PlaceHours struct {
	PlaceID string `json:"placeId"`
	Name    string `json:"name"`
	// OpenNow == nil, если справочник не вернул текущий флаг
	OpenNow          *bool           `json:"openNow,omitempty"`
	Periods          []OpeningPeriod `json:"periods,omitempty"`
	UTCOffsetMinutes *int            `json:"utcOffsetMinutes,omitempty"`
}

// HasStructuredHours - есть ли у места хоть какие-то данные о режиме работы
func (h *PlaceHours) HasStructuredHours() bool {
	return h != nil && (h.OpenNow != nil || len(h.Periods) > 0)
}
