package repository

import (
	"context"

	"github.com/itinerary-microservice/internal/domain"
)

// PlacesRepository - справочник мест с режимом работы
type PlacesRepository interface {
	// LookupHours ищет место по названию рядом с near.
	// Возвращает nil, nil если место не найдено.
	LookupHours(ctx context.Context, name string, near domain.Location) (*domain.PlaceHours, error)
}

// GeocodingRepository определяет методы геокодирования адресов
type GeocodingRepository interface {
	// Geocode возвращает координаты адреса
	Geocode(ctx context.Context, address string) (*domain.Coordinate, error)
}
