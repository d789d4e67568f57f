package dto

import "github.com/itinerary-microservice/internal/domain"

// CategoriesResponse - список поддерживаемых категорий
type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// HealthResponse - ответ health check
type HealthResponse struct {
	Status string `json:"status"`
	Time   int64  `json:"time"`
}
