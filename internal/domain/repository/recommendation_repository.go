package repository

import (
	"context"

	"github.com/itinerary-microservice/internal/domain"
)

// RecommendationRepository - внешний оракул, предлагающий кандидатов по текстовому промпту
type RecommendationRepository interface {
	// Recommend возвращает неупорядоченный список кандидатов.
	// Ошибки оборачивают domain.ErrOracle* и domain.ErrMissingCredentials.
	Recommend(ctx context.Context, prompt string) ([]domain.RawDestination, error)
}
