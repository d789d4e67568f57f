package static

import (
	"context"
	"fmt"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
)

// Ensure Unconfigured implements RecommendationRepository interface
var _ repository.RecommendationRepository = (*Unconfigured)(nil)

// Unconfigured подставляется вместо оракула без ключа: сервис стартует,
// а каждый запрос получает ошибку конфигурации
type Unconfigured struct {
	service string
}

func NewUnconfigured(service string) *Unconfigured {
	return &Unconfigured{service: service}
}

func (u *Unconfigured) Recommend(context.Context, string) ([]domain.RawDestination, error) {
	return nil, fmt.Errorf("%s: %w", u.service, domain.ErrMissingCredentials)
}
