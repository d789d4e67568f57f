// Package static - оракул с фиксированным набором кандидатов
package static

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
)

// Ensure Oracle implements RecommendationRepository interface
var _ repository.RecommendationRepository = (*Oracle)(nil)

// Oracle всегда возвращает один и тот же список кандидатов, независимо от промпта
type Oracle struct {
	candidates []domain.RawDestination
}

// NewOracle создает оракул из готового списка
func NewOracle(candidates []domain.RawDestination) *Oracle {
	return &Oracle{candidates: candidates}
}

// LoadOracle читает кандидатов из JSON файла: массив или {"destinations": [...]}
func LoadOracle(path string) (*Oracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}

	var list []domain.RawDestination
	if err := json.Unmarshal(data, &list); err == nil {
		return NewOracle(list), nil
	}

	var wrapped struct {
		Destinations []domain.RawDestination `json:"destinations"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse candidates file %s: %w", path, err)
	}
	return NewOracle(wrapped.Destinations), nil
}

// Recommend возвращает копию списка кандидатов
func (o *Oracle) Recommend(ctx context.Context, _ string) ([]domain.RawDestination, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}
	out := make([]domain.RawDestination, len(o.candidates))
	copy(out, o.candidates)
	return out, nil
}
