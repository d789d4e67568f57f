package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/itinerary-microservice/internal/domain"
)

// ScoreWeights - веса компонентов итогового score
type ScoreWeights struct {
	Rating     float64
	Distance   float64
	Time       float64
	Preference float64
	Popularity float64
}

// DefaultScoreWeights - веса по умолчанию
var DefaultScoreWeights = ScoreWeights{
	Rating:     0.30,
	Distance:   0.25,
	Time:       0.20,
	Preference: 0.15,
	Popularity: 0.10,
}

// Sum - сумма весов
func (w ScoreWeights) Sum() float64 {
	return w.Rating + w.Distance + w.Time + w.Preference + w.Popularity
}

const (
	preferenceMatch   = 1.0
	preferenceMiss    = 0.3
	preferenceNeutral = 0.5
)

// ScoreModel вычисляет привлекательность места относительно набора кандидатов
type ScoreModel struct {
	weights ScoreWeights
}

// NewScoreModel создает модель; веса должны давать в сумме 1.0
func NewScoreModel(weights ScoreWeights) (*ScoreModel, error) {
	if math.Abs(weights.Sum()-1.0) > 1e-9 {
		return nil, fmt.Errorf("score weights must sum to 1.0, got %.4f", weights.Sum())
	}
	return &ScoreModel{weights: weights}, nil
}

// ScoreContext - знаменатели нормализации, общие для всего набора
type ScoreContext struct {
	MaxDistance float64
	MaxLegTime  int
	Preferences []string
}

// NewScoreContext считает максимумы по набору открытых кандидатов
func NewScoreContext(set []*domain.Destination, preferences []string) ScoreContext {
	sc := ScoreContext{Preferences: preferences}
	for _, d := range set {
		if d.DistanceFromSource > sc.MaxDistance {
			sc.MaxDistance = d.DistanceFromSource
		}
		if leg := d.LegTime(); leg > sc.MaxLegTime {
			sc.MaxLegTime = leg
		}
	}
	return sc
}

// Score возвращает взвешенный score места в диапазоне [0,1]
func (m *ScoreModel) Score(d *domain.Destination, sc ScoreContext) float64 {
	w := m.weights

	total := w.Rating*clamp01(d.Rating/5.0) +
		w.Distance*distanceScore(d, sc.MaxDistance) +
		w.Time*timeScore(d, sc.MaxLegTime) +
		w.Preference*PreferenceScore(d.Category, sc.Preferences) +
		w.Popularity*clamp01(float64(d.Popularity)/10.0)

	return clamp01(total)
}

// ScoreAll оценивает весь набор и записывает score в каждое место
func (m *ScoreModel) ScoreAll(set []*domain.Destination, preferences []string) {
	sc := NewScoreContext(set, preferences)
	for _, d := range set {
		score := m.Score(d, sc)
		d.Score = &score
	}
}

// SortByScore сортирует по убыванию score; при равенстве сохраняется исходный порядок
func SortByScore(set []*domain.Destination) {
	sort.SliceStable(set, func(i, j int) bool {
		return set[i].ScoreValue() > set[j].ScoreValue()
	})
}

// PreferenceScore сравнивает категорию с предпочтениями (подстрока в любую сторону)
func PreferenceScore(category domain.Category, preferences []string) float64 {
	cat := strings.ToLower(strings.TrimSpace(string(category)))

	given := false
	for _, p := range preferences {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		given = true
		if cat != "" && (strings.Contains(cat, p) || strings.Contains(p, cat)) {
			return preferenceMatch
		}
	}

	if !given {
		return preferenceNeutral
	}
	return preferenceMiss
}

func distanceScore(d *domain.Destination, maxDistance float64) float64 {
	if maxDistance <= 0 {
		return 1
	}
	return clamp01(1 - d.DistanceFromSource/maxDistance)
}

func timeScore(d *domain.Destination, maxLeg int) float64 {
	if maxLeg <= 0 {
		return 1
	}
	return clamp01(1 - float64(d.LegTime())/float64(maxLeg))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
