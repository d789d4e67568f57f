package usecase

import (
	"context"
	"time"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLookupTimeout - таймаут одного запроса к справочнику мест
	DefaultLookupTimeout = 5 * time.Second
	// DefaultMaxParallelLookups - сколько проверок статуса выполняется одновременно
	DefaultMaxParallelLookups = 8
)

// StatusVerifier проверяет, открыто ли место и успеет ли путешественник
// закончить визит до закрытия. Любая неопределённость трактуется как "открыто".
type StatusVerifier struct {
	places      repository.PlacesRepository
	logger      *zap.Logger
	timeout     time.Duration
	maxParallel int
	now         func() time.Time
}

// NewStatusVerifier создает новый StatusVerifier. places может быть nil,
// тогда все места считаются открытыми.
func NewStatusVerifier(
	places repository.PlacesRepository,
	logger *zap.Logger,
	timeout time.Duration,
	maxParallel int,
) *StatusVerifier {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallelLookups
	}
	return &StatusVerifier{
		places:      places,
		logger:      logger,
		timeout:     timeout,
		maxParallel: maxParallel,
		now:         time.Now,
	}
}

// WithClock подменяет источник текущего времени
func (v *StatusVerifier) WithClock(now func() time.Time) *StatusVerifier {
	v.now = now
	return v
}

// Verify проверяет одно место
func (v *StatusVerifier) Verify(
	ctx context.Context,
	name string,
	reference domain.Location,
	visitMinutes int,
) domain.PlaceStatus {
	if v.places == nil {
		return domain.OpenStatus
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	hours, err := v.places.LookupHours(ctx, name, reference)
	if err != nil {
		v.logger.Warn("Place lookup failed, assuming open",
			zap.String("place", name),
			zap.String("reference", reference.Address),
			zap.Error(err))
		return domain.OpenStatus
	}
	if !hours.HasStructuredHours() {
		v.logger.Debug("No structured hours for place, assuming open",
			zap.String("place", name),
			zap.Bool("found", hours != nil))
		return domain.OpenStatus
	}

	return EvaluateHours(hours, v.now(), visitMinutes)
}

// VerifyAll проверяет все места параллельно и записывает статус в каждое.
// Ждёт завершения всех проверок; ошибка одной проверки не влияет на остальные.
func (v *StatusVerifier) VerifyAll(
	ctx context.Context,
	destinations []*domain.Destination,
	reference domain.Location,
) {
	statuses := make([]domain.PlaceStatus, len(destinations))

	g := new(errgroup.Group)
	g.SetLimit(v.maxParallel)

	for i, d := range destinations {
		g.Go(func() error {
			statuses[i] = v.Verify(ctx, d.Name, reference, d.VisitTime)
			return nil
		})
	}
	_ = g.Wait()

	for i, d := range destinations {
		d.ApplyStatus(statuses[i])
	}
}

// EvaluateHours вычисляет статус по данным справочника на момент now.
// now переводится в локальное время места, если известен его UTC offset.
func EvaluateHours(hours *domain.PlaceHours, now time.Time, visitMinutes int) domain.PlaceStatus {
	if !hours.HasStructuredHours() {
		return domain.OpenStatus
	}

	if hours.UTCOffsetMinutes != nil {
		now = now.UTC().Add(time.Duration(*hours.UTCOffsetMinutes) * time.Minute)
	}
	current := domain.WeeklyTimeOf(now).Offset()

	untilClose, inPeriod := minutesUntilClose(hours.Periods, current)

	isOpen := inPeriod
	if hours.OpenNow != nil {
		isOpen = *hours.OpenNow
	} else if len(hours.Periods) == 0 {
		isOpen = true
	}
	if !isOpen {
		return domain.PlaceStatus{IsOpen: false, WillStayOpen: false}
	}

	if !inPeriod {
		untilClose = minutesUntilClosingToday(hours.Periods, current)
	}
	if untilClose < 0 {
		return domain.OpenStatus
	}

	return domain.PlaceStatus{
		IsOpen:       true,
		WillStayOpen: visitMinutes <= untilClose,
	}
}

// minutesUntilClose ищет период, содержащий current, и возвращает минуты до
// его закрытия (минимум по всем подходящим периодам). -1 означает, что
// содержащий период работает без закрытия.
func minutesUntilClose(periods []domain.OpeningPeriod, current int) (int, bool) {
	best := -1
	found := false

	for _, p := range periods {
		open := p.Open.Offset()
		if p.Close == nil {
			// Круглосуточно: открыт, закрытия нет
			found = true
			continue
		}
		closeAt := p.Close.Offset()
		if closeAt <= open {
			closeAt += domain.MinutesPerWeek
		}

		for _, t := range []int{current, current + domain.MinutesPerWeek} {
			if t >= open && t < closeAt {
				found = true
				if left := closeAt - t; best < 0 || left < best {
					best = left
				}
			}
		}
	}

	return best, found
}

// minutesUntilClosingToday - ближайшее закрытие в текущий день после current,
// -1 если такого нет.
func minutesUntilClosingToday(periods []domain.OpeningPeriod, current int) int {
	day := current / (domain.MinutesPerWeek / 7)
	best := -1

	for _, p := range periods {
		if p.Close == nil || int(p.Close.Day) != day {
			continue
		}
		if left := p.Close.Offset() - current; left > 0 && (best < 0 || left < best) {
			best = left
		}
	}

	return best
}
