package trip

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/usecase"
	"github.com/itinerary-microservice/internal/usecase/dto"
	"github.com/itinerary-microservice/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxBatchSize    = 10                     // максимум сообщений за раз
	maxConcurrent   = 4                      // параллельных планирований внутри batch
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second

	// сообщения, висящие в pending дольше pendingIdle, забираются повторно
	defaultPendingIdle   = 30 * time.Second
	defaultClaimInterval = 30 * time.Second
)

// PlanningWorker строит маршруты по событиям из stream:trip:plan
type PlanningWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	planner      usecase.TripPlanner
	consumerName string

	pendingIdle   time.Duration
	claimInterval time.Duration
	lastClaim     time.Time
}

// NewPlanningWorker создает новый PlanningWorker
func NewPlanningWorker(
	streamRepo repository.StreamRepository,
	planner usecase.TripPlanner,
	consumerGroup string,
	logger *zap.Logger,
) *PlanningWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &PlanningWorker{
		BaseWorker:    worker.NewBaseWorker("trip-planning", consumerGroup, logger),
		streamRepo:    streamRepo,
		planner:       planner,
		consumerName:  consumerName,
		pendingIdle:   defaultPendingIdle,
		claimInterval: defaultClaimInterval,
	}
}

// WithPendingReclaim задаёт, как часто и после какого простоя забирать
// неподтверждённые сообщения
func (w *PlanningWorker) WithPendingReclaim(interval, minIdle time.Duration) *PlanningWorker {
	w.claimInterval = interval
	w.pendingIdle = minIdle
	return w
}

// Start запускает воркер
func (w *PlanningWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting PlanningWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamTripPlan, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.sleep(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.sleep(ctx, emptyQueueSleep)
			}
		}
	}
}

// sleep - пауза, прерываемая остановкой воркера
func (w *PlanningWorker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	case <-w.StopChan():
	}
}

// processBatch читает и обрабатывает batch сообщений.
// Возвращает количество прочитанных сообщений.
func (w *PlanningWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages := w.claimPending(ctx)
	if len(messages) == 0 {
		var err error
		messages, err = w.streamRepo.ConsumeBatch(
			ctx,
			domain.StreamTripPlan,
			w.ConsumerGroup(),
			w.consumerName,
			maxBatchSize,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to consume batch: %w", err)
		}
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	var (
		mu    sync.Mutex
		acked = make([]string, 0, len(messages))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, msg := range messages {
		g.Go(func() error {
			if w.processMessage(gctx, msg) {
				mu.Lock()
				acked = append(acked, msg.ID)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(acked) > 0 {
		if err := w.streamRepo.AckMessages(ctx, domain.StreamTripPlan, w.ConsumerGroup(), acked); err != nil {
			logger.Error("Failed to ack messages", zap.Error(err))
			// Не критично - сообщения будут переобработаны
		}
	}

	logger.Info("Batch processed", zap.Int("processed", len(acked)))

	return len(messages), nil
}

// claimPending раз в claimInterval забирает зависшие в pending сообщения:
// свои неподтверждённые и оставшиеся от упавших consumer'ов
func (w *PlanningWorker) claimPending(ctx context.Context) []domain.StreamMessage {
	if !w.lastClaim.IsZero() && time.Since(w.lastClaim) < w.claimInterval {
		return nil
	}
	w.lastClaim = time.Now()

	messages, err := w.streamRepo.ClaimPending(
		ctx,
		domain.StreamTripPlan,
		w.ConsumerGroup(),
		w.consumerName,
		w.pendingIdle,
		maxBatchSize,
	)
	if err != nil {
		w.Logger().Warn("Failed to claim pending messages", zap.Error(err))
		return nil
	}
	return messages
}

// processMessage планирует одну поездку и публикует результат.
// false - сообщение остаётся в pending и будет забрано через claimPending.
func (w *PlanningWorker) processMessage(ctx context.Context, msg domain.StreamMessage) bool {
	logger := w.Logger()

	event, err := parseMessage(msg)
	if err != nil {
		// битое сообщение подтверждаем, чтобы оно не застревало
		logger.Warn("Failed to parse message, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return true
	}

	req := dto.PlanTripRequest{
		StartLocation: event.StartLocation,
		HomeAddress:   event.HomeAddress,
		AvailableTime: event.AvailableTime,
		Preferences:   event.Preferences,
	}

	done := &domain.TripDoneEvent{TripID: event.TripID}

	result, err := w.planner.PlanTrip(ctx, req)
	if err != nil {
		logger.Warn("Trip planning failed",
			zap.String("trip_id", event.TripID.String()),
			zap.String("start_location", event.StartLocation),
			zap.Error(err))
		done.ErrorCode, done.Error = errorFields(err)
	} else {
		done.Result = result
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamTripDone, done); err != nil {
		logger.Error("Failed to publish done event",
			zap.String("trip_id", event.TripID.String()),
			zap.Error(err))
		return false
	}

	return true
}

// parseMessage парсит сообщение из стрима в TripPlanEvent
func parseMessage(msg domain.StreamMessage) (*domain.TripPlanEvent, error) {
	var event domain.TripPlanEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

func errorFields(err error) (code, message string) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}
	return errors.ErrInternalServer.Code, err.Error()
}
