package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	redisRepo "github.com/itinerary-microservice/internal/repository/redis"
)

const (
	testStream = "test:stream:trip:plan"
	testGroup  = "test-group"
)

// StreamRepositorySuite tests the stream repository against in-memory Redis
type StreamRepositorySuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   repository.StreamRepository
	ctx    context.Context
}

// SetupTest поднимает чистый Redis перед каждым тестом
func (s *StreamRepositorySuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.repo = redisRepo.NewStreamRepository(s.client, zap.NewNop())
	s.ctx = context.Background()
}

func (s *StreamRepositorySuite) TearDownTest() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *StreamRepositorySuite) publish(event *domain.TripPlanEvent) {
	s.Require().NoError(s.repo.PublishToStream(s.ctx, testStream, event))
}

func (s *StreamRepositorySuite) pendingCount() int64 {
	pending, err := s.client.XPending(s.ctx, testStream, testGroup).Result()
	s.Require().NoError(err)
	return pending.Count
}

// ============================================================================
// CreateConsumerGroup
// ============================================================================

func (s *StreamRepositorySuite) TestCreateConsumerGroup() {
	s.Require().NoError(s.repo.CreateConsumerGroup(s.ctx, testStream, testGroup))

	// Stream создан через MKSTREAM
	s.True(s.mr.Exists(testStream))

	// Повторное создание не ошибка (BUSYGROUP)
	s.NoError(s.repo.CreateConsumerGroup(s.ctx, testStream, testGroup))
}

// ============================================================================
// PublishToStream
// ============================================================================

func (s *StreamRepositorySuite) TestPublishToStream() {
	tripID := uuid.New()
	s.publish(&domain.TripPlanEvent{
		TripID:        tripID,
		StartLocation: "Plaça de Catalunya, Barcelona",
		AvailableTime: 4,
		Preferences:   []string{"historical", "food"},
	})

	messages, err := s.client.XRead(s.ctx, &redis.XReadArgs{
		Streams: []string{testStream, "0"},
		Count:   1,
	}).Result()
	s.Require().NoError(err)
	s.Require().Len(messages, 1)
	s.Require().Len(messages[0].Messages, 1)

	dataStr, ok := messages[0].Messages[0].Values["data"].(string)
	s.Require().True(ok)

	var received domain.TripPlanEvent
	s.Require().NoError(json.Unmarshal([]byte(dataStr), &received))
	s.Equal(tripID, received.TripID)
	s.Equal("Plaça de Catalunya, Barcelona", received.StartLocation)
	s.Equal([]string{"historical", "food"}, received.Preferences)
}

func (s *StreamRepositorySuite) TestPublishToStream_MarshalError() {
	s.Error(s.repo.PublishToStream(s.ctx, testStream, make(chan int)))
}

// ============================================================================
// ConsumeBatch
// ============================================================================

func (s *StreamRepositorySuite) TestConsumeBatch() {
	s.Require().NoError(s.repo.CreateConsumerGroup(s.ctx, testStream, testGroup))

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		s.publish(&domain.TripPlanEvent{TripID: ids[i], StartLocation: "Sagrada Família", AvailableTime: 2})
	}

	batch, err := s.repo.ConsumeBatch(s.ctx, testStream, testGroup, "consumer-1", 2)
	s.Require().NoError(err)
	s.Require().Len(batch, 2)

	var first domain.TripPlanEvent
	s.Require().NoError(json.Unmarshal([]byte(batch[0].Data), &first))
	s.Equal(ids[0], first.TripID)
	s.NotEmpty(batch[0].ID)

	rest, err := s.repo.ConsumeBatch(s.ctx, testStream, testGroup, "consumer-1", 10)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)

	var last domain.TripPlanEvent
	s.Require().NoError(json.Unmarshal([]byte(rest[0].Data), &last))
	s.Equal(ids[2], last.TripID)
}

func (s *StreamRepositorySuite) TestConsumeBatch_Empty() {
	s.Require().NoError(s.repo.CreateConsumerGroup(s.ctx, testStream, testGroup))

	batch, err := s.repo.ConsumeBatch(s.ctx, testStream, testGroup, "consumer-1", 5)
	s.Require().NoError(err)
	s.Empty(batch)
}

func (s *StreamRepositorySuite) TestConsumeBatch_MalformedMessage() {
	s.Require().NoError(s.repo.CreateConsumerGroup(s.ctx, testStream, testGroup))

	// Сообщение без поля data
	s.Require().NoError(s.client.XAdd(s.ctx, &redis.XAddArgs{
		Stream: testStream,
		Values: map[string]interface{}{"payload": "x"},
	}).Err())
	s.publish(&domain.TripPlanEvent{TripID: uuid.New()})

	batch, err := s.repo.ConsumeBatch(s.ctx, testStream, testGroup, "consumer-1", 10)
	s.Require().NoError(err)
	s.Len(batch, 1)

	// Битое сообщение подтверждено, в pending только валидное
	s.Equal(int64(1), s.pendingCount())
}

// ============================================================================
// ClaimPending
// ============================================================================

func (s *StreamRepositorySuite) TestClaimPending_UnackedMessageIsReadAgain() {
	s.Require().NoError(s.repo.CreateConsumerGroup(s.ctx, testStream, testGroup))
	tripID := uuid.New()
	s.publish(&domain.TripPlanEvent{TripID: tripID, StartLocation: "Montserrat", AvailableTime: 5})

	first, err := s.repo.ConsumeBatch(s.ctx, testStream, testGroup, "consumer-1", 10)
	s.Require().NoError(err)
	s.Require().Len(first, 1)

	// не подтверждено: ">" его больше не отдаёт
	second, err := s.repo.ConsumeBatch(s.ctx, testStream, testGroup, "consumer-1", 10)
	s.Require().NoError(err)
	s.Empty(second)
	s.Equal(int64(1), s.pendingCount())

	// ещё не простояло minIdle
	fresh, err := s.repo.ClaimPending(s.ctx, testStream, testGroup, "consumer-2", time.Hour, 10)
	s.Require().NoError(err)
	s.Empty(fresh)

	claimed, err := s.repo.ClaimPending(s.ctx, testStream, testGroup, "consumer-2", 0, 10)
	s.Require().NoError(err)
	s.Require().Len(claimed, 1)
	s.Equal(first[0].ID, claimed[0].ID)

	var event domain.TripPlanEvent
	s.Require().NoError(json.Unmarshal([]byte(claimed[0].Data), &event))
	s.Equal(tripID, event.TripID)

	s.Require().NoError(s.repo.AckMessages(s.ctx, testStream, testGroup, []string{claimed[0].ID}))
	s.Equal(int64(0), s.pendingCount())
}

func (s *StreamRepositorySuite) TestClaimPending_Empty() {
	s.Require().NoError(s.repo.CreateConsumerGroup(s.ctx, testStream, testGroup))

	claimed, err := s.repo.ClaimPending(s.ctx, testStream, testGroup, "consumer-1", 0, 10)
	s.Require().NoError(err)
	s.Empty(claimed)
}

// ============================================================================
// AckMessages
// ============================================================================

func (s *StreamRepositorySuite) TestAckMessages() {
	s.Require().NoError(s.repo.CreateConsumerGroup(s.ctx, testStream, testGroup))
	s.publish(&domain.TripPlanEvent{TripID: uuid.New()})
	s.publish(&domain.TripPlanEvent{TripID: uuid.New()})

	batch, err := s.repo.ConsumeBatch(s.ctx, testStream, testGroup, "consumer-1", 10)
	s.Require().NoError(err)
	s.Require().Len(batch, 2)
	s.Equal(int64(2), s.pendingCount())

	s.Require().NoError(s.repo.AckMessages(s.ctx, testStream, testGroup, []string{batch[0].ID, batch[1].ID}))
	s.Equal(int64(0), s.pendingCount())

	// Пустой список - no-op
	s.NoError(s.repo.AckMessages(s.ctx, testStream, testGroup, nil))
}

// TestStreamRepositorySuite runs the test suite
func TestStreamRepositorySuite(t *testing.T) {
	suite.Run(t, new(StreamRepositorySuite))
}
