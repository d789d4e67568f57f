package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/worker"
)

// blockingWorker ждёт Stop или отмены ctx; stubborn игнорирует Stop
type blockingWorker struct {
	*worker.BaseWorker
	stubborn bool
	started  atomic.Int32
}

func newBlockingWorker(name string, stubborn bool) *blockingWorker {
	return &blockingWorker{
		BaseWorker: worker.NewBaseWorker(name, "test-group", zap.NewNop()),
		stubborn:   stubborn,
	}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	w.started.Add(1)
	if w.stubborn {
		<-ctx.Done()
		return ctx.Err()
	}
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := worker.NewWorkerManager(time.Second, zap.NewNop())
	assert.ErrorIs(t, m.Start(context.Background()), worker.ErrNoWorkers)
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(time.Second, zap.NewNop())
	a := newBlockingWorker("a", false)
	b := newBlockingWorker("b", false)
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return a.started.Load() == 1 && b.started.Load() == 1
	}, time.Second, 10*time.Millisecond)

	assert.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_ShutdownTimeout(t *testing.T) {
	m := worker.NewWorkerManager(50*time.Millisecond, zap.NewNop())
	m.Register(newBlockingWorker("stubborn", true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))

	assert.Error(t, m.Stop())
}

func TestBaseWorker_Stop(t *testing.T) {
	w := worker.NewBaseWorker("trip-planning", "group", zap.NewNop())
	assert.Equal(t, "trip-planning", w.Name())
	assert.Equal(t, "group", w.ConsumerGroup())
	assert.False(t, w.IsStopped())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	select {
	case <-w.StopChan():
	default:
		t.Fatal("stop channel must be closed")
	}
}
