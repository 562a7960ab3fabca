package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeService struct {
	mu    sync.Mutex
	calls int
	grace time.Duration
	limit int
	err   error
}

func (f *fakeService) SweepStalePending(_ context.Context, grace time.Duration, limit int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.grace = grace
	f.limit = limit
	return 2, f.err
}

func (f *fakeService) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New(&fakeService{}, Config{Schedule: "every now and then"}, time.UTC, logger.NewNop())
	assert.Error(t, err)
}

func TestSweeper_RunOnce(t *testing.T) {
	svc := &fakeService{}
	s, err := New(svc, Config{Schedule: "@every 5m", Grace: 30 * time.Minute}, nil, logger.NewNop())
	require.NoError(t, err)

	n, err := s.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 30*time.Minute, svc.grace)
	assert.Equal(t, defaultBatchSize, svc.limit)
}

func TestSweeper_JobSurvivesErrors(t *testing.T) {
	svc := &fakeService{err: errors.New("db down")}
	s, err := New(svc, Config{Schedule: "@every 5m"}, time.UTC, logger.NewNop())
	require.NoError(t, err)

	s.job()
	s.job()

	assert.Equal(t, 2, svc.Calls())
}

func TestSweeper_RunTriggersSchedule(t *testing.T) {
	svc := &fakeService{}
	s, err := New(svc, Config{Schedule: "@every 1s"}, time.UTC, logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool { return svc.Calls() > 0 }, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
